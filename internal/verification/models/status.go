package models

// Status is a profile's verification status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

var validTransitions = map[Status][]Status{
	StatusPending:  {StatusInReview},
	StatusInReview: {StatusInReview, StatusVerified, StatusRejected},
	StatusRejected: {StatusInReview},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a profile in status s may move to next.
// Verified is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ProfileKind distinguishes agent and company profiles.
type ProfileKind string

const (
	KindAgent   ProfileKind = "agent"
	KindCompany ProfileKind = "company"
)

func (k ProfileKind) IsValid() bool {
	return k == KindAgent || k == KindCompany
}

// VerificationType is the kind of identifier submitted or looked up.
type VerificationType string

const (
	TypeNIN         VerificationType = "nin"
	TypeVNIN        VerificationType = "vnin"
	TypeBVN         VerificationType = "bvn"
	TypePassport    VerificationType = "passport"
	TypeVotersCard  VerificationType = "voters_card"
	TypeCAC         VerificationType = "cac"
	TypePhone       VerificationType = "phone"
	TypeEmail       VerificationType = "email"
	TypeBankAccount VerificationType = "bank_account"
	TypeUtilityBill VerificationType = "utility_bill"
)

func (t VerificationType) IsValid() bool {
	switch t {
	case TypeNIN, TypeVNIN, TypeBVN, TypePassport, TypeVotersCard,
		TypeCAC, TypePhone, TypeEmail, TypeBankAccount, TypeUtilityBill:
		return true
	}
	return false
}

// SupportsLookup reports whether an agent submission of this type is
// checked against an identity provider. Other document types go straight
// to manual review.
func (t VerificationType) SupportsLookup() bool {
	switch t {
	case TypeNIN, TypeVNIN, TypeBVN:
		return true
	}
	return false
}

// Decision is a reviewer's manual verdict.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}
