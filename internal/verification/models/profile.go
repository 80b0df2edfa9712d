package models

import (
	"time"

	"idverify/internal/identity"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
)

// AgentProfile is an agent's identity record and verification state.
//
// Invariants:
//   - Status follows Status.CanTransitionTo; verified is terminal
//   - CanPostProperties is true only while Status is verified
//   - VerifiedAt is set exactly when Status becomes verified
type AgentProfile struct {
	UserID            id.UserID          `json:"user_id"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	DateOfBirth       time.Time          `json:"date_of_birth,omitzero"`
	IDType            VerificationType   `json:"id_type,omitempty"`
	IDNumber          string             `json:"-"`
	Status            Status             `json:"verification_status"`
	RejectionReason   string             `json:"rejection_reason,omitempty"`
	IDVerified        bool               `json:"id_verified"`
	CanPostProperties bool               `json:"can_post_properties"`
	VerificationData  *AgentVerification `json:"verification_data,omitempty"`
	VerifiedAt        *time.Time         `json:"verified_at,omitempty"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// AgentVerification is the scored evidence kept on an agent profile.
type AgentVerification struct {
	Provider        string             `json:"provider"`
	ReferenceID     string             `json:"reference_id,omitempty"`
	ConfidenceScore float64            `json:"confidence_score"`
	Breakdown       map[string]float64 `json:"confidence_breakdown"`
	ChecksPerformed int                `json:"checks_performed"`
	Recommendation  string             `json:"recommendation"`
	VerifiedAt      time.Time          `json:"verified_at"`
}

// KnownIdentity is the profile data the scorer compares provider data against.
func (p *AgentProfile) KnownIdentity() identity.KnownIdentity {
	return identity.KnownIdentity{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Phone:       p.Phone,
		Email:       p.Email,
		DateOfBirth: p.DateOfBirth,
	}
}

// BeginVerification records a submission and moves the profile to in_review.
func (p *AgentProfile) BeginVerification(idType VerificationType, idNumber string, now time.Time) error {
	if p.Status == StatusVerified {
		return dErrors.New(dErrors.CodeConflict, "agent is already verified")
	}
	p.IDType = idType
	p.IDNumber = idNumber
	p.RejectionReason = ""
	p.Status = StatusInReview
	p.UpdatedAt = now
	return nil
}

// Apply moves an in-review profile to next.
func (p *AgentProfile) Apply(next Status, reason string, now time.Time) error {
	if !p.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvalidState, "agent profile cannot move from "+string(p.Status)+" to "+string(next))
	}
	p.Status = next
	p.UpdatedAt = now
	switch next {
	case StatusVerified:
		p.CanPostProperties = true
		p.RejectionReason = ""
		p.VerifiedAt = &now
	case StatusRejected:
		p.CanPostProperties = false
		p.RejectionReason = reason
	}
	return nil
}

// CompanyProfile is a company's registration record and verification state.
// It carries the same status invariants as AgentProfile.
type CompanyProfile struct {
	UserID            id.UserID            `json:"user_id"`
	CompanyName       string               `json:"company_name"`
	RCNumber          string               `json:"rc_number,omitempty"`
	Status            Status               `json:"verification_status"`
	CACVerified       bool                 `json:"cac_verified"`
	CACData           *CompanyVerification `json:"cac_data,omitempty"`
	RejectionReason   string               `json:"rejection_reason,omitempty"`
	CanPostProperties bool                 `json:"can_post_properties"`
	VerifiedAt        *time.Time           `json:"verified_at,omitempty"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// CompanyVerification is the CAC evidence kept on a company profile.
type CompanyVerification struct {
	Provider       string    `json:"provider"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	RegisteredName string    `json:"registered_name"`
	NameMatchScore int       `json:"name_match_score"`
	VerifiedAt     time.Time `json:"verified_at"`
}

// BeginVerification records an RC number and moves the profile to in_review.
func (c *CompanyProfile) BeginVerification(rcNumber string, now time.Time) error {
	if c.Status == StatusVerified {
		return dErrors.New(dErrors.CodeConflict, "company is already verified")
	}
	c.RCNumber = rcNumber
	c.RejectionReason = ""
	c.Status = StatusInReview
	c.UpdatedAt = now
	return nil
}

// Apply moves an in-review company profile to next.
func (c *CompanyProfile) Apply(next Status, reason string, now time.Time) error {
	if !c.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvalidState, "company profile cannot move from "+string(c.Status)+" to "+string(next))
	}
	c.Status = next
	c.UpdatedAt = now
	switch next {
	case StatusVerified:
		c.CanPostProperties = true
		c.RejectionReason = ""
		c.VerifiedAt = &now
	case StatusRejected:
		c.CanPostProperties = false
		c.RejectionReason = reason
	}
	return nil
}
