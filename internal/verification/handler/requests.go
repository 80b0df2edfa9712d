package handler

import (
	"strings"
	"time"

	"idverify/internal/identity"
	"idverify/internal/verification/models"
	"idverify/internal/verification/service"
	dErrors "idverify/pkg/domain-errors"
)

const (
	maxIdentifierLen = 50
	maxNameLen       = 150
	dateLayout       = "2006-01-02"
)

// AgentProfileRequest is the body for PUT /verifications/agent/profile.
type AgentProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`

	parsedDOB time.Time
}

func (r *AgentProfileRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.FirstName) > maxNameLen || len(r.LastName) > maxNameLen {
		return dErrors.New(dErrors.CodeValidation, "names must be at most 150 characters")
	}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" || r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "first_name and last_name are required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	r.Phone = strings.TrimSpace(r.Phone)
	if dob := strings.TrimSpace(r.DateOfBirth); dob != "" {
		t, err := time.Parse(dateLayout, dob)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "date_of_birth must be YYYY-MM-DD")
		}
		r.parsedDOB = t
	}
	return nil
}

// Details returns the validated profile details.
func (r *AgentProfileRequest) Details() service.AgentDetails {
	return service.AgentDetails{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.parsedDOB,
	}
}

// CompanyProfileRequest is the body for PUT /verifications/company/profile.
type CompanyProfileRequest struct {
	CompanyName string `json:"company_name"`
}

func (r *CompanyProfileRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	if r.CompanyName == "" {
		return dErrors.New(dErrors.CodeValidation, "company_name is required")
	}
	if len(r.CompanyName) > 255 {
		return dErrors.New(dErrors.CodeValidation, "company_name must be at most 255 characters")
	}
	return nil
}

// SubmitAgentRequest is the body for POST /verifications/agent.
type SubmitAgentRequest struct {
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
}

func (r *SubmitAgentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.IDNumber) > maxIdentifierLen {
		return dErrors.New(dErrors.CodeValidation, "id_number must be at most 50 characters")
	}
	r.IDType = strings.ToLower(strings.TrimSpace(r.IDType))
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	if r.IDType == "" {
		return dErrors.New(dErrors.CodeValidation, "id_type is required")
	}
	vType := models.VerificationType(r.IDType)
	if !vType.IsValid() || vType == models.TypeCAC {
		return dErrors.New(dErrors.CodeValidation, "unsupported id_type: "+r.IDType)
	}
	if vType.SupportsLookup() && r.IDNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "id_number is required for "+r.IDType)
	}
	return nil
}

// SubmitCompanyRequest is the body for POST /verifications/company.
type SubmitCompanyRequest struct {
	RCNumber string `json:"rc_number"`
}

func (r *SubmitCompanyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.RCNumber) > maxIdentifierLen {
		return dErrors.New(dErrors.CodeValidation, "rc_number must be at most 50 characters")
	}
	r.RCNumber = strings.ToUpper(strings.TrimSpace(r.RCNumber))
	return nil
}

// ReviewRequest is the body for POST /admin/verifications/{kind}/{userID}/review.
type ReviewRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

func (r *ReviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Decision = strings.ToLower(strings.TrimSpace(r.Decision))
	r.Reason = strings.TrimSpace(r.Reason)
	if !models.Decision(r.Decision).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "decision must be approve or reject")
	}
	if models.Decision(r.Decision) == models.DecisionReject && r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required when rejecting")
	}
	return nil
}

// ScoreRequest is the body for POST /score.
type ScoreRequest struct {
	Claimed identity.ClaimedIdentity `json:"claimed"`
	Known   KnownRecord              `json:"known"`

	parsedKnown identity.KnownIdentity
}

// KnownRecord is the on-file identity with a YYYY-MM-DD date of birth.
type KnownRecord struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
}

func (r *ScoreRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	known, err := r.Known.Parse()
	if err != nil {
		return err
	}
	r.parsedKnown = known
	return nil
}

// ParsedKnown returns the validated known identity.
func (r *ScoreRequest) ParsedKnown() identity.KnownIdentity {
	return r.parsedKnown
}

// Parse converts the record to a KnownIdentity.
func (k KnownRecord) Parse() (identity.KnownIdentity, error) {
	known := identity.KnownIdentity{
		FirstName: k.FirstName,
		LastName:  k.LastName,
		Phone:     k.Phone,
		Email:     k.Email,
	}
	if dob := strings.TrimSpace(k.DateOfBirth); dob != "" {
		t, err := time.Parse(dateLayout, dob)
		if err != nil {
			return identity.KnownIdentity{}, dErrors.New(dErrors.CodeValidation, "known.date_of_birth must be YYYY-MM-DD")
		}
		known.DateOfBirth = t
	}
	return known, nil
}
