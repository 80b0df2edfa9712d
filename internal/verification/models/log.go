package models

import (
	"encoding/json"
	"time"

	"idverify/internal/identity"
	id "idverify/pkg/domain"
)

// LogStatus is the outcome of one provider lookup attempt.
type LogStatus string

const (
	LogSuccess LogStatus = "success"
	LogFailed  LogStatus = "failed"
	LogPending LogStatus = "pending"
)

// VerificationLog records one provider lookup attempt. RequestData never
// holds a raw identifier, only its hash.
type VerificationLog struct {
	ID              id.LogID          `json:"id"`
	UserID          id.UserID         `json:"user_id"`
	Type            VerificationType  `json:"verification_type"`
	Provider        string            `json:"provider"`
	RequestData     map[string]string `json:"request_data"`
	ResponseData    json.RawMessage   `json:"response_data,omitempty"`
	Status          LogStatus         `json:"status"`
	IsMatch         bool              `json:"is_match"`
	ConfidenceScore *float64          `json:"confidence_score,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Outcome is what a submission produced.
type Outcome struct {
	Kind        ProfileKind           `json:"kind"`
	Status      Status                `json:"verification_status"`
	Message     string                `json:"message"`
	Reason      string                `json:"rejection_reason,omitempty"`
	Provider    string                `json:"provider,omitempty"`
	Match       *identity.MatchResult `json:"match,omitempty"`
	NameMatch   *int                  `json:"name_match_score,omitempty"`
	LookupError string                `json:"lookup_error,omitempty"`
}

// StatusView is a user's verification state across both profile kinds.
// Either profile may be nil.
type StatusView struct {
	Agent   *AgentProfile   `json:"agent,omitempty"`
	Company *CompanyProfile `json:"company,omitempty"`
}
