package handler

import (
	"idverify/internal/verification/models"
)

// OutcomeResponse is returned by the submit and review endpoints.
type OutcomeResponse struct {
	Success bool `json:"success"`
	*models.Outcome
}

// FromOutcome wraps a workflow outcome. Success is false only for rejections.
func FromOutcome(o *models.Outcome) *OutcomeResponse {
	return &OutcomeResponse{
		Success: o.Status != models.StatusRejected,
		Outcome: o,
	}
}

// StatusResponse is returned by GET /verifications/status.
type StatusResponse struct {
	Agent   *models.AgentProfile   `json:"agent,omitempty"`
	Company *models.CompanyProfile `json:"company,omitempty"`
	// CanPostProperties is true when either profile is verified.
	CanPostProperties bool `json:"can_post_properties"`
}

func FromStatus(view *models.StatusView) *StatusResponse {
	resp := &StatusResponse{Agent: view.Agent, Company: view.Company}
	if view.Agent != nil && view.Agent.CanPostProperties {
		resp.CanPostProperties = true
	}
	if view.Company != nil && view.Company.CanPostProperties {
		resp.CanPostProperties = true
	}
	return resp
}

// LogsResponse is returned by GET /verifications/logs.
type LogsResponse struct {
	Logs  []*models.VerificationLog `json:"logs"`
	Count int                       `json:"count"`
}
