package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/sentinel"
)

// AgentDetails is the identity data an agent keeps on file.
type AgentDetails struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth time.Time
}

// CompanyDetails is the registration data a company keeps on file.
type CompanyDetails struct {
	CompanyName string
}

// SaveAgentProfile creates the agent profile or updates its details. Details
// are frozen once the agent is verified.
func (s *Service) SaveAgentProfile(ctx context.Context, userID id.UserID, details AgentDetails) (*models.AgentProfile, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if strings.TrimSpace(details.FirstName) == "" || strings.TrimSpace(details.LastName) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "first_name and last_name are required")
	}

	agent, err := s.store.FindAgent(ctx, userID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		agent = &models.AgentProfile{UserID: userID, Status: models.StatusPending}
	case err != nil:
		return nil, storeError(err, models.KindAgent)
	case agent.Status == models.StatusVerified:
		return nil, dErrors.New(dErrors.CodeConflict, "verified agent details cannot change")
	}

	agent.FirstName = strings.TrimSpace(details.FirstName)
	agent.LastName = strings.TrimSpace(details.LastName)
	agent.Email = strings.TrimSpace(details.Email)
	agent.Phone = strings.TrimSpace(details.Phone)
	agent.DateOfBirth = details.DateOfBirth
	agent.UpdatedAt = s.clock(ctx)

	if err := s.store.SaveAgent(ctx, agent); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save agent profile")
	}
	return agent, nil
}

// SaveCompanyProfile creates the company profile or renames it. The name is
// frozen once the company is verified.
func (s *Service) SaveCompanyProfile(ctx context.Context, userID id.UserID, details CompanyDetails) (*models.CompanyProfile, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	name := strings.TrimSpace(details.CompanyName)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "company_name is required")
	}

	company, err := s.store.FindCompany(ctx, userID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		company = &models.CompanyProfile{UserID: userID, Status: models.StatusPending}
	case err != nil:
		return nil, storeError(err, models.KindCompany)
	case company.Status == models.StatusVerified:
		return nil, dErrors.New(dErrors.CodeConflict, "verified company details cannot change")
	}

	company.CompanyName = name
	company.UpdatedAt = s.clock(ctx)

	if err := s.store.SaveCompany(ctx, company); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save company profile")
	}
	return company, nil
}
