// Package ports declares what the verification service needs from the
// outside world. Adapters live with the infrastructure they wrap.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"idverify/internal/evidence/providers"
	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	"idverify/pkg/platform/audit"
)

// Store persists profiles and verification logs. Find methods return an
// error wrapping sentinel.ErrNotFound when the profile does not exist.
type Store interface {
	FindAgent(ctx context.Context, userID id.UserID) (*models.AgentProfile, error)
	SaveAgent(ctx context.Context, profile *models.AgentProfile) error
	FindCompany(ctx context.Context, userID id.UserID) (*models.CompanyProfile, error)
	SaveCompany(ctx context.Context, profile *models.CompanyProfile) error
	AppendLog(ctx context.Context, entry *models.VerificationLog) error
	// ListLogs returns a user's logs newest first.
	ListLogs(ctx context.Context, userID id.UserID) ([]*models.VerificationLog, error)
}

// IdentityProvider resolves an identifier to the identity on record.
type IdentityProvider interface {
	ID() string
	Lookup(ctx context.Context, req providers.LookupRequest) (*providers.LookupResult, error)
}

// Notifier tells a user their verification status changed.
type Notifier interface {
	Approved(ctx context.Context, userID id.UserID, kind models.ProfileKind) error
	Rejected(ctx context.Context, userID id.UserID, kind models.ProfileKind, reason string) error
	InReview(ctx context.Context, userID id.UserID, kind models.ProfileKind) error
}

// AuditPort emits audit events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
