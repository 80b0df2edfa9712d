package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	id "idverify/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and storage backends.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance.
	// Examples: verification decisions and manual reviews.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for operational visibility.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID tracks who performed the action when different from UserID,
	// e.g. the reviewer on a manual decision.
	ActorID string
	// SubjectIDHash is a SHA-256 hash of the submitted identifier (NIN, BVN,
	// RC number). Raw identifiers never reach the audit trail.
	SubjectIDHash string
	// Confidence is the overall match confidence when the decision was scored.
	Confidence *float64
}

type AuditEvent string

const (
	EventVerificationSubmitted AuditEvent = "verification_submitted"
	EventVerificationDecided   AuditEvent = "verification_decided"
	EventVerificationReviewed  AuditEvent = "verification_reviewed"
	EventProviderLookupFailed  AuditEvent = "provider_lookup_failed"
	EventAccessDenied          AuditEvent = "access_denied"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventVerificationDecided:  CategoryCompliance,
	EventVerificationReviewed: CategoryCompliance,

	EventAccessDenied: CategorySecurity,

	EventVerificationSubmitted: CategoryOperations,
	EventProviderLookupFailed:  CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// HashSubjectID returns the hex SHA-256 of an external identifier.
func HashSubjectID(raw string) string {
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
