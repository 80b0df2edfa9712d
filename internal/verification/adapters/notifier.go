// Package adapters connects the verification service to delivery channels.
package adapters

import (
	"context"
	"log/slog"
	"strings"

	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
)

// Notification is a rendered status-change message.
type Notification struct {
	UserID  id.UserID
	Kind    models.ProfileKind
	Status  models.Status
	Subject string
	Body    string
}

// LogNotifier renders verification notifications and writes them to the
// structured log. Deployments without a mail relay use it as the sink.
type LogNotifier struct {
	logger *slog.Logger
	sent   func(Notification)
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// OnSend registers a hook called for every rendered notification.
func (n *LogNotifier) OnSend(fn func(Notification)) {
	n.sent = fn
}

func (n *LogNotifier) Approved(ctx context.Context, userID id.UserID, kind models.ProfileKind) error {
	return n.deliver(ctx, Notification{
		UserID:  userID,
		Kind:    kind,
		Status:  models.StatusVerified,
		Subject: "Your " + title(kind) + " Account is Verified!",
		Body: "Congratulations! Your " + string(kind) + " account has been successfully verified. " +
			"You can now post properties on our platform.",
	})
}

func (n *LogNotifier) Rejected(ctx context.Context, userID id.UserID, kind models.ProfileKind, reason string) error {
	return n.deliver(ctx, Notification{
		UserID:  userID,
		Kind:    kind,
		Status:  models.StatusRejected,
		Subject: title(kind) + " Verification Update Required",
		Body: "Unfortunately, we were unable to verify your " + string(kind) + " account. " +
			"Reason: " + reason + " Please update your information and resubmit.",
	})
}

func (n *LogNotifier) InReview(ctx context.Context, userID id.UserID, kind models.ProfileKind) error {
	return n.deliver(ctx, Notification{
		UserID:  userID,
		Kind:    kind,
		Status:  models.StatusInReview,
		Subject: title(kind) + " Verification Under Review",
		Body: "Thank you for submitting your " + string(kind) + " verification. " +
			"Our team will review your documents and notify you within 24-48 hours.",
	})
}

func (n *LogNotifier) deliver(ctx context.Context, msg Notification) error {
	n.logger.InfoContext(ctx, "verification notification",
		"user_id", msg.UserID.String(),
		"kind", msg.Kind,
		"status", msg.Status,
		"subject", msg.Subject,
	)
	if n.sent != nil {
		n.sent(msg)
	}
	return nil
}

func title(kind models.ProfileKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
