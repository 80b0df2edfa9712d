package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/audit"
)

// ReviewProfile applies a reviewer's decision to a profile that is in review.
// Profiles in any other status are rejected with an invalid-state error.
func (s *Service) ReviewProfile(ctx context.Context, reviewerID id.UserID, req ReviewRequest) (*models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "verification.ReviewProfile")
	defer span.End()
	span.SetAttributes(
		attribute.String("kind", string(req.Kind)),
		attribute.String("decision", string(req.Decision)),
	)

	if err := validateReview(reviewerID, req); err != nil {
		return nil, err
	}

	next := models.StatusVerified
	if req.Decision == models.DecisionReject {
		next = models.StatusRejected
	}
	now := s.clock(ctx)
	reason := strings.TrimSpace(req.Reason)

	event := audit.Event{
		UserID:   req.UserID,
		Subject:  string(req.Kind),
		Action:   string(audit.EventVerificationReviewed),
		Decision: string(next),
		Reason:   reason,
		ActorID:  reviewerID.String(),
	}

	switch req.Kind {
	case models.KindAgent:
		agent, err := s.store.FindAgent(ctx, req.UserID)
		if err != nil {
			return nil, failSpan(span, storeError(err, models.KindAgent))
		}
		if agent.Status != models.StatusInReview {
			return nil, dErrors.New(dErrors.CodeInvalidState, "agent profile is "+string(agent.Status)+", not in review")
		}
		if err := agent.Apply(next, reason, now); err != nil {
			return nil, failSpan(span, err)
		}
		event.SubjectIDHash = audit.HashSubjectID(agent.IDNumber)
		if err := s.emitDecision(ctx, event); err != nil {
			return nil, failSpan(span, err)
		}
		if err := s.store.SaveAgent(ctx, agent); err != nil {
			return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save agent profile"))
		}
	case models.KindCompany:
		company, err := s.store.FindCompany(ctx, req.UserID)
		if err != nil {
			return nil, failSpan(span, storeError(err, models.KindCompany))
		}
		if company.Status != models.StatusInReview {
			return nil, dErrors.New(dErrors.CodeInvalidState, "company profile is "+string(company.Status)+", not in review")
		}
		if err := company.Apply(next, reason, now); err != nil {
			return nil, failSpan(span, err)
		}
		event.SubjectIDHash = audit.HashSubjectID(company.RCNumber)
		if err := s.emitDecision(ctx, event); err != nil {
			return nil, failSpan(span, err)
		}
		if err := s.store.SaveCompany(ctx, company); err != nil {
			return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save company profile"))
		}
	}

	s.logger.InfoContext(ctx, "verification reviewed",
		"user_id", req.UserID.String(),
		"reviewer_id", reviewerID.String(),
		"kind", req.Kind,
		"status", next,
	)
	s.metrics.IncrementOutcome(string(req.Kind), string(next))
	s.notify(ctx, req.UserID, req.Kind, next, reason)

	message := "Verification approved."
	if next == models.StatusRejected {
		message = "Verification rejected."
	}
	return &models.Outcome{Kind: req.Kind, Status: next, Message: message, Reason: reason}, nil
}

func validateReview(reviewerID id.UserID, req ReviewRequest) error {
	if reviewerID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "reviewer required")
	}
	if req.UserID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if !req.Kind.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "kind must be agent or company")
	}
	if !req.Decision.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "decision must be approve or reject")
	}
	if req.Decision == models.DecisionReject && strings.TrimSpace(req.Reason) == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required when rejecting")
	}
	return nil
}
