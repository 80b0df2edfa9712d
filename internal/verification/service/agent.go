package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"idverify/internal/evidence/providers"
	"idverify/internal/identity"
	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/audit"
)

const submittedForReview = "Your verification documents have been submitted and are under review. " +
	"We'll notify you once the review is complete."

// SubmitAgentVerification records an agent's ID submission and, for NIN,
// vNIN and BVN, verifies it against the identity provider.
//
// A provider failure never rejects the agent; the profile stays in review
// for a human to decide.
func (s *Service) SubmitAgentVerification(ctx context.Context, userID id.UserID, req SubmitAgentRequest) (*models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "verification.SubmitAgentVerification")
	defer span.End()
	span.SetAttributes(attribute.String("id_type", string(req.IDType)))

	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if !req.IDType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported id_type: "+string(req.IDType))
	}

	agent, err := s.store.FindAgent(ctx, userID)
	if err != nil {
		return nil, failSpan(span, storeError(err, models.KindAgent))
	}
	now := s.clock(ctx)
	if err := agent.BeginVerification(req.IDType, req.IDNumber, now); err != nil {
		return nil, failSpan(span, err)
	}
	if err := s.store.SaveAgent(ctx, agent); err != nil {
		return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save agent profile"))
	}
	s.emit(ctx, audit.Event{
		UserID:        userID,
		Subject:       string(models.KindAgent),
		Action:        string(audit.EventVerificationSubmitted),
		SubjectIDHash: audit.HashSubjectID(req.IDNumber),
	})

	if !req.IDType.SupportsLookup() || req.IDNumber == "" {
		return s.holdAgent(ctx, agent, submittedForReview, "")
	}

	lookupReq := providers.LookupRequest{
		Type:        providers.IDType(req.IDType),
		IDNumber:    req.IDNumber,
		CountryCode: providers.DefaultCountryCode,
	}
	result, err := s.lookup(ctx, userID, req.IDType, lookupReq)
	if err != nil {
		s.recordAttempt(ctx, userID, req.IDType, lookupReq, nil, err, nil)
		return s.holdAgent(ctx, agent, submittedForReview, providers.UserMessage(err, "Verification failed"))
	}

	match := s.scorer.Score(result.Identity, agent.KnownIdentity())
	confidence := match.OverallConfidence
	s.recordAttempt(ctx, userID, req.IDType, lookupReq, result, nil, &confidence)
	s.metrics.ObserveConfidence(confidence)
	span.SetAttributes(
		attribute.Float64("confidence", confidence),
		attribute.String("recommendation", string(match.Recommendation)),
	)

	agent.IDVerified = true
	agent.VerificationData = &models.AgentVerification{
		Provider:        result.ProviderID,
		ReferenceID:     result.ReferenceID,
		ConfidenceScore: confidence,
		Breakdown:       match.Breakdown,
		ChecksPerformed: match.ChecksPerformed,
		Recommendation:  string(match.Recommendation),
		VerifiedAt:      now,
	}

	next, reason, message := agentDecision(match)
	if err := agent.Apply(next, reason, now); err != nil {
		return nil, failSpan(span, err)
	}

	if err := s.emitDecision(ctx, audit.Event{
		UserID:        userID,
		Subject:       string(models.KindAgent),
		Action:        string(audit.EventVerificationDecided),
		Decision:      string(next),
		Reason:        reason,
		SubjectIDHash: audit.HashSubjectID(req.IDNumber),
		Confidence:    &confidence,
	}); err != nil {
		return nil, failSpan(span, err)
	}
	if err := s.store.SaveAgent(ctx, agent); err != nil {
		return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save agent profile"))
	}

	s.logger.InfoContext(ctx, "agent verification decided",
		"user_id", userID.String(),
		"provider", result.ProviderID,
		"confidence", confidence,
		"checks_performed", match.ChecksPerformed,
		"status", next,
	)
	s.metrics.IncrementOutcome(string(models.KindAgent), string(next))
	s.notify(ctx, userID, models.KindAgent, next, reason)

	return &models.Outcome{
		Kind:     models.KindAgent,
		Status:   next,
		Message:  message,
		Reason:   reason,
		Provider: result.ProviderID,
		Match:    &match,
	}, nil
}

// agentDecision maps a recommendation to the next status, the rejection
// reason stored on the profile and the message shown to the agent.
func agentDecision(match identity.MatchResult) (models.Status, string, string) {
	pct := fmt.Sprintf("%.0f%%", match.OverallConfidence)
	switch match.Recommendation {
	case identity.RecommendAutoApprove:
		return models.StatusVerified, "",
			"Verification successful. Your identity has been verified with " + pct + " confidence. You can now post properties."
	case identity.RecommendManualReview:
		return models.StatusInReview, "",
			"Your verification is under review (confidence: " + pct + "). " +
				"Our team will review your documents and notify you within 24-48 hours."
	}
	if match.InsufficientData() {
		reason := "Automatic verification could not compare any of your details with your ID record. " +
			"Please complete your profile and try again."
		return models.StatusRejected, reason,
			"Verification failed. There was not enough information to verify your identity."
	}
	reason := "Automatic verification failed due to low confidence score (" + pct + "). " +
		"Please ensure your information matches your ID document exactly and try again."
	return models.StatusRejected, reason,
		"Verification failed. The information provided does not match our records (confidence: " + pct + "). " +
			"Please check your details and try again."
}

// holdAgent leaves the agent in review after a failed or skipped lookup.
func (s *Service) holdAgent(ctx context.Context, agent *models.AgentProfile, message, lookupErr string) (*models.Outcome, error) {
	if err := s.emitDecision(ctx, audit.Event{
		UserID:        agent.UserID,
		Subject:       string(models.KindAgent),
		Action:        string(audit.EventVerificationDecided),
		Decision:      string(models.StatusInReview),
		Reason:        lookupErr,
		SubjectIDHash: audit.HashSubjectID(agent.IDNumber),
	}); err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(models.KindAgent), string(models.StatusInReview))
	s.notify(ctx, agent.UserID, models.KindAgent, models.StatusInReview, "")
	return &models.Outcome{
		Kind:        models.KindAgent,
		Status:      models.StatusInReview,
		Message:     message,
		LookupError: lookupErr,
	}, nil
}
