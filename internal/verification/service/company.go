package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"idverify/internal/evidence/providers"
	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/audit"
)

const companySubmittedForReview = "Your company verification documents have been submitted and are under review. " +
	"We'll notify you once the review is complete."

// SubmitCompanyVerification records a company's RC number and checks the
// registered company name against the profile.
func (s *Service) SubmitCompanyVerification(ctx context.Context, userID id.UserID, req SubmitCompanyRequest) (*models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "verification.SubmitCompanyVerification")
	defer span.End()

	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	company, err := s.store.FindCompany(ctx, userID)
	if err != nil {
		return nil, failSpan(span, storeError(err, models.KindCompany))
	}
	now := s.clock(ctx)
	if err := company.BeginVerification(req.RCNumber, now); err != nil {
		return nil, failSpan(span, err)
	}
	if err := s.store.SaveCompany(ctx, company); err != nil {
		return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save company profile"))
	}
	s.emit(ctx, audit.Event{
		UserID:        userID,
		Subject:       string(models.KindCompany),
		Action:        string(audit.EventVerificationSubmitted),
		SubjectIDHash: audit.HashSubjectID(req.RCNumber),
	})

	if req.RCNumber == "" {
		return s.holdCompany(ctx, company, companySubmittedForReview, "")
	}

	lookupReq := providers.LookupRequest{
		Type:        providers.IDTypeCAC,
		IDNumber:    req.RCNumber,
		CountryCode: providers.DefaultCountryCode,
		Extra:       map[string]string{"company-name": company.CompanyName},
	}
	result, err := s.lookup(ctx, userID, models.TypeCAC, lookupReq)
	if err != nil {
		s.recordAttempt(ctx, userID, models.TypeCAC, lookupReq, nil, err, nil)
		return s.holdCompany(ctx, company, companySubmittedForReview, providers.UserMessage(err, "Verification failed"))
	}

	company.CACVerified = true
	if result.CompanyName == "" {
		s.recordAttempt(ctx, userID, models.TypeCAC, lookupReq, result, nil, nil)
		if err := s.store.SaveCompany(ctx, company); err != nil {
			return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save company profile"))
		}
		return s.holdCompany(ctx, company, "Your CAC registration has been verified. "+
			"Our team will review your documents and notify you within 24-48 hours.", "")
	}

	score := s.scorer.MatchName(result.CompanyName, company.CompanyName)
	confidence := float64(score)
	s.recordAttempt(ctx, userID, models.TypeCAC, lookupReq, result, nil, &confidence)
	span.SetAttributes(attribute.Int("name_match_score", score))

	company.CACData = &models.CompanyVerification{
		Provider:       result.ProviderID,
		ReferenceID:    result.ReferenceID,
		RegisteredName: result.CompanyName,
		NameMatchScore: score,
		VerifiedAt:     now,
	}

	next, reason, message := s.companyDecision(score, result.CompanyName, company.CompanyName)
	if err := company.Apply(next, reason, now); err != nil {
		return nil, failSpan(span, err)
	}
	if err := s.emitDecision(ctx, audit.Event{
		UserID:        userID,
		Subject:       string(models.KindCompany),
		Action:        string(audit.EventVerificationDecided),
		Decision:      string(next),
		Reason:        reason,
		SubjectIDHash: audit.HashSubjectID(req.RCNumber),
		Confidence:    &confidence,
	}); err != nil {
		return nil, failSpan(span, err)
	}
	if err := s.store.SaveCompany(ctx, company); err != nil {
		return nil, failSpan(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save company profile"))
	}

	s.logger.InfoContext(ctx, "company verification decided",
		"user_id", userID.String(),
		"provider", result.ProviderID,
		"name_match_score", score,
		"status", next,
	)
	s.metrics.IncrementOutcome(string(models.KindCompany), string(next))
	s.notify(ctx, userID, models.KindCompany, next, reason)

	return &models.Outcome{
		Kind:      models.KindCompany,
		Status:    next,
		Message:   message,
		Reason:    reason,
		Provider:  result.ProviderID,
		NameMatch: &score,
	}, nil
}

func (s *Service) companyDecision(score int, registered, onProfile string) (models.Status, string, string) {
	switch {
	case score >= s.company.AutoVerify:
		return models.StatusVerified, "",
			fmt.Sprintf("Company verification successful. Your CAC registration has been verified with %d%% name match. "+
				"You can now post properties.", score)
	case score >= s.company.ManualReview:
		return models.StatusInReview, "",
			fmt.Sprintf("Your company verification is under review (name match: %d%%). "+
				"Our team will review your documents and notify you within 24-48 hours.", score)
	}
	reason := fmt.Sprintf("Company name mismatch. CAC records show '%s' but your profile shows '%s'. "+
		"Please update your company name to match CAC records.", registered, onProfile)
	return models.StatusRejected, reason,
		fmt.Sprintf("Verification failed. Company name mismatch detected (match: %d%%). "+
			"Please ensure your company name matches your CAC registration exactly.", score)
}

func (s *Service) holdCompany(ctx context.Context, company *models.CompanyProfile, message, lookupErr string) (*models.Outcome, error) {
	if err := s.emitDecision(ctx, audit.Event{
		UserID:        company.UserID,
		Subject:       string(models.KindCompany),
		Action:        string(audit.EventVerificationDecided),
		Decision:      string(models.StatusInReview),
		Reason:        lookupErr,
		SubjectIDHash: audit.HashSubjectID(company.RCNumber),
	}); err != nil {
		return nil, err
	}
	s.metrics.IncrementOutcome(string(models.KindCompany), string(models.StatusInReview))
	s.notify(ctx, company.UserID, models.KindCompany, models.StatusInReview, "")
	return &models.Outcome{
		Kind:        models.KindCompany,
		Status:      models.StatusInReview,
		Message:     message,
		LookupError: lookupErr,
	}, nil
}
