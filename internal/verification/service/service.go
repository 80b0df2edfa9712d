// Package service runs the agent and company verification workflows: record
// the submission, look the identifier up with the configured provider, score
// the result and move the profile to its next status.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"idverify/internal/evidence/providers"
	"idverify/internal/identity"
	"idverify/internal/verification/metrics"
	"idverify/internal/verification/models"
	"idverify/internal/verification/ports"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/audit"
	"idverify/pkg/platform/sentinel"
	"idverify/pkg/requestcontext"
)

const (
	defaultLookupTimeout = 30 * time.Second
	tracerName           = "idverify/internal/verification/service"
)

// CompanyThresholds routes CAC name-match scores (0-100).
type CompanyThresholds struct {
	AutoVerify   int
	ManualReview int
}

// DefaultCompanyThresholds returns 90 / 70.
func DefaultCompanyThresholds() CompanyThresholds {
	return CompanyThresholds{AutoVerify: 90, ManualReview: 70}
}

// SubmitAgentRequest is an agent's identity submission.
type SubmitAgentRequest struct {
	IDType   models.VerificationType
	IDNumber string
}

// SubmitCompanyRequest is a company's CAC submission.
type SubmitCompanyRequest struct {
	RCNumber string
}

// ReviewRequest is a reviewer's manual decision on an in-review profile.
type ReviewRequest struct {
	Kind     models.ProfileKind
	UserID   id.UserID
	Decision models.Decision
	Reason   string
}

// Service orchestrates verification. It keeps transport concerns out of the
// workflow and the scoring rules in the identity package.
type Service struct {
	store         ports.Store
	provider      ports.IdentityProvider
	scorer        *identity.Scorer
	notifier      ports.Notifier
	auditor       ports.AuditPort
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	now           func() time.Time
	lookupTimeout time.Duration
	company       CompanyThresholds
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithAuditor(a ports.AuditPort) Option {
	return func(s *Service) { s.auditor = a }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLookupTimeout bounds each provider call. Zero keeps the default.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

func WithCompanyThresholds(t CompanyThresholds) Option {
	return func(s *Service) { s.company = t }
}

func New(store ports.Store, provider ports.IdentityProvider, scorer *identity.Scorer, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if provider == nil {
		return nil, errors.New("identity provider is required")
	}
	if scorer == nil {
		return nil, errors.New("scorer is required")
	}
	s := &Service{
		store:         store,
		provider:      provider,
		scorer:        scorer,
		logger:        slog.Default(),
		tracer:        otel.Tracer(tracerName),
		lookupTimeout: defaultLookupTimeout,
		company:       DefaultCompanyThresholds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.company.ManualReview > s.company.AutoVerify {
		return nil, errors.New("company manual review threshold exceeds auto verify threshold")
	}
	return s, nil
}

// lookup calls the provider under the configured timeout and records the
// attempt. The raw identifier is never written to the log.
func (s *Service) lookup(ctx context.Context, userID id.UserID, vType models.VerificationType, req providers.LookupRequest) (*providers.LookupResult, error) {
	ctx, span := s.tracer.Start(ctx, "verification.lookup")
	defer span.End()

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.provider.Lookup(lookupCtx, req)
	s.metrics.ObserveLookup(s.provider.ID(), time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider lookup failed")
		s.logger.WarnContext(ctx, "provider lookup failed",
			"user_id", userID.String(),
			"provider", s.provider.ID(),
			"type", vType,
			"category", providers.GetCategory(err),
			"error", err,
		)
		s.emit(ctx, audit.Event{
			UserID:        userID,
			Subject:       string(vType),
			Action:        string(audit.EventProviderLookupFailed),
			Reason:        string(providers.GetCategory(err)),
			SubjectIDHash: audit.HashSubjectID(req.IDNumber),
		})
		return nil, err
	}
	return result, nil
}

// recordAttempt appends a verification log entry. Failures are logged, not
// returned: a missing log line must not undo a decision.
func (s *Service) recordAttempt(ctx context.Context, userID id.UserID, vType models.VerificationType, req providers.LookupRequest, result *providers.LookupResult, lookupErr error, confidence *float64) {
	entry := &models.VerificationLog{
		ID:       id.NewLogID(),
		UserID:   userID,
		Type:     vType,
		Provider: s.provider.ID(),
		RequestData: map[string]string{
			"id_hash": audit.HashSubjectID(req.IDNumber),
		},
		ConfidenceScore: confidence,
		CreatedAt:       s.clock(ctx),
	}
	for k, v := range req.Extra {
		entry.RequestData[k] = v
	}
	switch {
	case lookupErr != nil:
		entry.Status = models.LogFailed
		entry.ErrorMessage = providers.UserMessage(lookupErr, "Verification failed")
	case result.Passed:
		entry.Status = models.LogSuccess
		entry.IsMatch = true
		entry.ResponseData = result.Raw
	default:
		entry.Status = models.LogFailed
		entry.ResponseData = result.Raw
	}
	if err := s.store.AppendLog(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to append verification log",
			"user_id", userID.String(),
			"type", vType,
			"error", err,
		)
	}
}

// emit sends a non-compliance audit event. Delivery problems are logged only.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

// emitDecision records a compliance event. It fails closed: the caller must
// not persist the decision when this returns an error.
func (s *Service) emitDecision(ctx context.Context, event audit.Event) error {
	if s.auditor == nil {
		return nil
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification decision")
	}
	return nil
}

func (s *Service) notify(ctx context.Context, userID id.UserID, kind models.ProfileKind, status models.Status, reason string) {
	if s.notifier == nil {
		return
	}
	var err error
	switch status {
	case models.StatusVerified:
		err = s.notifier.Approved(ctx, userID, kind)
	case models.StatusRejected:
		err = s.notifier.Rejected(ctx, userID, kind, reason)
	case models.StatusInReview:
		err = s.notifier.InReview(ctx, userID, kind)
	default:
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "verification notification failed",
			"user_id", userID.String(),
			"kind", kind,
			"status", status,
			"error", err,
		)
	}
}

// clock returns the injected time, or the request time pinned by middleware.
func (s *Service) clock(ctx context.Context) time.Time {
	if s.now != nil {
		return s.now()
	}
	return requestcontext.Now(ctx)
}

func storeError(err error, kind models.ProfileKind) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, string(kind)+" profile not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+string(kind)+" profile")
}

func failSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
