package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"idverify/internal/identity"
	"idverify/internal/verification/models"
	"idverify/internal/verification/service"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/httputil"
	"idverify/pkg/requestcontext"
)

// Service defines the verification operations the handler exposes.
type Service interface {
	SaveAgentProfile(ctx context.Context, userID id.UserID, details service.AgentDetails) (*models.AgentProfile, error)
	SaveCompanyProfile(ctx context.Context, userID id.UserID, details service.CompanyDetails) (*models.CompanyProfile, error)
	SubmitAgentVerification(ctx context.Context, userID id.UserID, req service.SubmitAgentRequest) (*models.Outcome, error)
	SubmitCompanyVerification(ctx context.Context, userID id.UserID, req service.SubmitCompanyRequest) (*models.Outcome, error)
	GetStatus(ctx context.Context, userID id.UserID) (*models.StatusView, error)
	ListLogs(ctx context.Context, userID id.UserID) ([]*models.VerificationLog, error)
	ReviewProfile(ctx context.Context, reviewerID id.UserID, req service.ReviewRequest) (*models.Outcome, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	scorer  *identity.Scorer
	logger  *slog.Logger
}

// New constructs a verification handler. The scorer backs the stateless
// /score endpoint.
func New(service Service, scorer *identity.Scorer, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		scorer:  scorer,
		logger:  logger,
	}
}

// Register mounts the user-facing endpoints. Callers must run it behind
// authentication.
func (h *Handler) Register(r chi.Router) {
	r.Put("/verifications/agent/profile", h.HandleSaveAgentProfile)
	r.Put("/verifications/company/profile", h.HandleSaveCompanyProfile)
	r.Post("/verifications/agent", h.HandleSubmitAgent)
	r.Post("/verifications/company", h.HandleSubmitCompany)
	r.Get("/verifications/status", h.HandleStatus)
	r.Get("/verifications/logs", h.HandleLogs)
	r.Post("/score", h.HandleScore)
}

// RegisterAdmin mounts the reviewer endpoints. Callers must run it behind
// authentication and the admin role check.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/verifications/{kind}/{userID}/review", h.HandleReview)
}

// HandleSaveAgentProfile handles PUT /verifications/agent/profile.
func (h *Handler) HandleSaveAgentProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AgentProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	agent, err := h.service.SaveAgentProfile(ctx, userID, req.Details())
	if err != nil {
		h.fail(ctx, w, "save agent profile failed", userID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agent)
}

// HandleSaveCompanyProfile handles PUT /verifications/company/profile.
func (h *Handler) HandleSaveCompanyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CompanyProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	company, err := h.service.SaveCompanyProfile(ctx, userID, service.CompanyDetails{CompanyName: req.CompanyName})
	if err != nil {
		h.fail(ctx, w, "save company profile failed", userID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, company)
}

// HandleSubmitAgent handles POST /verifications/agent.
func (h *Handler) HandleSubmitAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitAgentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.SubmitAgentVerification(ctx, userID, service.SubmitAgentRequest{
		IDType:   models.VerificationType(req.IDType),
		IDNumber: req.IDNumber,
	})
	if err != nil {
		h.fail(ctx, w, "agent verification failed", userID, err)
		return
	}

	h.logger.InfoContext(ctx, "agent verification submitted",
		"request_id", requestID,
		"user_id", userID.String(),
		"status", outcome.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}

// HandleSubmitCompany handles POST /verifications/company.
func (h *Handler) HandleSubmitCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitCompanyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.SubmitCompanyVerification(ctx, userID, service.SubmitCompanyRequest{RCNumber: req.RCNumber})
	if err != nil {
		h.fail(ctx, w, "company verification failed", userID, err)
		return
	}

	h.logger.InfoContext(ctx, "company verification submitted",
		"request_id", requestID,
		"user_id", userID.String(),
		"status", outcome.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}

// HandleStatus handles GET /verifications/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	view, err := h.service.GetStatus(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "load verification status failed", userID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatus(view))
}

// HandleLogs handles GET /verifications/logs.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	logs, err := h.service.ListLogs(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "list verification logs failed", userID, err)
		return
	}
	if logs == nil {
		logs = []*models.VerificationLog{}
	}
	httputil.WriteJSON(w, http.StatusOK, LogsResponse{Logs: logs, Count: len(logs)})
}

// HandleScore handles POST /score. It compares two identity records without
// touching any profile.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if _, ok := h.requireUser(w, ctx); !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ScoreRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.scorer.Score(req.Claimed, req.ParsedKnown()))
}

// HandleReview handles POST /admin/verifications/{kind}/{userID}/review.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	reviewerID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	targetID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user ID"))
		return
	}
	kind := models.ProfileKind(chi.URLParam(r, "kind"))
	if !kind.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown profile kind"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[ReviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.ReviewProfile(ctx, reviewerID, service.ReviewRequest{
		Kind:     kind,
		UserID:   targetID,
		Decision: models.Decision(req.Decision),
		Reason:   req.Reason,
	})
	if err != nil {
		h.fail(ctx, w, "verification review failed", targetID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) (id.UserID, bool) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, userID id.UserID, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID.String(),
		"error", err,
	)
	httputil.WriteError(w, err)
}
