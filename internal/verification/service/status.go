package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/sentinel"
)

// GetStatus loads both profile kinds concurrently. A user may hold either or
// both; holding neither is not found.
func (s *Service) GetStatus(ctx context.Context, userID id.UserID) (*models.StatusView, error) {
	ctx, span := s.tracer.Start(ctx, "verification.GetStatus")
	defer span.End()

	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	view := &models.StatusView{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		agent, err := s.store.FindAgent(gctx, userID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load agent profile")
		}
		view.Agent = agent
		return nil
	})

	g.Go(func() error {
		company, err := s.store.FindCompany(gctx, userID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company profile")
		}
		view.Company = company
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, failSpan(span, err)
	}
	if view.Agent == nil && view.Company == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no agent or company profile")
	}
	return view, nil
}

// ListLogs returns the user's verification attempts, newest first.
func (s *Service) ListLogs(ctx context.Context, userID id.UserID) ([]*models.VerificationLog, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	logs, err := s.store.ListLogs(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification logs")
	}
	return logs, nil
}
