package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
	"github.com/shelfbeat/shelfbeat-server/internal/id"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// ApplicationService manages the author-verification lifecycle: a reader
// submits an application, an admin approves or rejects it, and approval
// promotes the reader to author.
type ApplicationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewApplicationService creates a new application service.
func NewApplicationService(store store.Store, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{
		store:  store,
		logger: logger,
	}
}

// SubmitRequest contains a new author application.
type SubmitRequest struct {
	AuthorBio  string   `json:"author_bio" validate:"required,min=10"`
	ProofLinks []string `json:"proof_links" validate:"required,min=1,dive,url"`
	AuthorKeys []string `json:"author_keys" validate:"required,min=1"`
	Notes      string   `json:"notes"`
}

// Submit creates a pending application for the user. A user can hold at most
// one pending application; a duplicate submit surfaces as a conflict even
// when two submits race, because the pending slot is a storage-level unique
// constraint.
func (s *ApplicationService) Submit(ctx context.Context, userID string, req SubmitRequest) (*domain.AuthorApplication, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.IsAuthor() {
		return nil, domainerrors.Conflict("you are already a verified author")
	}

	appID, err := id.Generate("app")
	if err != nil {
		return nil, fmt.Errorf("generate application ID: %w", err)
	}

	app := &domain.AuthorApplication{
		ID:          appID,
		UserID:      userID,
		AuthorBio:   req.AuthorBio,
		ProofLinks:  req.ProofLinks,
		AuthorKeys:  req.AuthorKeys,
		Notes:       req.Notes,
		Status:      domain.ApplicationPending,
		SubmittedAt: time.Now(),
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("an application is already pending review")
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.logger.Info("author application submitted",
		"application_id", appID,
		"user_id", userID,
	)

	return app, nil
}

// ListForUser returns the user's applications in submission order, including
// terminal ones.
func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]*domain.AuthorApplication, error) {
	apps, err := s.store.ListApplicationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ListPending returns all pending applications. Admin-only, enforced by the
// caller.
func (s *ApplicationService) ListPending(ctx context.Context) ([]*domain.AuthorApplication, error) {
	apps, err := s.store.ListApplications(ctx, domain.ApplicationPending)
	if err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	return apps, nil
}

// ListAll returns every application regardless of status. Admin-only,
// enforced by the caller.
func (s *ApplicationService) ListAll(ctx context.Context) ([]*domain.AuthorApplication, error) {
	apps, err := s.store.ListApplications(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// Review decides a pending application. Approval promotes the applicant to
// author and copies the claimed author keys onto their record; the promotion
// and the status change commit together. A terminal application cannot be
// re-reviewed: of two racing reviews exactly one wins, the other gets a
// conflict.
func (s *ApplicationService) Review(ctx context.Context, applicationID, adminID string, decision domain.ReviewDecision) (*domain.AuthorApplication, error) {
	if !decision.IsValid() {
		return nil, domainerrors.Validationf("decision must be %q or %q", domain.DecisionApprove, domain.DecisionReject)
	}

	admin, err := s.store.GetUser(ctx, adminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("reviewer not found")
		}
		return nil, fmt.Errorf("get reviewer: %w", err)
	}
	if !admin.IsAdmin() {
		return nil, domainerrors.Forbidden("only admins can review applications")
	}

	app, err := s.store.ReviewApplication(ctx, applicationID, adminID, decision, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("application not found")
		case errors.Is(err, store.ErrAlreadyReviewed):
			return nil, domainerrors.Conflict("application has already been reviewed")
		}
		return nil, fmt.Errorf("review application: %w", err)
	}

	s.logger.Info("author application reviewed",
		"application_id", applicationID,
		"reviewed_by", adminID,
		"status", app.Status,
	)

	return app, nil
}
