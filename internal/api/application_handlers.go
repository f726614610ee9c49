package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/service"
)

func (s *Server) registerApplicationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "submitApplication",
		Method:      http.MethodPost,
		Path:        "/api/v1/applications",
		Summary:     "Submit author application",
		Description: "Submits an author verification application for review",
		Tags:        []string{"Applications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubmitApplication)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyApplications",
		Method:      http.MethodGet,
		Path:        "/api/v1/applications/mine",
		Summary:     "List my applications",
		Description: "Returns the current user's applications, including reviewed ones",
		Tags:        []string{"Applications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyApplications)

	huma.Register(s.api, huma.Operation{
		OperationID: "listApplications",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/applications",
		Summary:     "List applications",
		Description: "Returns applications for admin review, optionally filtered to pending",
		Tags:        []string{"Applications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListApplications)

	huma.Register(s.api, huma.Operation{
		OperationID: "reviewApplication",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/applications/{id}/review",
		Summary:     "Review application",
		Description: "Approves or rejects a pending application. Approval promotes the applicant to author.",
		Tags:        []string{"Applications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReviewApplication)
}

// === DTOs ===

// ApplicationResponse contains application data in API responses.
type ApplicationResponse struct {
	ID          string     `json:"id" doc:"Application ID"`
	UserID      string     `json:"user_id" doc:"Applicant user ID"`
	Status      string     `json:"status" doc:"Review status (pending, approved, rejected)"`
	AuthorBio   string     `json:"author_bio" doc:"Claimed author bio"`
	ProofLinks  []string   `json:"proof_links" doc:"Links supporting the claim"`
	AuthorKeys  []string   `json:"author_keys" doc:"Claimed Open Library author keys"`
	Notes       string     `json:"notes,omitempty" doc:"Free-form notes for the reviewer"`
	SubmittedAt time.Time  `json:"submitted_at" doc:"Submission time"`
	ReviewedBy  string     `json:"reviewed_by,omitempty" doc:"Reviewer user ID"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty" doc:"Review time"`
}

// SubmitApplicationRequest is the request body for submitting an application.
type SubmitApplicationRequest struct {
	AuthorBio  string   `json:"author_bio" validate:"required,min=10" doc:"Author bio"`
	ProofLinks []string `json:"proof_links" validate:"required,min=1,dive,url" doc:"Links supporting the claim"`
	AuthorKeys []string `json:"author_keys" validate:"required,min=1" doc:"Open Library author keys being claimed"`
	Notes      string   `json:"notes,omitempty" validate:"max=2000" doc:"Notes for the reviewer"`
}

// SubmitApplicationInput wraps the submit request for Huma.
type SubmitApplicationInput struct {
	Authorization string `header:"Authorization"`
	Body          SubmitApplicationRequest
}

// ApplicationOutput wraps an application response for Huma.
type ApplicationOutput struct {
	Body ApplicationResponse
}

// ListApplicationsInput contains parameters for listing applications.
type ListApplicationsInput struct {
	Authorization string `header:"Authorization"`
	Status        string `query:"status" enum:"pending,all" default:"pending" doc:"Filter: pending or all"`
}

// ListMyApplicationsInput contains parameters for listing own applications.
type ListMyApplicationsInput struct {
	Authorization string `header:"Authorization"`
}

// ListApplicationsResponse contains a list of applications.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications" doc:"Applications in submission order"`
}

// ListApplicationsOutput wraps the list response for Huma.
type ListApplicationsOutput struct {
	Body ListApplicationsResponse
}

// ReviewApplicationRequest is the request body for reviewing an application.
type ReviewApplicationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject" doc:"Review decision"`
}

// ReviewApplicationInput wraps the review request for Huma.
type ReviewApplicationInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Application ID"`
	Body          ReviewApplicationRequest
}

func toApplicationResponse(app *domain.AuthorApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		UserID:      app.UserID,
		Status:      string(app.Status),
		AuthorBio:   app.AuthorBio,
		ProofLinks:  app.ProofLinks,
		AuthorKeys:  app.AuthorKeys,
		Notes:       app.Notes,
		SubmittedAt: app.SubmittedAt,
		ReviewedBy:  app.ReviewedBy,
		ReviewedAt:  app.ReviewedAt,
	}
}

func toApplicationResponses(apps []*domain.AuthorApplication) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(apps))
	for i, app := range apps {
		resp[i] = toApplicationResponse(app)
	}
	return resp
}

// === Handlers ===

func (s *Server) handleSubmitApplication(ctx context.Context, input *SubmitApplicationInput) (*ApplicationOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	app, err := s.services.Application.Submit(ctx, userID, service.SubmitRequest{
		AuthorBio:  input.Body.AuthorBio,
		ProofLinks: input.Body.ProofLinks,
		AuthorKeys: input.Body.AuthorKeys,
		Notes:      input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &ApplicationOutput{Body: toApplicationResponse(app)}, nil
}

func (s *Server) handleListMyApplications(ctx context.Context, input *ListMyApplicationsInput) (*ListApplicationsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	apps, err := s.services.Application.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ListApplicationsOutput{
		Body: ListApplicationsResponse{Applications: toApplicationResponses(apps)},
	}, nil
}

func (s *Server) handleListApplications(ctx context.Context, input *ListApplicationsInput) (*ListApplicationsOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	var (
		apps []*domain.AuthorApplication
		err  error
	)
	if input.Status == "all" {
		apps, err = s.services.Application.ListAll(ctx)
	} else {
		apps, err = s.services.Application.ListPending(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &ListApplicationsOutput{
		Body: ListApplicationsResponse{Applications: toApplicationResponses(apps)},
	}, nil
}

func (s *Server) handleReviewApplication(ctx context.Context, input *ReviewApplicationInput) (*ApplicationOutput, error) {
	reviewerID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	app, err := s.services.Application.Review(ctx, input.ID, reviewerID, domain.ReviewDecision(input.Body.Decision))
	if err != nil {
		return nil, err
	}

	return &ApplicationOutput{Body: toApplicationResponse(app)}, nil
}
