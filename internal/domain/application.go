package domain

import "time"

// ApplicationStatus represents the review state of an author application.
type ApplicationStatus string

const (
	// ApplicationPending means the application is awaiting admin review.
	ApplicationPending ApplicationStatus = "pending"
	// ApplicationApproved is terminal; the applicant was promoted to author.
	ApplicationApproved ApplicationStatus = "approved"
	// ApplicationRejected is terminal; the applicant may reapply.
	ApplicationRejected ApplicationStatus = "rejected"
)

// ReviewDecision is an admin's verdict on a pending application.
type ReviewDecision string

const (
	// DecisionApprove promotes the applicant to author.
	DecisionApprove ReviewDecision = "approve"
	// DecisionReject leaves the applicant's role unchanged.
	DecisionReject ReviewDecision = "reject"
)

// IsValid reports whether the decision is one of the known verdicts.
func (d ReviewDecision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// AuthorApplication is a reader's request to be verified as an author.
//
// A user may hold many applications over time (reapplication after rejection
// is allowed) but at most one pending application at a time, enforced by a
// storage-level constraint, not just service logic. ReviewedBy and ReviewedAt
// are set exactly when the status leaves pending.
type AuthorApplication struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	AuthorBio   string            `json:"author_bio"`
	ProofLinks  []string          `json:"proof_links"`
	AuthorKeys  []string          `json:"author_keys"`
	Notes       string            `json:"notes,omitempty"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submitted_at"`
	ReviewedBy  string            `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
}

// IsPending returns true while the application awaits review.
func (a *AuthorApplication) IsPending() bool {
	return a.Status == ApplicationPending
}

// IsTerminal returns true once the application has been approved or rejected.
// Terminal applications are never re-reviewed.
func (a *AuthorApplication) IsTerminal() bool {
	return a.Status == ApplicationApproved || a.Status == ApplicationRejected
}
