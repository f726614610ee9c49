package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// applicationColumns is the ordered list of columns selected in application queries.
// Must match the scan order in scanApplication.
const applicationColumns = `id, user_id, author_bio, proof_links, author_keys,
	notes, status, submitted_at, reviewed_by, reviewed_at`

// scanApplication scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.AuthorApplication.
func scanApplication(scanner interface{ Scan(dest ...any) error }) (*domain.AuthorApplication, error) {
	var a domain.AuthorApplication

	var (
		proofLinks  string
		authorKeys  string
		status      string
		submittedAt string
		reviewedBy  sql.NullString
		reviewedAt  sql.NullString
	)

	err := scanner.Scan(
		&a.ID,
		&a.UserID,
		&a.AuthorBio,
		&proofLinks,
		&authorKeys,
		&a.Notes,
		&status,
		&submittedAt,
		&reviewedBy,
		&reviewedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ProofLinks, err = unmarshalStrings(proofLinks)
	if err != nil {
		return nil, err
	}
	a.AuthorKeys, err = unmarshalStrings(authorKeys)
	if err != nil {
		return nil, err
	}

	a.Status = domain.ApplicationStatus(status)

	a.SubmittedAt, err = parseTime(submittedAt)
	if err != nil {
		return nil, err
	}

	if reviewedBy.Valid {
		a.ReviewedBy = reviewedBy.String
	}
	a.ReviewedAt, err = parseNullableTime(reviewedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CreateApplication inserts a pending author application.
// The partial unique index on (user_id) WHERE status='pending' rejects a
// second pending application; that surfaces as store.ErrAlreadyExists.
func (s *Store) CreateApplication(ctx context.Context, app *domain.AuthorApplication) error {
	proofLinks, err := marshalStrings(app.ProofLinks)
	if err != nil {
		return err
	}
	authorKeys, err := marshalStrings(app.AuthorKeys)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO author_applications (
			id, user_id, author_bio, proof_links, author_keys,
			notes, status, submitted_at, reviewed_by, reviewed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID,
		app.UserID,
		app.AuthorBio,
		proofLinks,
		authorKeys,
		app.Notes,
		string(app.Status),
		formatTime(app.SubmittedAt),
		nullString(app.ReviewedBy),
		nullTimeString(app.ReviewedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetApplication retrieves an application by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetApplication(ctx context.Context, id string) (*domain.AuthorApplication, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM author_applications WHERE id = ?`, id)

	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListApplicationsForUser returns the user's applications in submission order.
func (s *Store) ListApplicationsForUser(ctx context.Context, userID string) ([]*domain.AuthorApplication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM author_applications
		 WHERE user_id = ? ORDER BY submitted_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListApplications returns applications filtered by status, or all when
// status is empty, in submission order.
func (s *Store) ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]*domain.AuthorApplication, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+applicationColumns+` FROM author_applications
			 ORDER BY submitted_at, id`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+applicationColumns+` FROM author_applications
			 WHERE status = ? ORDER BY submitted_at, id`, string(status))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func collectApplications(rows *sql.Rows) ([]*domain.AuthorApplication, error) {
	var apps []*domain.AuthorApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ReviewApplication transitions a pending application to a terminal status
// in a single transaction. The status update is conditional on the current
// status still being pending, so of two concurrent reviews exactly one
// succeeds; the other gets store.ErrAlreadyReviewed.
//
// On approval the owning user is promoted to author and the application's
// claimed author keys and bio are copied onto the user record. Promotion is
// idempotent: an already-author user keeps their role, but the application
// is still marked.
func (s *Store) ReviewApplication(ctx context.Context, id, reviewerID string, decision domain.ReviewDecision, reviewedAt time.Time) (*domain.AuthorApplication, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	status := domain.ApplicationRejected
	if decision == domain.DecisionApprove {
		status = domain.ApplicationApproved
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE author_applications SET
			status = ?,
			reviewed_by = ?,
			reviewed_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(status),
		reviewerID,
		formatTime(reviewedAt),
		id,
	)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Either the application does not exist or it is already terminal.
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM author_applications WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, store.ErrAlreadyReviewed
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM author_applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}

	if decision == domain.DecisionApprove {
		authorKeys, err := marshalStrings(app.AuthorKeys)
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE users SET
				updated_at = ?,
				role = ?,
				author_keys = ?,
				author_bio = ?
			WHERE id = ?`,
			formatTime(reviewedAt),
			string(domain.RoleAuthor),
			authorKeys,
			app.AuthorBio,
			app.UserID,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return app, nil
}
