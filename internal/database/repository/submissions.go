package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jask/taxsheet/internal/database"
)

var ErrNotFound = errors.New("submission not found")

// SubmissionRepo handles archived submissions.
type SubmissionRepo struct {
	db *sql.DB
}

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

func (r *SubmissionRepo) Insert(ctx context.Context, s Submission) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO submissions(id, taxpayer, selection, state, pdf_path, taken_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, s.ID, s.Taxpayer, string(s.Selection), string(s.State), s.PDFPath, s.TakenAt.UTC())
	return err
}

// List returns the newest submissions first. limit <= 0 means no limit.
func (r *SubmissionRepo) List(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, taxpayer, selection, state, pdf_path, taken_at, created_at
	FROM submissions
	ORDER BY taken_at DESC, id
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

const selectByID = `
	SELECT id, taxpayer, selection, state, pdf_path, taken_at, created_at
	FROM submissions WHERE id = ?`

func (r *SubmissionRepo) Get(ctx context.Context, id string) (Submission, error) {
	s, err := scanSubmission(r.db.QueryRowContext(ctx, selectByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return s, err
}

// Delete removes a submission and returns the row as it was stored.
func (r *SubmissionRepo) Delete(ctx context.Context, id string) (Submission, error) {
	var removed Submission
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		s, err := scanSubmission(tx.QueryRowContext(ctx, selectByID, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id); err != nil {
			return err
		}
		removed = s
		return nil
	})
	if err != nil {
		return Submission{}, err
	}
	return removed, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(sc scanner) (Submission, error) {
	var s Submission
	var sel, state string
	if err := sc.Scan(&s.ID, &s.Taxpayer, &sel, &state, &s.PDFPath, &s.TakenAt, &s.CreatedAt); err != nil {
		return Submission{}, err
	}
	s.Selection = []byte(sel)
	s.State = []byte(state)
	return s, nil
}
