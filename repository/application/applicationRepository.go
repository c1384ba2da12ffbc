package applicationrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookcourier/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyApplied = errors.New("application already exists")
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyDecided = errors.New("application already decided")
)

type Repo interface {
	Insert(ctx context.Context, a *model.LibrarianApplication) error
	List(ctx context.Context) ([]model.LibrarianApplication, error)

	// Decide flips a pending application to approved or rejected; approval
	// promotes the applicant's role in the same transaction so the
	// application and the user row can never disagree.
	Decide(ctx context.Context, id int64, approve bool) (*model.LibrarianApplication, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, a *model.LibrarianApplication) error {
	const q = `
INSERT INTO librarian_applications (applicant_email, status)
VALUES ($1,'pending')
RETURNING id, status, created_at`
	err := r.db.QueryRowContext(ctx, q, a.ApplicantEmail).
		Scan(&a.ID, &a.Status, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]model.LibrarianApplication, error) {
	const q = `
SELECT id, applicant_email, status, created_at
FROM librarian_applications
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LibrarianApplication
	for rows.Next() {
		var a model.LibrarianApplication
		if err := rows.Scan(&a.ID, &a.ApplicantEmail, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) Decide(ctx context.Context, id int64, approve bool) (_ *model.LibrarianApplication, err error) {
	status := model.ApplicationRejected
	if approve {
		status = model.ApplicationApproved
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a := &model.LibrarianApplication{ID: id, Status: status}
	const qApp = `
UPDATE librarian_applications
SET status=$2
WHERE id=$1 AND status='pending'
RETURNING applicant_email, created_at`
	err = tx.QueryRowContext(ctx, qApp, id, status).Scan(&a.ApplicantEmail, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		const qCheck = `SELECT EXISTS (SELECT 1 FROM librarian_applications WHERE id=$1)`
		if err = tx.QueryRowContext(ctx, qCheck, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			err = ErrAlreadyDecided
		} else {
			err = ErrNotFound
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if approve {
		const qRole = `UPDATE users SET role='librarian' WHERE lower(email) = lower($1)`
		if _, err = tx.ExecContext(ctx, qRole, a.ApplicantEmail); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}
