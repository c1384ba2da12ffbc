package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookcourier/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	// Ensure inserts a user row with role 'user' if none exists for email.
	Ensure(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.User, error)
	SetRole(ctx context.Context, id int64, role model.Role) error
	RoleByEmail(ctx context.Context, email string) (string, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(email, password_hash, role)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, email, password_hash, role, created_at
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Ensure(ctx context.Context, email string) error {
	const q = `
		INSERT INTO users(email, role)
		SELECT $1, 'user'
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`
	_, err := r.db.ExecContext(ctx, q, email)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	const q = `
		SELECT id, email, role, created_at
		FROM users
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) SetRole(ctx context.Context, id int64, role model.Role) error {
	const q = `UPDATE users SET role=$2 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, id, role)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) RoleByEmail(ctx context.Context, email string) (string, error) {
	const q = `SELECT role FROM users WHERE lower(email) = lower($1)`
	var role string
	err := r.db.QueryRowContext(ctx, q, email).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}
