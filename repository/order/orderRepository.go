package orderrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookcourier/model"
)

type Repo interface {
	Insert(ctx context.Context, o *model.Order) error
	ListByBuyer(ctx context.Context, email string) ([]model.Order, error)
	ByID(ctx context.Context, id int64) (*model.Order, error)

	// CancelPending flips a pending order to cancelled. When no row changed
	// it reports the order's current status so the caller can tell an
	// idempotent replay from an illegal transition.
	CancelPending(ctx context.Context, id int64) (changed bool, status model.OrderStatus, err error)
}

var ErrOrderNotFound = errors.New("order not found")

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const orderCols = `id, book_title, buyer_email, librarian_email, status, payment_status, tracking_id, created_at`

func (r *repo) Insert(ctx context.Context, o *model.Order) error {
	const q = `
INSERT INTO orders (book_title, buyer_email, librarian_email, status, payment_status)
VALUES ($1,$2,$3,'pending','unpaid')
RETURNING id, status, payment_status, created_at`
	return r.db.QueryRowContext(ctx, q, o.BookTitle, o.BuyerEmail, o.LibrarianEmail).
		Scan(&o.ID, &o.Status, &o.PaymentStatus, &o.CreatedAt)
}

func (r *repo) ListByBuyer(ctx context.Context, email string) ([]model.Order, error) {
	const q = `
SELECT ` + orderCols + `
FROM orders
WHERE lower(buyer_email) = lower($1)
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.BookTitle, &o.BuyerEmail, &o.LibrarianEmail,
			&o.Status, &o.PaymentStatus, &o.TrackingID, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Order, error) {
	var o model.Order
	err := r.db.QueryRowContext(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.BookTitle, &o.BuyerEmail, &o.LibrarianEmail,
			&o.Status, &o.PaymentStatus, &o.TrackingID, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) CancelPending(ctx context.Context, id int64) (bool, model.OrderStatus, error) {
	// Guarded update: the status predicate makes the transition atomic,
	// no row lock needed.
	const q = `
UPDATE orders
SET status='cancelled'
WHERE id=$1 AND status='pending'`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, "", err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, model.OrderCancelled, nil
	}

	var status model.OrderStatus
	err = r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, "", ErrOrderNotFound
	}
	if err != nil {
		return false, "", err
	}
	return false, status, nil
}
