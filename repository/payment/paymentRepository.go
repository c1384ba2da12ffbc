package paymentrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookcourier/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateTransaction maps the unique violation on
	// payments.transaction_id; callers treat it as already reconciled.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotPending      = errors.New("order not pending")
)

type Repo interface {
	ByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)

	// Settle advances the order pending→paid, stamps the tracking id and
	// inserts the payment record as one transaction.
	Settle(ctx context.Context, p *model.Payment) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) ByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	const q = `
SELECT id, amount, customer_email, order_id, book_name, transaction_id,
       payment_status, tracking_id, paid_at
FROM payments
WHERE transaction_id=$1`
	p := &model.Payment{}
	err := r.db.QueryRowContext(ctx, q, transactionID).
		Scan(&p.ID, &p.Amount, &p.CustomerEmail, &p.OrderID, &p.BookName,
			&p.TransactionID, &p.PaymentStatus, &p.TrackingID, &p.PaidAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) Settle(ctx context.Context, p *model.Payment) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qOrder = `
UPDATE orders
SET status='paid', payment_status='paid', tracking_id=$2
WHERE id=$1 AND status='pending'`
	res, err := tx.ExecContext(ctx, qOrder, p.OrderID, p.TrackingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		const qCheck = `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`
		if err = tx.QueryRowContext(ctx, qCheck, p.OrderID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			err = ErrOrderNotFound
			return err
		}
		// Order already terminal. Probe the insert anyway: a duplicate
		// transaction id means a concurrent callback settled first and this
		// call is a replay; anything else is a genuine conflict.
		if err = r.insert(ctx, tx, p); err != nil {
			return err
		}
		err = ErrOrderNotPending
		return err
	}

	if err = r.insert(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *repo) insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (amount, customer_email, order_id, book_name,
                      transaction_id, payment_status, tracking_id)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, paid_at`
	err := tx.QueryRowContext(ctx, q, p.Amount, p.CustomerEmail, p.OrderID,
		p.BookName, p.TransactionID, p.PaymentStatus, p.TrackingID).
		Scan(&p.ID, &p.PaidAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateTransaction
		}
		return err
	}
	return nil
}
