package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookcourier/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Latest(ctx context.Context, limit int) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	UpdatePricing(ctx context.Context, id int64, mrp, ratePerDay float64) (bool, error)

	// DeleteCascade removes the book and every order referencing its title
	// in one transaction. Returns the number of orders removed.
	DeleteCascade(ctx context.Context, id int64) (int64, error)

	ListLibraries(ctx context.Context) ([]model.Library, error)
}

var ErrBookNotFound = errors.New("book not found")

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, author, mrp_price, rental_rate_per_day, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, added_at`
	if err := r.db.QueryRowContext(ctx, q, b.Title, b.Author, b.MRPPrice, b.RentalRatePerDay, b.Status).
		Scan(&b.ID, &b.AddedAt); err != nil {
		return 0, err
	}
	return b.ID, nil
}

const bookCols = `id, title, author, mrp_price, rental_rate_per_day, status, added_at`

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	return r.query(ctx, `SELECT `+bookCols+` FROM books ORDER BY id DESC`)
}

func (r *repo) Latest(ctx context.Context, limit int) ([]model.Book, error) {
	return r.query(ctx, `SELECT `+bookCols+` FROM books ORDER BY added_at DESC LIMIT $1`, limit)
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.MRPPrice, &b.RentalRatePerDay, &b.Status, &b.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := r.db.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE id=$1`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.MRPPrice, &b.RentalRatePerDay, &b.Status, &b.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) UpdatePricing(ctx context.Context, id int64, mrp, ratePerDay float64) (bool, error) {
	const q = `
UPDATE books
SET mrp_price=$2, rental_rate_per_day=$3
WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, id, mrp, ratePerDay)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) DeleteCascade(ctx context.Context, id int64) (deleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Not-found must be decided before any cascade write happens.
	var title string
	const qSel = `SELECT title FROM books WHERE id=$1 FOR UPDATE`
	if err = tx.QueryRowContext(ctx, qSel, id).Scan(&title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrBookNotFound
		}
		return 0, err
	}

	// Settled orders carry a payments row whose foreign key would block the
	// orders delete, so the dependents go first.
	const qPayments = `
DELETE FROM payments
WHERE order_id IN (SELECT id FROM orders WHERE book_title=$1)`
	if _, err = tx.ExecContext(ctx, qPayments, title); err != nil {
		return 0, err
	}

	const qOrders = `DELETE FROM orders WHERE book_title=$1`
	res, err := tx.ExecContext(ctx, qOrders, title)
	if err != nil {
		return 0, err
	}
	deleted, _ = res.RowsAffected()

	const qBook = `DELETE FROM books WHERE id=$1`
	if _, err = tx.ExecContext(ctx, qBook, id); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *repo) ListLibraries(ctx context.Context) ([]model.Library, error) {
	const q = `SELECT id, name, location FROM libraries ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Library
	for rows.Next() {
		var l model.Library
		if err := rows.Scan(&l.ID, &l.Name, &l.Location); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
