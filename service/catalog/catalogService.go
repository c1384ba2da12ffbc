package catalogsvc

import (
	"context"
	"errors"

	"bookcourier/model"
	bookrepo "bookcourier/repository/book"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Latest(ctx context.Context, limit int) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	UpdatePricing(ctx context.Context, id int64, mrp, ratePerDay float64) (bool, error)
	DeleteCascade(ctx context.Context, id int64) (int64, error)
	ListLibraries(ctx context.Context) ([]model.Library, error)
}

type Service interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context) ([]model.Book, error)
	Latest(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	UpdatePricing(ctx context.Context, id int64, mrp, ratePerDay float64) error

	// Delete removes the book and cascades to its orders, returning the
	// count of orders removed.
	Delete(ctx context.Context, id int64) (int64, error)

	Libraries(ctx context.Context) ([]model.Library, error)
}

const latestLimit = 4

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) (int64, error) {
	if b.Title == "" || b.MRPPrice < 0 || b.RentalRatePerDay < 0 {
		return 0, makeErr(ErrBadInput)
	}
	if b.Status == "" {
		b.Status = model.BookPublished
	}
	return s.r.Create(ctx, b)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Latest(ctx context.Context) ([]model.Book, error) {
	return s.r.Latest(ctx, latestLimit)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	return b, nil
}

func (s *service) UpdatePricing(ctx context.Context, id int64, mrp, ratePerDay float64) error {
	if mrp < 0 || ratePerDay < 0 {
		return makeErr(ErrBadInput)
	}
	ok, err := s.r.UpdatePricing(ctx, id, mrp, ratePerDay)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.r.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, bookrepo.ErrBookNotFound) {
			return 0, makeErr(ErrNotFound)
		}
		return 0, err
	}
	return n, nil
}

func (s *service) Libraries(ctx context.Context) ([]model.Library, error) {
	return s.r.ListLibraries(ctx)
}
