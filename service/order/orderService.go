package ordersvc

import (
	"context"
	"errors"
	"strings"

	"bookcourier/model"
	orderrepo "bookcourier/repository/order"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrBadInput          ErrCode = "BAD_INPUT"
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
	Insert(ctx context.Context, o *model.Order) error
	ListByBuyer(ctx context.Context, email string) ([]model.Order, error)
	ByID(ctx context.Context, id int64) (*model.Order, error)
	CancelPending(ctx context.Context, id int64) (bool, model.OrderStatus, error)
}

// Users provisions a user row on first authenticated interaction.
type Users interface {
	Ensure(ctx context.Context, email string) error
}

type CancelResult struct {
	Status model.OrderStatus
	// Changed is false when the order was already cancelled and the call
	// was an idempotent replay.
	Changed bool
}

type Service interface {
	// Place creates a pending order for the authenticated buyer.
	Place(ctx context.Context, buyerEmail, bookTitle, librarianEmail string) (*model.Order, error)

	// MyOrders lists orders owned by the authenticated buyer.
	MyOrders(ctx context.Context, buyerEmail string) ([]model.Order, error)

	// Detail returns a single order, visible only to its buyer.
	Detail(ctx context.Context, id int64, buyerEmail string) (*model.Order, error)

	// Cancel drives pending→cancelled. Cancelling an already cancelled
	// order is a no-op; cancelling a paid order is an invalid transition.
	Cancel(ctx context.Context, id int64) (*CancelResult, error)
}

type service struct {
	r Repo
	u Users
}

func New(r Repo, u Users) Service { return &service{r: r, u: u} }

func (s *service) Place(ctx context.Context, buyerEmail, bookTitle, librarianEmail string) (*model.Order, error) {
	if buyerEmail == "" || bookTitle == "" {
		return nil, makeErr(ErrBadInput)
	}
	if err := s.u.Ensure(ctx, buyerEmail); err != nil {
		return nil, err
	}

	o := &model.Order{
		BookTitle:      bookTitle,
		BuyerEmail:     buyerEmail,
		LibrarianEmail: librarianEmail,
	}
	if err := s.r.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) MyOrders(ctx context.Context, buyerEmail string) ([]model.Order, error) {
	return s.r.ListByBuyer(ctx, buyerEmail)
}

func (s *service) Detail(ctx context.Context, id int64, buyerEmail string) (*model.Order, error) {
	o, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	// Another buyer's order is indistinguishable from a missing one.
	if !strings.EqualFold(o.BuyerEmail, buyerEmail) {
		return nil, makeErr(ErrNotFound)
	}
	return o, nil
}

func (s *service) Cancel(ctx context.Context, id int64) (*CancelResult, error) {
	changed, status, err := s.r.CancelPending(ctx, id)
	if err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if changed {
		return &CancelResult{Status: status, Changed: true}, nil
	}
	switch status {
	case model.OrderCancelled:
		// replayed cancellation, nothing to do
		return &CancelResult{Status: status, Changed: false}, nil
	default:
		return nil, makeErr(ErrInvalidTransition)
	}
}
