package ordersvc

import (
	"context"
	"testing"

	"bookcourier/model"
	orderrepo "bookcourier/repository/order"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	insertFn        func(ctx context.Context, o *model.Order) error
	listByBuyerFn   func(ctx context.Context, email string) ([]model.Order, error)
	byIDFn          func(ctx context.Context, id int64) (*model.Order, error)
	cancelPendingFn func(ctx context.Context, id int64) (bool, model.OrderStatus, error)
}

func (m *repoMock) Insert(ctx context.Context, o *model.Order) error { return m.insertFn(ctx, o) }
func (m *repoMock) ListByBuyer(ctx context.Context, email string) ([]model.Order, error) {
	return m.listByBuyerFn(ctx, email)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Order, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) CancelPending(ctx context.Context, id int64) (bool, model.OrderStatus, error) {
	return m.cancelPendingFn(ctx, id)
}

type usersMock struct {
	ensured []string
}

func (m *usersMock) Ensure(ctx context.Context, email string) error {
	m.ensured = append(m.ensured, email)
	return nil
}

func TestPlace_EnsuresUserAndInserts(t *testing.T) {
	u := &usersMock{}
	m := &repoMock{
		insertFn: func(ctx context.Context, o *model.Order) error {
			o.ID = 11
			o.Status = model.OrderPending
			o.PaymentStatus = model.PaymentUnpaid
			return nil
		},
	}
	s := New(m, u)

	o, err := s.Place(context.Background(), "buyer@example.com", "Dune", "lib@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(11), o.ID)
	require.Equal(t, model.OrderPending, o.Status)
	require.Equal(t, model.PaymentUnpaid, o.PaymentStatus)
	require.Equal(t, []string{"buyer@example.com"}, u.ensured)
}

func TestPlace_BadInput(t *testing.T) {
	s := New(&repoMock{}, &usersMock{})

	_, err := s.Place(context.Background(), "", "Dune", "")
	require.Equal(t, ErrBadInput, Code(err))

	_, err = s.Place(context.Background(), "buyer@example.com", "", "")
	require.Equal(t, ErrBadInput, Code(err))
}

func TestDetail_BuyerSeesOwnOrder(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Order, error) {
			require.Equal(t, int64(4), id)
			return &model.Order{ID: id, BuyerEmail: "Buyer@Example.com", BookTitle: "Dune"}, nil
		},
	}
	s := New(m, &usersMock{})

	o, err := s.Detail(context.Background(), 4, "buyer@example.com")
	require.NoError(t, err)
	require.Equal(t, "Dune", o.BookTitle)
}

func TestDetail_OtherBuyerLooksMissing(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Order, error) {
			return &model.Order{ID: id, BuyerEmail: "owner@example.com"}, nil
		},
	}
	s := New(m, &usersMock{})

	_, err := s.Detail(context.Background(), 4, "snoop@example.com")
	require.Equal(t, ErrNotFound, Code(err))
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Order, error) {
			return nil, orderrepo.ErrOrderNotFound
		},
	}
	s := New(m, &usersMock{})

	_, err := s.Detail(context.Background(), 99, "buyer@example.com")
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCancel_Pending(t *testing.T) {
	m := &repoMock{
		cancelPendingFn: func(ctx context.Context, id int64) (bool, model.OrderStatus, error) {
			require.Equal(t, int64(2), id)
			return true, model.OrderCancelled, nil
		},
	}
	s := New(m, &usersMock{})

	res, err := s.Cancel(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, model.OrderCancelled, res.Status)
}

func TestCancel_AlreadyCancelledIsNoop(t *testing.T) {
	calls := 0
	m := &repoMock{
		cancelPendingFn: func(ctx context.Context, id int64) (bool, model.OrderStatus, error) {
			calls++
			return false, model.OrderCancelled, nil
		},
	}
	s := New(m, &usersMock{})

	res, err := s.Cancel(context.Background(), 2)
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, model.OrderCancelled, res.Status)
	require.Equal(t, 1, calls)
}

func TestCancel_PaidIsInvalidTransition(t *testing.T) {
	m := &repoMock{
		cancelPendingFn: func(ctx context.Context, id int64) (bool, model.OrderStatus, error) {
			return false, model.OrderPaid, nil
		},
	}
	s := New(m, &usersMock{})

	_, err := s.Cancel(context.Background(), 2)
	require.Equal(t, ErrInvalidTransition, Code(err))
}

func TestCancel_NotFound(t *testing.T) {
	m := &repoMock{
		cancelPendingFn: func(ctx context.Context, id int64) (bool, model.OrderStatus, error) {
			return false, "", orderrepo.ErrOrderNotFound
		},
	}
	s := New(m, &usersMock{})

	_, err := s.Cancel(context.Background(), 99)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestTerminalStates(t *testing.T) {
	require.False(t, model.OrderPending.Terminal())
	require.True(t, model.OrderPaid.Terminal())
	require.True(t, model.OrderCancelled.Terminal())
}
