package paymentsvc

import (
	"context"
	"errors"
	"regexp"
	"testing"

	paymentrepo "bookcourier/repository/payment"
	striperepo "bookcourier/repository/stripe"

	"github.com/stretchr/testify/require"
)

var trackingPattern = regexp.MustCompile(`^PRCL-\d{8}-[0-9A-F]{6}$`)

type stripeMock struct {
	createFn   func(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CreateSessionResp, error)
	retrieveFn func(ctx context.Context, sessionID string) (*striperepo.Session, error)
}

func (m *stripeMock) CreateCheckoutSession(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CreateSessionResp, error) {
	return m.createFn(ctx, req)
}
func (m *stripeMock) RetrieveSession(ctx context.Context, sessionID string) (*striperepo.Session, error) {
	return m.retrieveFn(ctx, sessionID)
}

type repoMock struct {
	byTransactionFn func(ctx context.Context, transactionID string) (*Payment, error)
	settleFn        func(ctx context.Context, p *Payment) error

	settled []*Payment
}

func (m *repoMock) ByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	if m.byTransactionFn == nil {
		return nil, nil
	}
	return m.byTransactionFn(ctx, transactionID)
}

func (m *repoMock) Settle(ctx context.Context, p *Payment) error {
	m.settled = append(m.settled, p)
	if m.settleFn == nil {
		return nil
	}
	return m.settleFn(ctx, p)
}

func paidSession() *striperepo.Session {
	return &striperepo.Session{
		PaymentIntentID: "pi_123",
		PaymentStatus:   "paid",
		AmountTotal:     1200,
		CustomerEmail:   "buyer@example.com",
		OrderID:         "1",
		BookName:        "Dune",
	}
}

func TestReconcile_FirstTimeSettles(t *testing.T) {
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			require.Equal(t, "sess_1", sessionID)
			return paidSession(), nil
		},
	}
	r := &repoMock{}
	s := New(r, x, "http://s", "http://c")

	res, err := s.Reconcile(context.Background(), "sess_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.Settled)
	require.True(t, res.OrderUpdated)
	require.True(t, res.PaymentInserted)
	require.False(t, res.AlreadyReconciled)
	require.Regexp(t, trackingPattern, res.TrackingID)

	require.Len(t, r.settled, 1)
	p := r.settled[0]
	require.Equal(t, 12.00, p.Amount)
	require.Equal(t, int64(1), p.OrderID)
	require.Equal(t, "Dune", p.BookName)
	require.Equal(t, "pi_123", p.TransactionID)
	require.Equal(t, "buyer@example.com", p.CustomerEmail)
	require.Equal(t, res.TrackingID, p.TrackingID)
}

func TestReconcile_ReplayIsReadOnly(t *testing.T) {
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			return paidSession(), nil
		},
	}
	r := &repoMock{
		byTransactionFn: func(ctx context.Context, transactionID string) (*Payment, error) {
			require.Equal(t, "pi_123", transactionID)
			return &Payment{ID: 5, TransactionID: transactionID, TrackingID: "PRCL-20240101-ABCDEF"}, nil
		},
	}
	s := New(r, x, "http://s", "http://c")

	res, err := s.Reconcile(context.Background(), "sess_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.AlreadyReconciled)
	require.False(t, res.OrderUpdated)
	require.False(t, res.PaymentInserted)
	require.Equal(t, "PRCL-20240101-ABCDEF", res.TrackingID)
	require.Empty(t, r.settled, "replay must not write")
}

func TestReconcile_UnsettledSessionIsAcknowledgedNoop(t *testing.T) {
	sess := paidSession()
	sess.PaymentStatus = "unpaid"
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			return sess, nil
		},
	}
	r := &repoMock{}
	s := New(r, x, "http://s", "http://c")

	res, err := s.Reconcile(context.Background(), "sess_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.False(t, res.Settled)
	require.False(t, res.OrderUpdated)
	require.Empty(t, r.settled)
}

func TestReconcile_UpstreamFailure(t *testing.T) {
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			return nil, errors.New("stripe down")
		},
	}
	s := New(&repoMock{}, x, "http://s", "http://c")

	_, err := s.Reconcile(context.Background(), "sess_1")
	require.Equal(t, ErrUpstream, Code(err))
}

func TestReconcile_DuplicateInsertMeansAlreadyReconciled(t *testing.T) {
	// Models the race where a concurrent callback settles between our
	// lookup and our insert; the unique index converts it to a replay.
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			return paidSession(), nil
		},
	}
	r := &repoMock{
		settleFn: func(ctx context.Context, p *Payment) error {
			return paymentrepo.ErrDuplicateTransaction
		},
	}
	s := New(r, x, "http://s", "http://c")

	res, err := s.Reconcile(context.Background(), "sess_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.AlreadyReconciled)
}

func TestReconcile_OrderNotFound(t *testing.T) {
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			return paidSession(), nil
		},
	}
	r := &repoMock{
		settleFn: func(ctx context.Context, p *Payment) error {
			return paymentrepo.ErrOrderNotFound
		},
	}
	s := New(r, x, "http://s", "http://c")

	_, err := s.Reconcile(context.Background(), "sess_1")
	require.Equal(t, ErrOrderNotFound, Code(err))
}

func TestReconcile_BadMetadata(t *testing.T) {
	sess := paidSession()
	sess.OrderID = "not-a-number"
	x := &stripeMock{
		retrieveFn: func(ctx context.Context, sessionID string) (*striperepo.Session, error) {
			return sess, nil
		},
	}
	s := New(&repoMock{}, x, "http://s", "http://c")

	_, err := s.Reconcile(context.Background(), "sess_1")
	require.Equal(t, ErrBadInput, Code(err))
}

func TestCreateCheckout(t *testing.T) {
	x := &stripeMock{
		createFn: func(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CreateSessionResp, error) {
			require.Equal(t, int64(1200), req.AmountCents)
			require.Equal(t, "usd", req.Currency)
			require.Equal(t, "Dune", req.ProductName)
			require.Equal(t, "1", req.OrderID)
			require.Equal(t, "http://s", req.SuccessURL)
			return &striperepo.CreateSessionResp{SessionID: "sess_1", URL: "https://checkout.example/s1"}, nil
		},
	}
	s := New(&repoMock{}, x, "http://s", "http://c")

	out, err := s.CreateCheckout(context.Background(), CheckoutReq{
		OrderID:       1,
		BookName:      "Dune",
		AmountCents:   1200,
		CustomerEmail: "buyer@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "sess_1", out.SessionID)
	require.Equal(t, "https://checkout.example/s1", out.URL)
}

func TestCreateCheckout_BadInput(t *testing.T) {
	s := New(&repoMock{}, &stripeMock{}, "http://s", "http://c")

	_, err := s.CreateCheckout(context.Background(), CheckoutReq{OrderID: 0, AmountCents: 100})
	require.Equal(t, ErrBadInput, Code(err))

	_, err = s.CreateCheckout(context.Background(), CheckoutReq{OrderID: 1, AmountCents: 0})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestCreateCheckout_Upstream(t *testing.T) {
	x := &stripeMock{
		createFn: func(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CreateSessionResp, error) {
			return nil, errors.New("gateway timeout")
		},
	}
	s := New(&repoMock{}, x, "http://s", "http://c")

	_, err := s.CreateCheckout(context.Background(), CheckoutReq{OrderID: 1, AmountCents: 100})
	require.Equal(t, ErrUpstream, Code(err))
}
