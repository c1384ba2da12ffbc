package paymentsvc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bookcourier/model"
	paymentrepo "bookcourier/repository/payment"
	striperepo "bookcourier/repository/stripe"
	"bookcourier/util/tracking"
)

type ErrCode string

const (
	ErrOrderNotFound   ErrCode = "ORDER_NOT_FOUND"
	ErrOrderNotPending ErrCode = "ORDER_NOT_PENDING"
	ErrUpstream        ErrCode = "UPSTREAM"
	ErrBadInput        ErrCode = "BAD_INPUT"
)

type codedError struct {
	code ErrCode
	err  error
}

func (e codedError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.code, e.err)
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.err }

func makeErr(c ErrCode) error           { return codedError{code: c} }
func wrapErr(c ErrCode, err error) error { return codedError{code: c, err: err} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type CheckoutReq struct {
	OrderID       int64
	BookName      string
	AmountCents   int64
	Currency      string
	CustomerEmail string
}

type CheckoutCreated struct {
	SessionID string
	URL       string
}

// ReconcileResult reports the outcome of both writes for observability.
type ReconcileResult struct {
	Success           bool   `json:"success"`
	TrackingID        string `json:"tracking_id,omitempty"`
	AlreadyReconciled bool   `json:"-"`
	Settled           bool   `json:"-"`
	OrderUpdated      bool   `json:"order_updated"`
	PaymentInserted   bool   `json:"payment_inserted"`
}

// Payment = model shape
type Payment = model.Payment

type Repo interface {
	ByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	Settle(ctx context.Context, p *Payment) error
}

type Service interface {
	// CreateCheckout opens a checkout session with the processor and
	// returns the redirect URL.
	CreateCheckout(ctx context.Context, req CheckoutReq) (*CheckoutCreated, error)

	// Reconcile materializes a payment for a settled checkout session and
	// advances the referenced order, exactly once per transaction id.
	Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error)
}

type service struct {
	pr         Repo
	x          striperepo.Repo
	successURL string
	cancelURL  string
}

func New(pr Repo, x striperepo.Repo, successURL, cancelURL string) Service {
	return &service{pr: pr, x: x, successURL: successURL, cancelURL: cancelURL}
}

func (s *service) CreateCheckout(ctx context.Context, req CheckoutReq) (*CheckoutCreated, error) {
	if req.OrderID <= 0 || req.AmountCents <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	resp, err := s.x.CreateCheckoutSession(ctx, striperepo.CreateSessionReq{
		AmountCents:   req.AmountCents,
		Currency:      currency,
		ProductName:   req.BookName,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		OrderID:       strconv.FormatInt(req.OrderID, 10),
		BookName:      req.BookName,
	})
	if err != nil {
		return nil, wrapErr(ErrUpstream, err)
	}
	return &CheckoutCreated{SessionID: resp.SessionID, URL: resp.URL}, nil
}

func (s *service) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	if sessionID == "" {
		return nil, makeErr(ErrBadInput)
	}

	// Authoritative session details come from the processor; nothing
	// client-supplied is trusted past this point.
	sess, err := s.x.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, wrapErr(ErrUpstream, err)
	}

	if existing, err := s.pr.ByTransactionID(ctx, sess.PaymentIntentID); err != nil {
		return nil, err
	} else if existing != nil {
		return &ReconcileResult{
			Success:           true,
			AlreadyReconciled: true,
			TrackingID:        existing.TrackingID,
		}, nil
	}

	if sess.PaymentStatus != "paid" {
		// Not settled yet; acknowledge without writing anything.
		return &ReconcileResult{Success: true}, nil
	}

	orderID, err := strconv.ParseInt(sess.OrderID, 10, 64)
	if err != nil {
		return nil, wrapErr(ErrBadInput, fmt.Errorf("bad orderId metadata %q", sess.OrderID))
	}

	p := &Payment{
		Amount:        float64(sess.AmountTotal) / 100,
		CustomerEmail: sess.CustomerEmail,
		OrderID:       orderID,
		BookName:      sess.BookName,
		TransactionID: sess.PaymentIntentID,
		PaymentStatus: sess.PaymentStatus,
		TrackingID:    tracking.New(),
	}
	if err := s.pr.Settle(ctx, p); err != nil {
		switch {
		case errors.Is(err, paymentrepo.ErrDuplicateTransaction):
			// A concurrent callback won the insert; same outcome as the
			// lookup hit above.
			return &ReconcileResult{Success: true, AlreadyReconciled: true}, nil
		case errors.Is(err, paymentrepo.ErrOrderNotFound):
			return nil, wrapErr(ErrOrderNotFound, err)
		case errors.Is(err, paymentrepo.ErrOrderNotPending):
			// settled session against a cancelled order; surface, don't write
			return nil, wrapErr(ErrOrderNotPending, err)
		default:
			return nil, err
		}
	}

	return &ReconcileResult{
		Success:         true,
		Settled:         true,
		TrackingID:      p.TrackingID,
		OrderUpdated:    true,
		PaymentInserted: true,
	}, nil
}
