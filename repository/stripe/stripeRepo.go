package striperepo

import "context"

type CreateSessionReq struct {
	AmountCents   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	OrderID       string
	BookName      string
}

type CreateSessionResp struct {
	SessionID string
	URL       string
}

// Session is the authoritative view of a checkout: amounts, payer email and
// metadata are taken from here, never from the client.
type Session struct {
	PaymentIntentID string
	PaymentStatus   string
	AmountTotal     int64
	CustomerEmail   string
	OrderID         string
	BookName        string
}

type Repo interface {
	CreateCheckoutSession(ctx context.Context, req CreateSessionReq) (*CreateSessionResp, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
