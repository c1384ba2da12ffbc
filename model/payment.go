// model/payment.go
package model

import "time"

// Payment is created exactly once per distinct TransactionID and is
// immutable afterwards. The unique index on transaction_id is the
// idempotency authority; the in-process lookup is just the fast path.
type Payment struct {
	ID            int64     `json:"id"`
	Amount        float64   `json:"amount"`
	CustomerEmail string    `json:"customer_email"`
	OrderID       int64     `json:"order_id"`
	BookName      string    `json:"book_name"`
	TransactionID string    `json:"transaction_id"`
	PaymentStatus string    `json:"payment_status"`
	TrackingID    string    `json:"tracking_id"`
	PaidAt        time.Time `json:"paid_at"`
}
