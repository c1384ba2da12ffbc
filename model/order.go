// model/order.go
package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Order struct {
	ID             int64         `json:"id"`
	BookTitle      string        `json:"book_title"`
	BuyerEmail     string        `json:"buyer_email"`
	LibrarianEmail string        `json:"librarian_email"`
	Status         OrderStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	TrackingID     *string       `json:"tracking_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
