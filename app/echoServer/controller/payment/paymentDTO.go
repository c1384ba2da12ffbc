package payment

type CreateCheckoutReq struct {
	OrderID       int64  `json:"order_id" validate:"required,gt=0"`
	BookName      string `json:"book_name" validate:"required"`
	AmountCents   int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
}
