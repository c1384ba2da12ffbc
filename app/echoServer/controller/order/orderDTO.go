package order

type PlaceOrderReq struct {
	BookTitle      string `json:"book_title" validate:"required"`
	LibrarianEmail string `json:"librarian_email" validate:"omitempty,email"`
}
