package book

type CreateBookReq struct {
	Title            string  `json:"title" validate:"required"`
	Author           string  `json:"author"`
	MRPPrice         float64 `json:"mrp_price" validate:"gte=0"`
	RentalRatePerDay float64 `json:"rental_rate_per_day" validate:"gte=0"`
	Status           string  `json:"status" validate:"omitempty,oneof=published unpublished"`
}

type UpdatePricingReq struct {
	MRPPrice         float64 `json:"mrp_price" validate:"gte=0"`
	RentalRatePerDay float64 `json:"rental_rate_per_day" validate:"gte=0"`
}
