// model/book.go
package model

import "time"

type BookStatus string

const (
	BookPublished   BookStatus = "published"
	BookUnpublished BookStatus = "unpublished"
)

type Book struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Author           string     `json:"author"`
	MRPPrice         float64    `json:"mrp_price"`
	RentalRatePerDay float64    `json:"rental_rate_per_day"`
	Status           BookStatus `json:"status"`
	AddedAt          time.Time  `json:"added_at"`
}

type Library struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
