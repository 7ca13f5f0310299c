package models

import (
	"time"

	"boardinghouse-backend/internal/domain"
)

type Room struct {
	ID           int64             `json:"id"`
	RoomNumber   string            `json:"room_number"`
	Capacity     string            `json:"capacity"`
	RentalTerm   string            `json:"rental_term"`
	PriceMonthly float64           `json:"price_monthly"`
	Description  string            `json:"description"`
	Status       domain.RoomStatus `json:"status"`
	ImageURLs    []string          `json:"image_urls"`
	CreatedBy    int64             `json:"created_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
