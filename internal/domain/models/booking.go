package models

import (
	"time"

	"boardinghouse-backend/internal/domain"
)

// BookingRequest is a user's expressed intent to rent a specific room, waiting
// for admin or payment-driven approval.
type BookingRequest struct {
	ID           int64                `json:"id"`
	RoomID       int64                `json:"room_id"`
	Requestor    int64                `json:"requestor"`
	Status       domain.BookingStatus `json:"status"`
	Message      string               `json:"message"`
	ContactPhone string               `json:"contact_phone"`
	CheckIn      string               `json:"check_in,omitempty"`
	CheckOut     string               `json:"check_out,omitempty"`
	DecidedBy    int64                `json:"decided_by,omitempty"`
	DecidedAt    *time.Time           `json:"decided_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// BookingWithRoom joins the request with its room for listing/detail views.
type BookingWithRoom struct {
	BookingRequest
	Room Room `json:"room"`
}
