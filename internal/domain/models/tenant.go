package models

import (
	"time"

	"boardinghouse-backend/internal/domain"
)

// Tenant is an occupancy record linking a profile to a room.
type Tenant struct {
	ID         int64               `json:"id"`
	RoomID     int64               `json:"room_id"`
	ProfileID  int64               `json:"profile_id"`
	TenantName string              `json:"tenant_name"`
	RentStart  string              `json:"rent_start,omitempty"`
	RentDue    string              `json:"rent_due,omitempty"`
	MoveInDate string              `json:"move_in_date,omitempty"`
	Status     domain.TenantStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type TenantWithRoom struct {
	Tenant
	RoomNumber   string  `json:"room_number"`
	PriceMonthly float64 `json:"price_monthly"`
}
