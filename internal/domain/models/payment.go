package models

import (
	"encoding/json"
	"time"

	"boardinghouse-backend/internal/domain"
)

type Payment struct {
	ID                    int64                `json:"id"`
	TenantID              int64                `json:"tenant_id"`
	RoomID                int64                `json:"room_id"`
	RecordedBy            int64                `json:"recorded_by,omitempty"`
	PaymentDate           string               `json:"payment_date"`
	Amount                float64              `json:"amount"`
	Status                domain.PaymentStatus `json:"payment_status"`
	ReferenceNo           string               `json:"reference_no"`
	StripePaymentIntentID string               `json:"stripe_payment_intent_id,omitempty"`
	Method                string               `json:"payment_method"`
	Currency              string               `json:"currency"`
	PaidAt                *time.Time           `json:"paid_at,omitempty"`
	Notes                 string               `json:"notes,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
}

type PaymentWithRefs struct {
	Payment
	RoomNumber string `json:"room_number"`
	TenantName string `json:"tenant_name"`
}

// PaymentTransaction is the best-effort gateway audit row. Losing one never
// fails the enclosing payment flow.
type PaymentTransaction struct {
	ID                    int64           `json:"id"`
	BookingID             int64           `json:"booking_id"`
	TransactionID         string          `json:"transaction_id"`
	Method                string          `json:"payment_method"`
	Amount                float64         `json:"amount"`
	Currency              string          `json:"currency"`
	Status                string          `json:"status"`
	StripePaymentIntentID string          `json:"stripe_payment_intent_id"`
	StripeChargeID        string          `json:"stripe_charge_id"`
	GatewayResponse       json.RawMessage `json:"gateway_response,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}
