package repositories

import (
	"database/sql"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain/models"
)

// TransactionRepository writes gateway audit rows. Callers treat failures as
// warnings; nothing downstream depends on these rows existing.
type TransactionRepository struct {
	DB *sql.DB
}

func (r TransactionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TransactionRepository) Insert(t models.PaymentTransaction) error {
	_, err := r.db().Exec(`
		INSERT INTO payment_transactions (booking_id, transaction_id, payment_method, amount, currency, status, stripe_payment_intent_id, stripe_charge_id, gateway_response, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		t.BookingID, t.TransactionID, t.Method, t.Amount, t.Currency, t.Status, t.StripePaymentIntentID, t.StripeChargeID, string(t.GatewayResponse),
	)
	return err
}
