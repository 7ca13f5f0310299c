package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetIDByIntentID looks up an existing payment by processor intent id. This is
// the fast-path idempotency probe; InsertIdempotent is the authoritative one.
func (r PaymentRepository) GetIDByIntentID(intentID string) (int64, bool, error) {
	if intentID == "" {
		return 0, false, nil
	}
	var id int64
	err := r.db().QueryRow(`SELECT id FROM payments WHERE stripe_payment_intent_id=? LIMIT 1`, intentID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

// InsertIdempotent inserts a payment conditioned on the unique index over
// stripe_payment_intent_id. Two concurrent confirmations for the same intent
// race at the store, not in application code: exactly one insert wins.
// inserted=false means the row already existed.
func (r PaymentRepository) InsertIdempotent(p models.Payment) (int64, bool, error) {
	if p.StripePaymentIntentID == "" {
		id, err := r.Insert(p)
		return id, err == nil, err
	}

	res, err := r.db().Exec(`
		INSERT INTO payments (tenant_id, room_id, recorded_by, payment_date, amount, payment_status, reference_no, stripe_payment_intent_id, payment_method, currency, paid_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE id=id`,
		p.TenantID, p.RoomID, p.RecordedBy, p.PaymentDate, p.Amount, string(p.Status), p.ReferenceNo, p.StripePaymentIntentID, p.Method, p.Currency, paidAtArg(p.PaidAt), p.Notes,
	)
	if err != nil {
		return 0, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n != 1 {
		// duplicate key hit; the original row stands
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	return id, true, err
}

// Insert records a payment without idempotency (admin manual entry, or a
// gateway flow that never returned an intent id).
func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (tenant_id, room_id, recorded_by, payment_date, amount, payment_status, reference_no, stripe_payment_intent_id, payment_method, currency, paid_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		p.TenantID, p.RoomID, p.RecordedBy, p.PaymentDate, p.Amount, string(p.Status), p.ReferenceNo, nullIfEmpty(p.StripePaymentIntentID), p.Method, p.Currency, paidAtArg(p.PaidAt), p.Notes,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(id int64) (models.PaymentWithRefs, error) {
	query := `
		SELECT p.id, COALESCE(p.tenant_id,0), p.room_id, COALESCE(p.payment_date,''), p.amount, p.payment_status,
		       COALESCE(p.reference_no,''), COALESCE(p.stripe_payment_intent_id,''), COALESCE(p.payment_method,''),
		       COALESCE(p.currency,''), p.paid_at, COALESCE(p.notes,''), p.created_at,
		       r.room_number, COALESCE(t.tenant_name,'')
		FROM payments p
		JOIN rooms r ON r.id = p.room_id
		LEFT JOIN tenants t ON t.id = p.tenant_id
		WHERE p.id=? LIMIT 1`

	var p models.PaymentWithRefs
	var status string
	var paidAt sql.NullTime
	err := r.db().QueryRow(query, id).Scan(
		&p.ID, &p.TenantID, &p.RoomID, &p.PaymentDate, &p.Amount, &status,
		&p.ReferenceNo, &p.StripePaymentIntentID, &p.Method,
		&p.Currency, &paidAt, &p.Notes, &p.CreatedAt,
		&p.RoomNumber, &p.TenantName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PaymentWithRefs{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.PaymentWithRefs{}, err
	}
	p.Status = domain.PaymentStatus(status)
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return p, nil
}

func (r PaymentRepository) List() ([]models.PaymentWithRefs, error) {
	return r.list(`
		SELECT p.id, COALESCE(p.tenant_id,0), p.room_id, COALESCE(p.payment_date,''), p.amount, p.payment_status,
		       COALESCE(p.reference_no,''), COALESCE(p.stripe_payment_intent_id,''), COALESCE(p.payment_method,''),
		       COALESCE(p.currency,''), p.paid_at, COALESCE(p.notes,''), p.created_at,
		       r.room_number, COALESCE(t.tenant_name,'')
		FROM payments p
		JOIN rooms r ON r.id = p.room_id
		LEFT JOIN tenants t ON t.id = p.tenant_id
		ORDER BY p.created_at DESC`)
}

// ListRecent feeds the dashboard's recent-activity card.
func (r PaymentRepository) ListRecent(limit int) ([]models.PaymentWithRefs, error) {
	return r.list(`
		SELECT p.id, COALESCE(p.tenant_id,0), p.room_id, COALESCE(p.payment_date,''), p.amount, p.payment_status,
		       COALESCE(p.reference_no,''), COALESCE(p.stripe_payment_intent_id,''), COALESCE(p.payment_method,''),
		       COALESCE(p.currency,''), p.paid_at, COALESCE(p.notes,''), p.created_at,
		       r.room_number, COALESCE(t.tenant_name,'')
		FROM payments p
		JOIN rooms r ON r.id = p.room_id
		LEFT JOIN tenants t ON t.id = p.tenant_id
		ORDER BY p.created_at DESC
		LIMIT ?`, limit)
}

func (r PaymentRepository) ListByProfile(profileID int64) ([]models.PaymentWithRefs, error) {
	return r.list(`
		SELECT p.id, COALESCE(p.tenant_id,0), p.room_id, COALESCE(p.payment_date,''), p.amount, p.payment_status,
		       COALESCE(p.reference_no,''), COALESCE(p.stripe_payment_intent_id,''), COALESCE(p.payment_method,''),
		       COALESCE(p.currency,''), p.paid_at, COALESCE(p.notes,''), p.created_at,
		       r.room_number, COALESCE(t.tenant_name,'')
		FROM payments p
		JOIN rooms r ON r.id = p.room_id
		JOIN tenants t ON t.id = p.tenant_id
		WHERE t.profile_id=?
		ORDER BY p.created_at DESC`, profileID)
}

func (r PaymentRepository) list(query string, args ...any) ([]models.PaymentWithRefs, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PaymentWithRefs{}
	for rows.Next() {
		var p models.PaymentWithRefs
		var status string
		var paidAt sql.NullTime
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.RoomID, &p.PaymentDate, &p.Amount, &status,
			&p.ReferenceNo, &p.StripePaymentIntentID, &p.Method,
			&p.Currency, &paidAt, &p.Notes, &p.CreatedAt,
			&p.RoomNumber, &p.TenantName,
		); err != nil {
			return nil, err
		}
		p.Status = domain.PaymentStatus(status)
		if paidAt.Valid {
			p.PaidAt = &paidAt.Time
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) UpdateStatus(id int64, status domain.PaymentStatus) error {
	res, err := r.db().Exec(`UPDATE payments SET payment_status=? WHERE id=?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// IncomeTotals returns all-time and given-month income over Paid payments.
func (r PaymentRepository) IncomeTotals(year int, month time.Month) (total, monthly float64, err error) {
	err = r.db().QueryRow(`
		SELECT COALESCE(SUM(amount),0),
		       COALESCE(SUM(CASE WHEN YEAR(payment_date)=? AND MONTH(payment_date)=? THEN amount ELSE 0 END),0)
		FROM payments WHERE payment_status=?`,
		year, int(month), string(domain.PaymentPaid),
	).Scan(&total, &monthly)
	return total, monthly, err
}

func (r PaymentRepository) CountPending() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM payments WHERE payment_status=?`, string(domain.PaymentPending)).Scan(&n)
	return n, err
}

func paidAtArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
