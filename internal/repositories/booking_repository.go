package repositories

import (
	"database/sql"
	"errors"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetOwnedWithRoom loads a booking constrained to its owner, joined with the
// room. "Not found" and "not yours" intentionally read the same to the caller.
func (r BookingRepository) GetOwnedWithRoom(id, requestor int64) (models.BookingRequest, models.Room, error) {
	if id <= 0 || requestor <= 0 {
		return models.BookingRequest{}, models.Room{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	query := `
		SELECT b.id, b.room_id, b.requestor, b.status, COALESCE(b.message,''), COALESCE(b.contact_phone,''), b.created_at,
		       r.id, r.room_number, COALESCE(r.rental_term,''), r.price_monthly, r.status
		FROM booking_requests b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.id=? AND b.requestor=? LIMIT 1`

	var b models.BookingRequest
	var rm models.Room
	var bStatus, rStatus string
	if err := r.db().QueryRow(query, id, requestor).Scan(
		&b.ID, &b.RoomID, &b.Requestor, &bStatus, &b.Message, &b.ContactPhone, &b.CreatedAt,
		&rm.ID, &rm.RoomNumber, &rm.RentalTerm, &rm.PriceMonthly, &rStatus,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingRequest{}, models.Room{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.BookingRequest{}, models.Room{}, err
	}
	b.Status = domain.BookingStatus(bStatus)
	rm.Status = domain.RoomStatus(rStatus)
	return b, rm, nil
}

// GetWithRoom loads any booking joined with its room (staff surface, no
// ownership constraint).
func (r BookingRepository) GetWithRoom(id int64) (models.BookingWithRoom, error) {
	if id <= 0 {
		return models.BookingWithRoom{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	query := `
		SELECT b.id, b.room_id, b.requestor, b.status, COALESCE(b.message,''), COALESCE(b.contact_phone,''), b.created_at,
		       r.id, r.room_number, COALESCE(r.rental_term,''), r.price_monthly, r.status
		FROM booking_requests b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.id=? LIMIT 1`

	var b models.BookingWithRoom
	var bStatus, rStatus string
	if err := r.db().QueryRow(query, id).Scan(
		&b.ID, &b.RoomID, &b.Requestor, &bStatus, &b.Message, &b.ContactPhone, &b.CreatedAt,
		&b.Room.ID, &b.Room.RoomNumber, &b.Room.RentalTerm, &b.Room.PriceMonthly, &rStatus,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingWithRoom{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.BookingWithRoom{}, err
	}
	b.Status = domain.BookingStatus(bStatus)
	b.Room.Status = domain.RoomStatus(rStatus)
	return b, nil
}

func (r BookingRepository) Create(b models.BookingRequest) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO booking_requests (room_id, requestor, status, message, contact_phone, check_in, check_out, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.RoomID, b.Requestor, string(b.Status), b.Message, b.ContactPhone, nullIfEmpty(b.CheckIn), nullIfEmpty(b.CheckOut),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) ListByRequestor(requestor int64) ([]models.BookingWithRoom, error) {
	query := `
		SELECT b.id, b.room_id, b.requestor, b.status, COALESCE(b.message,''), COALESCE(b.contact_phone,''), b.created_at,
		       r.id, r.room_number, COALESCE(r.rental_term,''), r.price_monthly, r.status
		FROM booking_requests b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.requestor=?
		ORDER BY b.created_at DESC`
	return r.listJoined(query, requestor)
}

func (r BookingRepository) ListByStatus(status domain.BookingStatus) ([]models.BookingWithRoom, error) {
	query := `
		SELECT b.id, b.room_id, b.requestor, b.status, COALESCE(b.message,''), COALESCE(b.contact_phone,''), b.created_at,
		       r.id, r.room_number, COALESCE(r.rental_term,''), r.price_monthly, r.status
		FROM booking_requests b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status=?
		ORDER BY b.created_at DESC`
	return r.listJoined(query, string(status))
}

func (r BookingRepository) listJoined(query string, arg any) ([]models.BookingWithRoom, error) {
	rows, err := r.db().Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingWithRoom{}
	for rows.Next() {
		var b models.BookingWithRoom
		var bStatus, rStatus string
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.Requestor, &bStatus, &b.Message, &b.ContactPhone, &b.CreatedAt,
			&b.Room.ID, &b.Room.RoomNumber, &b.Room.RentalTerm, &b.Room.PriceMonthly, &rStatus,
		); err != nil {
			return nil, err
		}
		b.Status = domain.BookingStatus(bStatus)
		b.Room.Status = domain.RoomStatus(rStatus)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) UpdateStatus(id int64, status domain.BookingStatus) error {
	_, err := r.db().Exec(`UPDATE booking_requests SET status=?, updated_at=NOW() WHERE id=?`, string(status), id)
	return err
}

// Decide stamps an admin decision onto a booking.
func (r BookingRepository) Decide(id int64, status domain.BookingStatus, message string, decidedBy int64) error {
	_, err := r.db().Exec(`
		UPDATE booking_requests
		SET status=?, message=?, decided_by=?, decided_at=NOW(), updated_at=NOW()
		WHERE id=?`,
		string(status), message, decidedBy, id,
	)
	return err
}

// Cancel flips a booking to Cancelled, restricted to its owner and to states
// the lifecycle allows out of. Returns NotFound when nothing matched.
func (r BookingRepository) Cancel(id, requestor int64) error {
	res, err := r.db().Exec(`
		UPDATE booking_requests
		SET status=?, decided_at=NOW(), updated_at=NOW()
		WHERE id=? AND requestor=? AND status IN (?, ?)`,
		string(domain.BookingCancelled), id, requestor, string(domain.BookingPending), string(domain.BookingApproved),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) CountPending() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM booking_requests WHERE status=?`, string(domain.BookingPending)).Scan(&n)
	return n, err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
