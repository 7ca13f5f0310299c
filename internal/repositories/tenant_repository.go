package repositories

import (
	"database/sql"
	"errors"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
)

type TenantRepository struct {
	DB *sql.DB
}

func (r TenantRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetActiveByProfileRoom finds the Active tenancy for (profile, room), if any.
func (r TenantRepository) GetActiveByProfileRoom(profileID, roomID int64) (models.Tenant, bool, error) {
	query := `
		SELECT id, room_id, profile_id, COALESCE(tenant_name,''), COALESCE(rent_start,''), COALESCE(rent_due,''), COALESCE(move_in_date,''), status
		FROM tenants
		WHERE profile_id=? AND room_id=? AND status=? LIMIT 1`

	var t models.Tenant
	var status string
	err := r.db().QueryRow(query, profileID, roomID, string(domain.TenantActive)).Scan(
		&t.ID, &t.RoomID, &t.ProfileID, &t.TenantName, &t.RentStart, &t.RentDue, &t.MoveInDate, &status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tenant{}, false, nil
		}
		return models.Tenant{}, false, err
	}
	t.Status = domain.TenantStatus(status)
	return t, true, nil
}

func (r TenantRepository) Create(t models.Tenant) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO tenants (room_id, profile_id, tenant_name, rent_start, rent_due, move_in_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		t.RoomID, t.ProfileID, t.TenantName, nullIfEmpty(t.RentStart), nullIfEmpty(t.RentDue), nullIfEmpty(t.MoveInDate), string(t.Status),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TenantRepository) GetByID(id int64) (models.Tenant, error) {
	query := `
		SELECT id, room_id, profile_id, COALESCE(tenant_name,''), COALESCE(rent_start,''), COALESCE(rent_due,''), COALESCE(move_in_date,''), status
		FROM tenants WHERE id=? LIMIT 1`

	var t models.Tenant
	var status string
	err := r.db().QueryRow(query, id).Scan(
		&t.ID, &t.RoomID, &t.ProfileID, &t.TenantName, &t.RentStart, &t.RentDue, &t.MoveInDate, &status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tenant{}, domain.NotFoundError{Resource: "tenant", Err: err}
		}
		return models.Tenant{}, err
	}
	t.Status = domain.TenantStatus(status)
	return t, nil
}

func (r TenantRepository) SetStatus(id int64, status domain.TenantStatus) error {
	_, err := r.db().Exec(`UPDATE tenants SET status=?, updated_at=NOW() WHERE id=?`, string(status), id)
	return err
}

func (r TenantRepository) ListWithRooms() ([]models.TenantWithRoom, error) {
	query := `
		SELECT t.id, t.room_id, t.profile_id, COALESCE(t.tenant_name,''), COALESCE(t.rent_start,''), COALESCE(t.rent_due,''), COALESCE(t.move_in_date,''), t.status,
		       r.room_number, r.price_monthly
		FROM tenants t
		JOIN rooms r ON r.id = t.room_id
		ORDER BY t.created_at DESC`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TenantWithRoom{}
	for rows.Next() {
		var t models.TenantWithRoom
		var status string
		if err := rows.Scan(
			&t.ID, &t.RoomID, &t.ProfileID, &t.TenantName, &t.RentStart, &t.RentDue, &t.MoveInDate, &status,
			&t.RoomNumber, &t.PriceMonthly,
		); err != nil {
			return nil, err
		}
		t.Status = domain.TenantStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TenantRepository) ListByProfile(profileID int64) ([]models.TenantWithRoom, error) {
	query := `
		SELECT t.id, t.room_id, t.profile_id, COALESCE(t.tenant_name,''), COALESCE(t.rent_start,''), COALESCE(t.rent_due,''), COALESCE(t.move_in_date,''), t.status,
		       r.room_number, r.price_monthly
		FROM tenants t
		JOIN rooms r ON r.id = t.room_id
		WHERE t.profile_id=?
		ORDER BY t.created_at DESC`

	rows, err := r.db().Query(query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TenantWithRoom{}
	for rows.Next() {
		var t models.TenantWithRoom
		var status string
		if err := rows.Scan(
			&t.ID, &t.RoomID, &t.ProfileID, &t.TenantName, &t.RentStart, &t.RentDue, &t.MoveInDate, &status,
			&t.RoomNumber, &t.PriceMonthly,
		); err != nil {
			return nil, err
		}
		t.Status = domain.TenantStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TenantRepository) CountActive() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM tenants WHERE status=?`, string(domain.TenantActive)).Scan(&n)
	return n, err
}
