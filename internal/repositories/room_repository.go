package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
)

type RoomRepository struct {
	DB *sql.DB
}

func (r RoomRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const roomColumns = `id, room_number, COALESCE(capacity,''), COALESCE(rental_term,''),
       price_monthly, COALESCE(description,''), status, COALESCE(image_urls,'[]'),
       COALESCE(created_by,0), created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (models.Room, error) {
	var rm models.Room
	var status string
	var rawImages string
	if err := row.Scan(
		&rm.ID,
		&rm.RoomNumber,
		&rm.Capacity,
		&rm.RentalTerm,
		&rm.PriceMonthly,
		&rm.Description,
		&status,
		&rawImages,
		&rm.CreatedBy,
		&rm.CreatedAt,
		&rm.UpdatedAt,
	); err != nil {
		return models.Room{}, err
	}
	rm.Status = domain.RoomStatus(status)
	if err := json.Unmarshal([]byte(rawImages), &rm.ImageURLs); err != nil {
		rm.ImageURLs = nil
	}
	return rm, nil
}

func (r RoomRepository) GetByID(id int64) (models.Room, error) {
	if id <= 0 {
		return models.Room{}, domain.ValidationError{Field: "room_id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+roomColumns+` FROM rooms WHERE id=? LIMIT 1`, id)
	rm, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, domain.NotFoundError{Resource: "room", Err: err}
		}
		return models.Room{}, err
	}
	return rm, nil
}

// List returns rooms, optionally filtered by status, newest first.
func (r RoomRepository) List(status domain.RoomStatus) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + roomColumns + ` FROM rooms WHERE status=? ORDER BY created_at DESC`
		args = append(args, string(status))
	}
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r RoomRepository) Create(rm models.Room) (int64, error) {
	images, _ := json.Marshal(rm.ImageURLs)
	res, err := r.db().Exec(`
		INSERT INTO rooms (room_number, capacity, rental_term, price_monthly, description, status, image_urls, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		rm.RoomNumber, rm.Capacity, rm.RentalTerm, rm.PriceMonthly, rm.Description, string(rm.Status), string(images), rm.CreatedBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RoomRepository) Update(rm models.Room) error {
	images, _ := json.Marshal(rm.ImageURLs)
	_, err := r.db().Exec(`
		UPDATE rooms
		SET room_number=?, capacity=?, rental_term=?, price_monthly=?, description=?, status=?, image_urls=?, updated_at=NOW()
		WHERE id=?`,
		rm.RoomNumber, rm.Capacity, rm.RentalTerm, rm.PriceMonthly, rm.Description, string(rm.Status), string(images), rm.ID,
	)
	return err
}

func (r RoomRepository) UpdateStatus(id int64, status domain.RoomStatus) error {
	_, err := r.db().Exec(`UPDATE rooms SET status=?, updated_at=NOW() WHERE id=?`, string(status), id)
	return err
}

func (r RoomRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM rooms WHERE id=?`, id)
	return err
}

// CountByStatus powers the dashboard occupancy cards.
func (r RoomRepository) CountByStatus() (map[domain.RoomStatus]int, error) {
	rows, err := r.db().Query(`SELECT status, COUNT(*) FROM rooms GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.RoomStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[domain.RoomStatus(status)] = n
	}
	return out, rows.Err()
}
