package repositories

import (
	"database/sql"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r NotificationRepository) Insert(n models.Notification) error {
	_, err := r.db().Exec(`
		INSERT INTO notifications (user_id, from_user, message, type, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		n.UserID, n.FromUser, n.Message, n.Type, n.IsRead,
	)
	return err
}

func (r NotificationRepository) ListByUser(userID int64) ([]models.Notification, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, COALESCE(from_user,''), message, COALESCE(type,''), is_read, created_at
		FROM notifications
		WHERE user_id=?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.FromUser, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips one notification, scoped to its recipient.
func (r NotificationRepository) MarkRead(id, userID int64) error {
	res, err := r.db().Exec(`UPDATE notifications SET is_read=1 WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "notification"}
	}
	return nil
}

func (r NotificationRepository) MarkAllRead(userID int64) error {
	_, err := r.db().Exec(`UPDATE notifications SET is_read=1 WHERE user_id=? AND is_read=0`, userID)
	return err
}

func (r NotificationRepository) Delete(id, userID int64) error {
	res, err := r.db().Exec(`DELETE FROM notifications WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "notification"}
	}
	return nil
}
