package repositories

import (
	"database/sql"
	"errors"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/domain/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

func (r ProfileRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const profileColumns = `id, COALESCE(full_name,''), COALESCE(username,''), email, COALESCE(phone,''), COALESCE(role,'user'), COALESCE(status,'active'), COALESCE(avatar_url,''), created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Username, &p.Email, &p.Phone, &p.Role, &p.Status, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r ProfileRepository) GetByID(id int64) (models.Profile, error) {
	row := r.db().QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id=? LIMIT 1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, domain.NotFoundError{Resource: "profile", Err: err}
		}
		return models.Profile{}, err
	}
	return p, nil
}

// GetCredentials resolves a login identifier (email or username) to the
// profile plus its password hash.
func (r ProfileRepository) GetCredentials(identifier string) (models.Profile, string, error) {
	row := r.db().QueryRow(`
		SELECT `+profileColumns+`, password_hash
		FROM profiles
		WHERE email=? OR username=? LIMIT 1`, identifier, identifier)

	var p models.Profile
	var hash string
	if err := row.Scan(&p.ID, &p.FullName, &p.Username, &p.Email, &p.Phone, &p.Role, &p.Status, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, "", domain.NotFoundError{Resource: "profile", Err: err}
		}
		return models.Profile{}, "", err
	}
	return p, hash, nil
}

func (r ProfileRepository) CountByEmailOrUsername(email, username string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM profiles WHERE email=? OR username=?`, email, username).Scan(&n)
	return n, err
}

func (r ProfileRepository) Create(p models.Profile, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO profiles (full_name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		p.FullName, p.Username, p.Email, p.Phone, passwordHash, p.Role, p.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ProfileRepository) Update(p models.Profile) error {
	_, err := r.db().Exec(`
		UPDATE profiles SET full_name=?, phone=?, updated_at=NOW() WHERE id=?`,
		p.FullName, p.Phone, p.ID,
	)
	return err
}

func (r ProfileRepository) UpdateAvatar(id int64, avatarURL string) error {
	_, err := r.db().Exec(`UPDATE profiles SET avatar_url=?, updated_at=NOW() WHERE id=?`, avatarURL, id)
	return err
}
