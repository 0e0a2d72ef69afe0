package repositories

import (
	"database/sql"

	"invitr/internal/platform/models"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(admin *models.Admin) error {
	_, err := r.db.Exec(`
		INSERT INTO admins (id, email, password_hash, full_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, admin.ID, admin.Email, admin.PasswordHash, admin.FullName, admin.CreatedAt, admin.UpdatedAt)
	return err
}

func (r *AdminRepository) GetByID(id string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRow(`
		SELECT id, email, password_hash, full_name, last_login_at, created_at, updated_at
		FROM admins WHERE id = ?
	`, id).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.FullName, &admin.LastLoginAt, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRow(`
		SELECT id, email, password_hash, full_name, last_login_at, created_at, updated_at
		FROM admins WHERE email = ?
	`, email).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.FullName, &admin.LastLoginAt, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

func (r *AdminRepository) UpdateLastLogin(adminID string, timestamp int64) error {
	_, err := r.db.Exec(`UPDATE admins SET last_login_at = ? WHERE id = ?`, timestamp, adminID)
	return err
}
