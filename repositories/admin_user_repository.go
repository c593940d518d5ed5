package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gspevents/event-admin/models"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type postgresAdminUserRepository struct {
	db *sql.DB
}

func NewPostgresAdminUserRepository(db *sql.DB) AdminUserRepository {
	return &postgresAdminUserRepository{db: db}
}

func (r *postgresAdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE lower(email) = lower($1)`

	user := &models.AdminUser{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminUserNotFound
		}
		return nil, err
	}
	return user, nil
}
