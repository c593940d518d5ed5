package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gspevents/event-admin/models"
	"github.com/lib/pq"
)

var (
	ErrHostNotFound      = errors.New("host not found")
	ErrHostNameConflict  = errors.New("host name conflict")
	ErrHostHasReferences = errors.New("host is referenced by events or venues")
)

type HostRepository interface {
	Create(ctx context.Context, host *models.Host) error
	GetByID(ctx context.Context, id int) (*models.Host, error)
	GetByName(ctx context.Context, name string) (*models.Host, error)
	Update(ctx context.Context, host *models.Host) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Host, error)
	Search(ctx context.Context, query string, limit int) ([]models.Host, error)
}

type postgresHostRepository struct {
	db *sql.DB
}

func NewPostgresHostRepository(db *sql.DB) HostRepository {
	return &postgresHostRepository{db: db}
}

func (r *postgresHostRepository) Create(ctx context.Context, host *models.Host) error {
	query := `
		INSERT INTO hosts (name, phone, email)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		host.Name,
		host.Phone,
		host.Email,
	).Scan(&host.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "hosts_name_key" {
				return ErrHostNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresHostRepository) GetByID(ctx context.Context, id int) (*models.Host, error) {
	query := `SELECT id, name, phone, email FROM hosts WHERE id = $1`
	return r.scanHost(ctx, query, id)
}

func (r *postgresHostRepository) GetByName(ctx context.Context, name string) (*models.Host, error) {
	query := `SELECT id, name, phone, email FROM hosts WHERE lower(name) = lower($1)`
	return r.scanHost(ctx, query, name)
}

func (r *postgresHostRepository) Update(ctx context.Context, host *models.Host) error {
	query := `
		UPDATE hosts SET
			name = $1,
			phone = $2,
			email = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		host.Name,
		host.Phone,
		host.Email,
		host.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "hosts_name_key" {
				return ErrHostNameConflict
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrHostNotFound)
}

func (r *postgresHostRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM hosts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return ErrHostHasReferences
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrHostNotFound)
}

func (r *postgresHostRepository) List(ctx context.Context) ([]models.Host, error) {
	query := `SELECT id, name, phone, email FROM hosts ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHostRows(rows)
}

func (r *postgresHostRepository) Search(ctx context.Context, query string, limit int) ([]models.Host, error) {
	sqlQuery := `
		SELECT id, name, phone, email
		FROM hosts
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHostRows(rows)
}

func (r *postgresHostRepository) scanHost(ctx context.Context, query string, args ...interface{}) (*models.Host, error) {
	host := &models.Host{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&host.ID,
		&host.Name,
		&host.Phone,
		&host.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHostNotFound
		}
		return nil, fmt.Errorf("failed to scan host: %w", err)
	}
	return host, nil
}

func scanHostRows(rows *sql.Rows) ([]models.Host, error) {
	hosts := make([]models.Host, 0)
	for rows.Next() {
		var host models.Host
		if err := rows.Scan(&host.ID, &host.Name, &host.Phone, &host.Email); err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hosts, nil
}
