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
	ErrVenueNotFound      = errors.New("venue not found")
	ErrVenueSlugConflict  = errors.New("venue slug conflict")
	ErrVenueHostInvalid   = errors.New("venue default host invalid")
	ErrVenueHasReferences = errors.New("venue is referenced by events or teams")
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	UpdateScheduleFields(ctx context.Context, id int, fields *models.Venue) error
	SetAccessKey(ctx context.Context, id int, key string) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Venue, error)
	ListActive(ctx context.Context) ([]models.Venue, error)
	Search(ctx context.Context, query string, limit int) ([]models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

const venueSelectColumns = `
	v.id, v.name, v.slug, v.default_day, v.default_time, v.show_type,
	v.default_host_id, v.is_active, v.cancelled, v.cancel_reason, v.access_key,
	h.id, h.name, h.phone, h.email`

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, slug, default_day, default_time, show_type, default_host_id, is_active, cancelled, cancel_reason, access_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		venue.Name,
		venue.Slug,
		venue.DefaultDay,
		venue.DefaultTime,
		venue.ShowType,
		venue.DefaultHostID,
		venue.IsActive,
		venue.Cancelled,
		venue.CancelReason,
		venue.AccessKey,
	).Scan(&venue.ID)

	if err != nil {
		return mapVenueError(err)
	}
	return nil
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT ` + venueSelectColumns + `
		FROM venues v
		LEFT JOIN hosts h ON v.default_host_id = h.id
		WHERE v.id = $1`

	venue, err := scanVenueJoined(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to scan venue: %w", err)
	}
	return venue, nil
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `
		UPDATE venues SET
			name = $1,
			slug = $2,
			default_day = $3,
			default_time = $4,
			show_type = $5,
			default_host_id = $6,
			is_active = $7,
			cancelled = $8,
			cancel_reason = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		venue.Name,
		venue.Slug,
		venue.DefaultDay,
		venue.DefaultTime,
		venue.ShowType,
		venue.DefaultHostID,
		venue.IsActive,
		venue.Cancelled,
		venue.CancelReason,
		venue.ID,
	)
	if err != nil {
		return mapVenueError(err)
	}

	return checkAffectedRows(result, ErrVenueNotFound)
}

// UpdateScheduleFields touches only the columns the schedule editor owns,
// leaving name, slug and show_type alone.
func (r *postgresVenueRepository) UpdateScheduleFields(ctx context.Context, id int, fields *models.Venue) error {
	query := `
		UPDATE venues SET
			default_day = $1,
			default_time = $2,
			default_host_id = $3,
			is_active = $4,
			cancelled = $5,
			cancel_reason = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		fields.DefaultDay,
		fields.DefaultTime,
		fields.DefaultHostID,
		fields.IsActive,
		fields.Cancelled,
		fields.CancelReason,
		id,
	)
	if err != nil {
		return mapVenueError(err)
	}

	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) SetAccessKey(ctx context.Context, id int, key string) error {
	query := `UPDATE venues SET access_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM venues WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return ErrVenueHasReferences
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	query := `
		SELECT ` + venueSelectColumns + `
		FROM venues v
		LEFT JOIN hosts h ON v.default_host_id = h.id
		ORDER BY v.name ASC`

	return r.queryVenues(ctx, query)
}

func (r *postgresVenueRepository) ListActive(ctx context.Context) ([]models.Venue, error) {
	query := `
		SELECT ` + venueSelectColumns + `
		FROM venues v
		LEFT JOIN hosts h ON v.default_host_id = h.id
		WHERE v.is_active = TRUE
		ORDER BY v.name ASC`

	return r.queryVenues(ctx, query)
}

func (r *postgresVenueRepository) Search(ctx context.Context, query string, limit int) ([]models.Venue, error) {
	sqlQuery := `
		SELECT ` + venueSelectColumns + `
		FROM venues v
		LEFT JOIN hosts h ON v.default_host_id = h.id
		WHERE v.name ILIKE '%' || $1 || '%'
		ORDER BY v.name ASC
		LIMIT $2`

	return r.queryVenues(ctx, sqlQuery, query, limit)
}

func (r *postgresVenueRepository) queryVenues(ctx context.Context, query string, args ...interface{}) ([]models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		venue, scanErr := scanVenueJoined(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, *venue)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenueJoined(row rowScanner) (*models.Venue, error) {
	var venue models.Venue

	var hostID sql.NullInt64
	var hostName sql.NullString
	var hostPhone sql.NullString
	var hostEmail sql.NullString

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Slug,
		&venue.DefaultDay,
		&venue.DefaultTime,
		&venue.ShowType,
		&venue.DefaultHostID,
		&venue.IsActive,
		&venue.Cancelled,
		&venue.CancelReason,
		&venue.AccessKey,
		&hostID,
		&hostName,
		&hostPhone,
		&hostEmail,
	)
	if err != nil {
		return nil, err
	}

	if hostID.Valid {
		venue.DefaultHost = &models.Host{
			ID:    int(hostID.Int64),
			Name:  hostName.String,
			Phone: hostPhone.String,
			Email: hostEmail.String,
		}
	}

	return &venue, nil
}

func mapVenueError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "venues_slug_key" {
				return ErrVenueSlugConflict
			}
		case "23503":
			if pqErr.Constraint == "venues_default_host_id_fkey" {
				return ErrVenueHostInvalid
			}
		}
	}
	return err
}
