package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gspevents/event-admin/models"
	"github.com/lib/pq"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventDateConflict  = errors.New("event already exists for venue and date")
	ErrEventVenueInvalid  = errors.New("event venue invalid")
	ErrEventHostInvalid   = errors.New("event host invalid")
	ErrEventPhotoNotFound = errors.New("event photo not found")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	ListForWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]models.Event, error)
	ExistsForVenueDate(ctx context.Context, venueID int, date time.Time) (bool, error)
	SetValidated(ctx context.Context, id int, validated bool) error
	AddPhotoURL(ctx context.Context, eventID int, url string) error
	DeletePhotoURL(ctx context.Context, eventID int, url string) error
	ListPhotos(ctx context.Context, eventID int) ([]string, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventSelectColumns = `
	e.id, e.host_id, e.venue_id, e.event_date, e.show_type, e.status, e.is_validated,
	e.highlights, e.total_players, e.total_teams, e.pdf_url, e.created_at,
	h.id, h.name, h.phone, h.email,
	v.name, v.slug, v.default_day`

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (host_id, venue_id, event_date, show_type, status, is_validated, highlights, total_players, total_teams, pdf_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.HostID,
		event.VenueID,
		event.EventDate,
		event.ShowType,
		event.Status,
		event.IsValidated,
		event.Highlights,
		event.TotalPlayers,
		event.TotalTeams,
		event.PDFURL,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return mapEventError(err)
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `
		SELECT ` + eventSelectColumns + `
		FROM events e
		LEFT JOIN hosts h ON e.host_id = h.id
		JOIN venues v ON e.venue_id = v.id
		WHERE e.id = $1`

	event, err := scanEventJoined(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return event, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events SET
			host_id = $1,
			event_date = $2,
			show_type = $3,
			status = $4,
			is_validated = $5,
			highlights = $6,
			total_players = $7,
			total_teams = $8,
			pdf_url = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		event.HostID,
		event.EventDate,
		event.ShowType,
		event.Status,
		event.IsValidated,
		event.Highlights,
		event.TotalPlayers,
		event.TotalTeams,
		event.PDFURL,
		event.ID,
	)
	if err != nil {
		return mapEventError(err)
	}

	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var conditions []string
	var args []interface{}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		placeholder := addArg(filter.Query)
		conditions = append(conditions,
			fmt.Sprintf("(v.name ILIKE '%%' || %s || '%%' OR h.name ILIKE '%%' || %s || '%%')", placeholder, placeholder))
	}
	if filter.ShowType != "" {
		conditions = append(conditions, "e.show_type = "+addArg(filter.ShowType))
	}
	if filter.Status != "" {
		conditions = append(conditions, "e.status = "+addArg(filter.Status))
	}
	if filter.Start != nil {
		conditions = append(conditions, "e.event_date >= "+addArg(*filter.Start))
	}
	if filter.End != nil {
		conditions = append(conditions, "e.event_date <= "+addArg(*filter.End))
	}

	query := `
		SELECT ` + eventSelectColumns + `
		FROM events e
		LEFT JOIN hosts h ON e.host_id = h.id
		JOIN venues v ON e.venue_id = v.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.event_date DESC, e.id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + addArg(filter.Limit)
	}

	return r.queryEvents(ctx, query, args...)
}

func (r *postgresEventRepository) ListForWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]models.Event, error) {
	query := `
		SELECT ` + eventSelectColumns + `
		FROM events e
		LEFT JOIN hosts h ON e.host_id = h.id
		JOIN venues v ON e.venue_id = v.id
		WHERE e.event_date >= $1 AND e.event_date <= $2
		ORDER BY e.event_date ASC, e.id ASC`

	return r.queryEvents(ctx, query, weekStart, weekEnd)
}

func (r *postgresEventRepository) ExistsForVenueDate(ctx context.Context, venueID int, date time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE venue_id = $1 AND event_date = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, venueID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresEventRepository) SetValidated(ctx context.Context, id int, validated bool) error {
	query := `UPDATE events SET is_validated = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, validated, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) AddPhotoURL(ctx context.Context, eventID int, url string) error {
	query := `INSERT INTO event_photos (event_id, url) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, eventID, url)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return ErrEventNotFound
			}
		}
		return err
	}
	return nil
}

func (r *postgresEventRepository) DeletePhotoURL(ctx context.Context, eventID int, url string) error {
	query := `DELETE FROM event_photos WHERE event_id = $1 AND url = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, url)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventPhotoNotFound)
}

func (r *postgresEventRepository) ListPhotos(ctx context.Context, eventID int) ([]string, error) {
	query := `SELECT url FROM event_photos WHERE event_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make([]string, 0)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *postgresEventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, scanErr := scanEventJoined(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, *event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func scanEventJoined(row rowScanner) (*models.Event, error) {
	var event models.Event

	var hostID sql.NullInt64
	var hostName sql.NullString
	var hostPhone sql.NullString
	var hostEmail sql.NullString

	var venueName string
	var venueSlug string
	var venueDefaultDay string

	err := row.Scan(
		&event.ID,
		&event.HostID,
		&event.VenueID,
		&event.EventDate,
		&event.ShowType,
		&event.Status,
		&event.IsValidated,
		&event.Highlights,
		&event.TotalPlayers,
		&event.TotalTeams,
		&event.PDFURL,
		&event.CreatedAt,
		&hostID,
		&hostName,
		&hostPhone,
		&hostEmail,
		&venueName,
		&venueSlug,
		&venueDefaultDay,
	)
	if err != nil {
		return nil, err
	}

	if hostID.Valid {
		event.Host = &models.Host{
			ID:    int(hostID.Int64),
			Name:  hostName.String,
			Phone: hostPhone.String,
			Email: hostEmail.String,
		}
	}
	event.Venue = &models.Venue{
		ID:         event.VenueID,
		Name:       venueName,
		Slug:       venueSlug,
		DefaultDay: venueDefaultDay,
	}

	return &event, nil
}

func mapEventError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "events_venue_id_event_date_key" {
				return ErrEventDateConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "events_venue_id_fkey":
				return ErrEventVenueInvalid
			case "events_host_id_fkey":
				return ErrEventHostInvalid
			}
		}
	}
	return err
}
