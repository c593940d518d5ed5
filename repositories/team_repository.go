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
	ErrTeamNotFound     = errors.New("tournament team not found")
	ErrTeamNameConflict = errors.New("tournament team name conflict")
	ErrTeamVenueInvalid = errors.New("tournament team home venue invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.TournamentTeam) error
	GetByID(ctx context.Context, id int) (*models.TournamentTeam, error)
	Update(ctx context.Context, team *models.TournamentTeam) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.TournamentTeam, error)
	ListUnlinked(ctx context.Context) ([]models.TournamentTeam, error)
	Search(ctx context.Context, query string, limit int) ([]models.TournamentTeam, error)
	SetHomeVenue(ctx context.Context, teamID int, venueID int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamSelectColumns = `
	t.id, t.name, t.home_venue_id, t.captain_name, t.captain_email, t.captain_phone, t.player_count,
	v.name`

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.TournamentTeam) error {
	query := `
		INSERT INTO tournament_teams (name, home_venue_id, captain_name, captain_email, captain_phone, player_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.HomeVenueID,
		team.CaptainName,
		team.CaptainEmail,
		team.CaptainPhone,
		team.PlayerCount,
	).Scan(&team.ID)

	if err != nil {
		return mapTeamError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.TournamentTeam, error) {
	query := `
		SELECT ` + teamSelectColumns + `
		FROM tournament_teams t
		LEFT JOIN venues v ON t.home_venue_id = v.id
		WHERE t.id = $1`

	team, err := scanTeamJoined(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament team: %w", err)
	}
	return team, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.TournamentTeam) error {
	query := `
		UPDATE tournament_teams SET
			name = $1,
			home_venue_id = $2,
			captain_name = $3,
			captain_email = $4,
			captain_phone = $5,
			player_count = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.HomeVenueID,
		team.CaptainName,
		team.CaptainEmail,
		team.CaptainPhone,
		team.PlayerCount,
		team.ID,
	)
	if err != nil {
		return mapTeamError(err)
	}

	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM tournament_teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.TournamentTeam, error) {
	query := `
		SELECT ` + teamSelectColumns + `
		FROM tournament_teams t
		LEFT JOIN venues v ON t.home_venue_id = v.id
		ORDER BY t.name ASC`

	return r.queryTeams(ctx, query)
}

func (r *postgresTeamRepository) ListUnlinked(ctx context.Context) ([]models.TournamentTeam, error) {
	query := `
		SELECT ` + teamSelectColumns + `
		FROM tournament_teams t
		LEFT JOIN venues v ON t.home_venue_id = v.id
		WHERE t.home_venue_id IS NULL
		ORDER BY t.name ASC`

	return r.queryTeams(ctx, query)
}

func (r *postgresTeamRepository) Search(ctx context.Context, query string, limit int) ([]models.TournamentTeam, error) {
	sqlQuery := `
		SELECT ` + teamSelectColumns + `
		FROM tournament_teams t
		LEFT JOIN venues v ON t.home_venue_id = v.id
		WHERE t.name ILIKE '%' || $1 || '%'
		ORDER BY t.name ASC
		LIMIT $2`

	return r.queryTeams(ctx, sqlQuery, query, limit)
}

func (r *postgresTeamRepository) SetHomeVenue(ctx context.Context, teamID int, venueID int) error {
	query := `UPDATE tournament_teams SET home_venue_id = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, venueID, teamID)
	if err != nil {
		return mapTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]models.TournamentTeam, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.TournamentTeam, 0)
	for rows.Next() {
		team, scanErr := scanTeamJoined(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func scanTeamJoined(row rowScanner) (*models.TournamentTeam, error) {
	var team models.TournamentTeam
	var venueName sql.NullString

	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.HomeVenueID,
		&team.CaptainName,
		&team.CaptainEmail,
		&team.CaptainPhone,
		&team.PlayerCount,
		&venueName,
	)
	if err != nil {
		return nil, err
	}

	if venueName.Valid {
		team.HomeVenue = &venueName.String
	}
	return &team, nil
}

func mapTeamError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "tournament_teams_name_key" {
				return ErrTeamNameConflict
			}
		case "23503":
			if pqErr.Constraint == "tournament_teams_home_venue_id_fkey" {
				return ErrTeamVenueInvalid
			}
		}
	}
	return err
}
