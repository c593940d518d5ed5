package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gspevents/event-admin/models"
	"github.com/lib/pq"
)

var (
	ErrScoreTeamInvalid  = errors.New("weekly score team invalid")
	ErrScoreVenueInvalid = errors.New("weekly score venue invalid")
)

type ScoreRepository interface {
	GetScores(ctx context.Context, teamID, venueID int, seasonStart, seasonEnd time.Time) ([]models.WeeklyScore, error)
	UpsertScore(ctx context.Context, teamID, venueID int, weekEnding time.Time, points, numPlayers *int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) GetScores(ctx context.Context, teamID, venueID int, seasonStart, seasonEnd time.Time) ([]models.WeeklyScore, error) {
	query := `
		SELECT week_ending, points, num_players
		FROM tournament_team_scores
		WHERE tournament_team_id = $1 AND venue_id = $2 AND week_ending >= $3 AND week_ending <= $4
		ORDER BY week_ending ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID, venueID, seasonStart, seasonEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.WeeklyScore, 0)
	for rows.Next() {
		var score models.WeeklyScore
		var weekEnding time.Time
		if err := rows.Scan(&weekEnding, &score.Points, &score.NumPlayers); err != nil {
			return nil, err
		}
		score.WeekEnding = weekEnding.Format("2006-01-02")
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *postgresScoreRepository) UpsertScore(ctx context.Context, teamID, venueID int, weekEnding time.Time, points, numPlayers *int) error {
	query := `
		INSERT INTO tournament_team_scores (tournament_team_id, venue_id, week_ending, points, num_players)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tournament_team_id, venue_id, week_ending)
		DO UPDATE SET points = EXCLUDED.points, num_players = EXCLUDED.num_players`

	_, err := r.db.ExecContext(ctx, query, teamID, venueID, weekEnding, points, numPlayers)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				switch pqErr.Constraint {
				case "tournament_team_scores_tournament_team_id_fkey":
					return ErrScoreTeamInvalid
				case "tournament_team_scores_venue_id_fkey":
					return ErrScoreVenueInvalid
				}
			}
		}
		return err
	}
	return nil
}
