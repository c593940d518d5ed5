package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gspevents/event-admin/fuzzy"
	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
)

type TeamService interface {
	Create(ctx context.Context, input TeamInput) (*models.TournamentTeam, error)
	GetByID(ctx context.Context, id int) (*models.TournamentTeam, error)
	Update(ctx context.Context, id int, input TeamInput) (*models.TournamentTeam, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.TournamentTeam, error)
	Search(ctx context.Context, query string, limit int) ([]models.TournamentTeam, error)
	SuggestLinks(ctx context.Context, names []string) ([]LinkSuggestion, error)
	WeeklyScores(ctx context.Context, teamID, venueID int) ([]models.WeeklyScore, error)
	SaveWeeklyScores(ctx context.Context, teamID, venueID int, scores []WeeklyScoreInput) (*ScoreSaveResult, error)
}

type TeamInput struct {
	Name         string `json:"name"`
	HomeVenueID  *int   `json:"home_venue_id"`
	CaptainName  string `json:"captain_name"`
	CaptainEmail string `json:"captain_email"`
	CaptainPhone string `json:"captain_phone"`
	PlayerCount  *int   `json:"player_count"`
}

type LinkSuggestion struct {
	ParsedTeamName string  `json:"parsed_team_name"`
	LinkedTeamID   *int    `json:"linked_team_id"`
	Similarity     float64 `json:"similarity"`
}

type WeeklyScoreInput struct {
	WeekEnding string `json:"week_ending"`
	Points     *int   `json:"points"`
	NumPlayers *int   `json:"num_players"`
}

type ScoreSaveResult struct {
	Saved    int      `json:"saved"`
	Failures []string `json:"failures"`
}

type teamService struct {
	teamRepo    repositories.TeamRepository
	scoreRepo   repositories.ScoreRepository
	seasonStart time.Time
	seasonEnd   time.Time
	now         func() time.Time
}

func NewTeamService(teamRepo repositories.TeamRepository, scoreRepo repositories.ScoreRepository, seasonStart, seasonEnd time.Time) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		scoreRepo:   scoreRepo,
		seasonStart: seasonStart,
		seasonEnd:   seasonEnd,
		now:         time.Now,
	}
}

func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.TournamentTeam, error) {
	team, err := teamFromInput(0, input)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return s.GetByID(ctx, team.ID)
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.TournamentTeam, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	return team, nil
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.TournamentTeam, error) {
	team, err := teamFromInput(id, input)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return s.GetByID(ctx, id)
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return mapTeamRepoError(err)
	}
	return nil
}

func (s *teamService) List(ctx context.Context) ([]models.TournamentTeam, error) {
	return s.teamRepo.List(ctx)
}

func (s *teamService) Search(ctx context.Context, query string, limit int) ([]models.TournamentTeam, error) {
	return s.teamRepo.Search(ctx, strings.TrimSpace(query), clampSearchLimit(limit))
}

// SuggestLinks matches free-text team names from parsed score sheets against
// the registered roster. A name only gets a linked id when its best candidate
// clears the matcher's threshold; the similarity is reported either way so
// reviewers can judge near misses.
func (s *teamService) SuggestLinks(ctx context.Context, names []string) ([]LinkSuggestion, error) {
	if len(names) == 0 {
		return nil, ErrSuggestNamesMissing
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for link suggestions: %w", err)
	}

	candidates := make([]fuzzy.Candidate, len(teams))
	for i, team := range teams {
		candidates[i] = fuzzy.Candidate{ID: team.ID, Name: team.Name}
	}

	suggestions := make([]LinkSuggestion, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		id, sim := fuzzy.Best(name, candidates)
		suggestions = append(suggestions, LinkSuggestion{
			ParsedTeamName: name,
			LinkedTeamID:   id,
			Similarity:     sim,
		})
	}
	return suggestions, nil
}

// WeeklyScores returns one row per week of the current scoring window,
// merging stored scores in where they exist. Weeks without a stored score
// come back with nil points and players so the editor can show blanks.
func (s *teamService) WeeklyScores(ctx context.Context, teamID, venueID int) ([]models.WeeklyScore, error) {
	if _, err := s.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	stored, err := s.scoreRepo.GetScores(ctx, teamID, venueID, s.seasonStart, s.seasonEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly scores: %w", err)
	}

	byWeek := make(map[string]models.WeeklyScore, len(stored))
	for _, score := range stored {
		byWeek[score.WeekEnding] = score
	}

	weeks := s.scoringWeeks()
	rows := make([]models.WeeklyScore, 0, len(weeks))
	for _, week := range weeks {
		key := week.Format("2006-01-02")
		if score, ok := byWeek[key]; ok {
			rows = append(rows, score)
			continue
		}
		rows = append(rows, models.WeeklyScore{WeekEnding: key})
	}
	return rows, nil
}

// SaveWeeklyScores upserts each submitted week independently. A bad week
// ending or a failed write is recorded and the rest of the batch continues.
func (s *teamService) SaveWeeklyScores(ctx context.Context, teamID, venueID int, scores []WeeklyScoreInput) (*ScoreSaveResult, error) {
	if _, err := s.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	result := &ScoreSaveResult{Failures: []string{}}
	for _, score := range scores {
		weekEnding, err := time.Parse("2006-01-02", score.WeekEnding)
		if err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("week %q: %v", score.WeekEnding, ErrInvalidWeekEnding))
			continue
		}
		if err := s.scoreRepo.UpsertScore(ctx, teamID, venueID, weekEnding, score.Points, score.NumPlayers); err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("week %s: %v", score.WeekEnding, mapTeamRepoError(err)))
			continue
		}
		result.Saved++
	}
	return result, nil
}

// scoringWeeks lists the season's week-ending dates that have started,
// capped to the most recent twelve. The in-progress week is included so
// scores can be entered as sheets come in.
func (s *teamService) scoringWeeks() []time.Time {
	var weeks []time.Time
	for w := s.seasonStart; !w.After(s.seasonEnd); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w)
	}

	now := s.now()
	cut := len(weeks)
	for i, w := range weeks {
		if w.After(now) {
			cut = i
			break
		}
	}
	if cut < len(weeks) {
		cut++
	}
	weeks = weeks[:cut]

	if len(weeks) > 12 {
		weeks = weeks[len(weeks)-12:]
	}
	return weeks
}

func teamFromInput(id int, input TeamInput) (*models.TournamentTeam, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: team name", ErrNameRequired)
	}

	return &models.TournamentTeam{
		ID:           id,
		Name:         input.Name,
		HomeVenueID:  input.HomeVenueID,
		CaptainName:  strings.TrimSpace(input.CaptainName),
		CaptainEmail: strings.TrimSpace(input.CaptainEmail),
		CaptainPhone: strings.TrimSpace(input.CaptainPhone),
		PlayerCount:  input.PlayerCount,
	}, nil
}

func mapTeamRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamVenueInvalid):
		return ErrVenueNotFound
	case errors.Is(err, repositories.ErrScoreTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrScoreVenueInvalid):
		return ErrVenueNotFound
	default:
		return err
	}
}
