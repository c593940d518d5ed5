package services

import (
	"context"
	"testing"
	"time"

	"github.com/gspevents/event-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSeasonStart = dateAt(2025, 8, 17)
	testSeasonEnd   = dateAt(2025, 11, 9)
)

func newTestTeamService(teamRepo *fakeTeamRepo, scoreRepo *fakeScoreRepo, now time.Time) TeamService {
	svc := NewTeamService(teamRepo, scoreRepo, testSeasonStart, testSeasonEnd).(*teamService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSuggestLinks(t *testing.T) {
	ctx := context.Background()
	teamRepo := newFakeTeamRepo(
		models.TournamentTeam{ID: 1, Name: "Quizzly Bears"},
		models.TournamentTeam{ID: 2, Name: "Trivia Newton John"},
		models.TournamentTeam{ID: 3, Name: "The Smartinis"},
	)
	svc := newTestTeamService(teamRepo, newFakeScoreRepo(), dateAt(2025, 9, 1))

	t.Run("close names link, distant names do not", func(t *testing.T) {
		suggestions, err := svc.SuggestLinks(ctx, []string{"quizzly bears", "Trivia Newton Jon", "Completely Different"})
		require.NoError(t, err)
		require.Len(t, suggestions, 3)

		require.NotNil(t, suggestions[0].LinkedTeamID)
		assert.Equal(t, 1, *suggestions[0].LinkedTeamID)
		assert.Equal(t, 1.0, suggestions[0].Similarity)

		require.NotNil(t, suggestions[1].LinkedTeamID)
		assert.Equal(t, 2, *suggestions[1].LinkedTeamID)
		assert.Greater(t, suggestions[1].Similarity, 0.7)

		assert.Nil(t, suggestions[2].LinkedTeamID)
		assert.LessOrEqual(t, suggestions[2].Similarity, 0.7)
	})

	t.Run("blank names are dropped, trimmed names kept", func(t *testing.T) {
		suggestions, err := svc.SuggestLinks(ctx, []string{"  ", "  The Smartinis  "})
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "The Smartinis", suggestions[0].ParsedTeamName)
		require.NotNil(t, suggestions[0].LinkedTeamID)
		assert.Equal(t, 3, *suggestions[0].LinkedTeamID)
	})

	t.Run("empty request rejected", func(t *testing.T) {
		_, err := svc.SuggestLinks(ctx, nil)
		assert.ErrorIs(t, err, ErrSuggestNamesMissing)
	})
}

func TestWeeklyScores(t *testing.T) {
	ctx := context.Background()

	t.Run("window rows with stored scores merged in", func(t *testing.T) {
		teamRepo := newFakeTeamRepo(models.TournamentTeam{ID: 1, Name: "Quizzly Bears"})
		scoreRepo := newFakeScoreRepo()
		require.NoError(t, scoreRepo.UpsertScore(ctx, 1, 5, dateAt(2025, 8, 24), intPtr(12), intPtr(4)))

		svc := newTestTeamService(teamRepo, scoreRepo, dateAt(2025, 9, 1))

		rows, err := svc.WeeklyScores(ctx, 1, 5)
		require.NoError(t, err)
		// Season weeks 8/17, 8/24, 8/31 have started by 9/1, plus the
		// in-progress week 9/7.
		require.Len(t, rows, 4)
		assert.Equal(t, "2025-08-17", rows[0].WeekEnding)
		assert.Nil(t, rows[0].Points)
		assert.Equal(t, "2025-08-24", rows[1].WeekEnding)
		require.NotNil(t, rows[1].Points)
		assert.Equal(t, 12, *rows[1].Points)
		assert.Equal(t, 4, *rows[1].NumPlayers)
		assert.Equal(t, "2025-09-07", rows[3].WeekEnding)
	})

	t.Run("window caps at twelve weeks", func(t *testing.T) {
		teamRepo := newFakeTeamRepo(models.TournamentTeam{ID: 1, Name: "Quizzly Bears"})
		svc := newTestTeamService(teamRepo, newFakeScoreRepo(), dateAt(2025, 12, 1))

		rows, err := svc.WeeklyScores(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, rows, 12)
		// The thirteen-week season drops its oldest week.
		assert.Equal(t, "2025-08-24", rows[0].WeekEnding)
		assert.Equal(t, "2025-11-09", rows[11].WeekEnding)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc := newTestTeamService(newFakeTeamRepo(), newFakeScoreRepo(), dateAt(2025, 9, 1))
		_, err := svc.WeeklyScores(ctx, 99, 5)
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})
}

func TestSaveWeeklyScores(t *testing.T) {
	ctx := context.Background()

	t.Run("partial batch keeps going", func(t *testing.T) {
		teamRepo := newFakeTeamRepo(models.TournamentTeam{ID: 1, Name: "Quizzly Bears"})
		scoreRepo := newFakeScoreRepo()
		svc := newTestTeamService(teamRepo, scoreRepo, dateAt(2025, 9, 1))

		result, err := svc.SaveWeeklyScores(ctx, 1, 5, []WeeklyScoreInput{
			{WeekEnding: "2025-08-17", Points: intPtr(10)},
			{WeekEnding: "not-a-date", Points: intPtr(8)},
			{WeekEnding: "2025-08-24", Points: intPtr(9), NumPlayers: intPtr(5)},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		require.Len(t, result.Failures, 1)
		assert.Contains(t, result.Failures[0], "not-a-date")

		stored, err := scoreRepo.GetScores(ctx, 1, 5, testSeasonStart, testSeasonEnd)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("write failure recorded per week", func(t *testing.T) {
		teamRepo := newFakeTeamRepo(models.TournamentTeam{ID: 1, Name: "Quizzly Bears"})
		scoreRepo := newFakeScoreRepo()
		scoreRepo.errs["2025-08-17"] = assert.AnError
		svc := newTestTeamService(teamRepo, scoreRepo, dateAt(2025, 9, 1))

		result, err := svc.SaveWeeklyScores(ctx, 1, 5, []WeeklyScoreInput{
			{WeekEnding: "2025-08-17", Points: intPtr(10)},
			{WeekEnding: "2025-08-24", Points: intPtr(9)},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		require.Len(t, result.Failures, 1)
		assert.Contains(t, result.Failures[0], "2025-08-17")
	})
}

func TestTeamCRUDValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestTeamService(newFakeTeamRepo(), newFakeScoreRepo(), dateAt(2025, 9, 1))

	_, err := svc.Create(ctx, TeamInput{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	team, err := svc.Create(ctx, TeamInput{Name: "  Quizzly Bears ", CaptainName: " Ada "})
	require.NoError(t, err)
	assert.Equal(t, "Quizzly Bears", team.Name)
	assert.Equal(t, "Ada", team.CaptainName)

	_, err = svc.Update(ctx, 999, TeamInput{Name: "Ghosts"})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
