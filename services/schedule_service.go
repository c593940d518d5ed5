package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
	"github.com/gspevents/event-admin/schedule"
	"golang.org/x/sync/errgroup"
)

// AnnouncementPoster publishes the weekly schedule text to an external
// channel. A nil poster means announcements are not configured.
type AnnouncementPoster interface {
	Post(text string) error
}

type ScheduleService interface {
	Rows(ctx context.Context) ([]schedule.Row, error)
	Save(ctx context.Context, rows []schedule.Row) (*ScheduleSaveResult, error)
	Text(ctx context.Context, ref time.Time) (string, error)
	CalendarICS(ctx context.Context, ref time.Time) (string, error)
	Announce(ctx context.Context, ref time.Time) (string, error)
}

type ScheduleSaveResult struct {
	Rows     []schedule.Row `json:"rows"`
	Updated  int            `json:"updated"`
	Failures []string       `json:"failures"`
}

type scheduleService struct {
	venueRepo repositories.VenueRepository
	notifier  ConsoleNotifier
	poster    AnnouncementPoster
	logger    *slog.Logger
}

func NewScheduleService(
	venueRepo repositories.VenueRepository,
	notifier ConsoleNotifier,
	poster AnnouncementPoster,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		venueRepo: venueRepo,
		notifier:  notifier,
		poster:    poster,
		logger:    logger,
	}
}

// Rows returns every venue as an editable schedule row. Originals are set
// to the current values, so a freshly loaded schedule has an empty
// changeset.
func (s *scheduleService) Rows(ctx context.Context) ([]schedule.Row, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues for schedule: %w", err)
	}

	rows := make([]schedule.Row, 0, len(venues))
	for _, venue := range venues {
		rows = append(rows, venueToScheduleRow(venue))
	}
	return rows, nil
}

// Save diffs the submitted rows against their originals and writes only
// the changed venues. Row saves run concurrently and a failed row does
// not stop the rest; all failures come back aggregated. When nothing
// changed no database work happens at all.
func (s *scheduleService) Save(ctx context.Context, rows []schedule.Row) (*ScheduleSaveResult, error) {
	changeset := schedule.Changeset(rows)
	if len(changeset) == 0 {
		return nil, ErrNothingToSave
	}

	var mu sync.Mutex
	failures := []string{}

	g, gctx := errgroup.WithContext(ctx)
	for _, update := range changeset {
		update := update
		g.Go(func() error {
			fields := &models.Venue{
				DefaultDay:    update.DefaultDay,
				DefaultTime:   update.DefaultTime,
				DefaultHostID: update.DefaultHostID,
				IsActive:      update.IsActive,
				Cancelled:     update.Cancelled,
				CancelReason:  update.CancelReason,
			}
			if err := s.venueRepo.UpdateScheduleFields(gctx, update.ID, fields); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Sprintf("%s: %v", update.Name, mapVenueRepoError(err)))
				mu.Unlock()
				if s.logger != nil {
					s.logger.WarnContext(gctx, "schedule row save failed",
						slog.Int("venue_id", update.ID),
						slog.Any("error", err))
				}
			}
			// Row failures are reported, not fatal, so the rest of the
			// batch still runs.
			return nil
		})
	}
	_ = g.Wait()

	fresh, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify("schedule_updated", map[string]int{"updated": len(changeset) - len(failures)})
	}

	return &ScheduleSaveResult{
		Rows:     fresh,
		Updated:  len(changeset) - len(failures),
		Failures: failures,
	}, nil
}

// Text renders the announcement for the week containing ref, covering
// active venues only.
func (s *scheduleService) Text(ctx context.Context, ref time.Time) (string, error) {
	rows, err := s.announcementRows(ctx)
	if err != nil {
		return "", err
	}
	return schedule.GenerateText(rows, ref), nil
}

func (s *scheduleService) CalendarICS(ctx context.Context, ref time.Time) (string, error) {
	rows, err := s.announcementRows(ctx)
	if err != nil {
		return "", err
	}
	return schedule.BuildCalendar(rows, ref).Serialize(), nil
}

// Announce posts the weekly text to the configured channel and returns
// what was posted.
func (s *scheduleService) Announce(ctx context.Context, ref time.Time) (string, error) {
	if s.poster == nil {
		return "", ErrNotifierDisabled
	}
	text, err := s.Text(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := s.poster.Post(text); err != nil {
		return "", fmt.Errorf("failed to post announcement: %w", err)
	}
	return text, nil
}

func (s *scheduleService) announcementRows(ctx context.Context) ([]schedule.Row, error) {
	venues, err := s.venueRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active venues: %w", err)
	}

	rows := make([]schedule.Row, 0, len(venues))
	for _, venue := range venues {
		rows = append(rows, venueToScheduleRow(venue))
	}
	return rows, nil
}

func venueToScheduleRow(venue models.Venue) schedule.Row {
	fields := schedule.Fields{
		DefaultDay:    venue.DefaultDay,
		DefaultTime:   venue.DefaultTime,
		DefaultHostID: venue.DefaultHostID,
		IsActive:      venue.IsActive,
		Cancelled:     venue.Cancelled,
		CancelReason:  venue.CancelReason,
	}
	row := schedule.Row{
		ID:       venue.ID,
		Name:     venue.Name,
		ShowType: venue.ShowType,
		Fields:   fields,
		Original: fields,
	}
	if venue.DefaultHost != nil {
		row.HostName = venue.DefaultHost.Name
	}
	return row
}
