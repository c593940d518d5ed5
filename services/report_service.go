package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
)

// ExportHeader is the first line of the weekly report CSV export.
var exportHeader = []string{"venue_id", "venue", "event_id", "event_date", "status", "is_validated", "state"}

type ReportService interface {
	WeeklyReport(ctx context.Context, weekEnding string) (*models.WeeklyReport, error)
	ExportCSV(ctx context.Context, weekEnding string) ([]byte, error)
}

type reportService struct {
	venueRepo repositories.VenueRepository
	eventRepo repositories.EventRepository
	now       func() time.Time
}

func NewReportService(venueRepo repositories.VenueRepository, eventRepo repositories.EventRepository) ReportService {
	return &reportService{
		venueRepo: venueRepo,
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// WeeklyReport summarizes submission status per venue for the week ending
// on the given Sunday. An empty weekEnding defaults to the most recent
// Sunday. A venue's state is the best state among its events that week:
// posted beats validated beats unvalidated; no events means no_submission.
func (s *reportService) WeeklyReport(ctx context.Context, weekEnding string) (*models.WeeklyReport, error) {
	weekEnd, err := s.resolveWeekEnding(weekEnding)
	if err != nil {
		return nil, err
	}
	weekStart := weekEnd.AddDate(0, 0, -6)

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues for weekly report: %w", err)
	}

	events, err := s.eventRepo.ListForWeek(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for weekly report: %w", err)
	}

	eventsByVenue := make(map[int][]models.WeeklyReportEvent)
	for _, event := range events {
		eventsByVenue[event.VenueID] = append(eventsByVenue[event.VenueID], models.WeeklyReportEvent{
			EventID:     event.ID,
			EventDate:   event.EventDate.Format("2006-01-02"),
			Status:      event.Status,
			IsValidated: event.IsValidated,
		})
	}

	report := &models.WeeklyReport{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekEnd.Format("2006-01-02"),
		Rows:      make([]models.WeeklyReportRow, 0, len(venues)),
	}
	for _, venue := range venues {
		venueEvents := eventsByVenue[venue.ID]
		if venueEvents == nil {
			venueEvents = []models.WeeklyReportEvent{}
		}
		report.Rows = append(report.Rows, models.WeeklyReportRow{
			VenueID:    venue.ID,
			Venue:      venue.Name,
			DefaultDay: venue.DefaultDay,
			State:      reportState(venueEvents),
			Events:     venueEvents,
		})
	}
	return report, nil
}

// ExportCSV renders the weekly report as CSV, one line per event. Venues
// with no submission still get a line so nothing silently drops out of
// the export.
func (s *reportService) ExportCSV(ctx context.Context, weekEnding string) ([]byte, error) {
	report, err := s.WeeklyReport(ctx, weekEnding)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if len(row.Events) == 0 {
			record := []string{strconv.Itoa(row.VenueID), row.Venue, "", "", "", "", row.State}
			if err := writer.Write(record); err != nil {
				return nil, err
			}
			continue
		}
		for _, event := range row.Events {
			record := []string{
				strconv.Itoa(row.VenueID),
				row.Venue,
				strconv.Itoa(event.EventID),
				event.EventDate,
				event.Status,
				strconv.FormatBool(event.IsValidated),
				row.State,
			}
			if err := writer.Write(record); err != nil {
				return nil, err
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) resolveWeekEnding(weekEnding string) (time.Time, error) {
	if weekEnding == "" {
		return lastSunday(s.now()), nil
	}
	weekEnd, err := time.Parse("2006-01-02", weekEnding)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekEnding, weekEnding)
	}
	return weekEnd, nil
}

// lastSunday returns the most recent Sunday on or before the given day.
func lastSunday(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func reportState(events []models.WeeklyReportEvent) string {
	if len(events) == 0 {
		return models.ReportStateNoSubmission
	}
	state := models.ReportStateUnvalidated
	for _, event := range events {
		if event.Status == models.EventStatusPosted {
			return models.ReportStatePosted
		}
		if event.IsValidated {
			state = models.ReportStateValidated
		}
	}
	return state
}
