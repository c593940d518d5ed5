package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gspevents/event-admin/bulkcsv"
	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
)

// ConsoleNotifier pushes refresh signals to connected admin consoles.
// A nil notifier is allowed and simply drops the signal.
type ConsoleNotifier interface {
	Notify(event string, payload interface{})
}

type EventService interface {
	GetByID(ctx context.Context, id int) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Update(ctx context.Context, id int, input EventInput) (*models.Event, error)
	Delete(ctx context.Context, id int) error
	SetValidated(ctx context.Context, id int, validated bool) (*models.Event, error)
	BulkUploadSummary(ctx context.Context, venueID int, rows []bulkcsv.EventRow, opts BulkUploadOptions) (*BulkUploadSummary, error)
	BulkUploadCSV(ctx context.Context, venueID int, csvText string, opts BulkUploadOptions) (*BulkUploadSummary, error)
	AddPhotoURL(ctx context.Context, eventID int, url string) (*models.Event, error)
	DeletePhotoURL(ctx context.Context, eventID int, url string) error
}

type EventInput struct {
	HostID       *int    `json:"host_id"`
	EventDate    string  `json:"event_date"`
	ShowType     string  `json:"show_type"`
	Status       string  `json:"status"`
	IsValidated  bool    `json:"is_validated"`
	Highlights   string  `json:"highlights"`
	TotalPlayers *int    `json:"total_players"`
	TotalTeams   *int    `json:"total_teams"`
	PDFURL       *string `json:"pdf_url"`
}

// BulkUploadOptions both default to true; decode request bodies into a
// prefilled struct so absent keys keep the defaults.
type BulkUploadOptions struct {
	Validated bool `json:"validated"`
	Posted    bool `json:"posted"`
}

func DefaultBulkUploadOptions() BulkUploadOptions {
	return BulkUploadOptions{Validated: true, Posted: true}
}

type BulkUploadSummary struct {
	TotalAttempted        int      `json:"total_attempted"`
	EventsCreated         int      `json:"events_created"`
	HostsCreated          int      `json:"hosts_created"`
	EventsSkippedExisting int      `json:"events_skipped_existing"`
	SkippedErrors         int      `json:"skipped_errors"`
	Errors                []string `json:"errors"`
}

type eventService struct {
	eventRepo repositories.EventRepository
	venueRepo repositories.VenueRepository
	hostRepo  repositories.HostRepository
	notifier  ConsoleNotifier
	logger    *slog.Logger
}

func NewEventService(
	eventRepo repositories.EventRepository,
	venueRepo repositories.VenueRepository,
	hostRepo repositories.HostRepository,
	notifier ConsoleNotifier,
	logger *slog.Logger,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		venueRepo: venueRepo,
		hostRepo:  hostRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *eventService) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapEventRepoError(err)
	}
	photos, err := s.eventRepo.ListPhotos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load event photos: %w", err)
	}
	event.Photos = photos
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Status != "" && filter.Status != models.EventStatusPosted && filter.Status != models.EventStatusUnposted {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventStatus, filter.Status)
	}
	return s.eventRepo.List(ctx, filter)
}

func (s *eventService) Update(ctx context.Context, id int, input EventInput) (*models.Event, error) {
	if input.Status != models.EventStatusPosted && input.Status != models.EventStatusUnposted {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEventStatus, input.Status)
	}
	if !isValidShowType(input.ShowType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShowType, input.ShowType)
	}
	eventDate, err := parseDateFlex(input.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapEventRepoError(err)
	}

	event.HostID = input.HostID
	event.EventDate = eventDate
	event.ShowType = strings.ToLower(input.ShowType)
	event.Status = input.Status
	event.IsValidated = input.IsValidated
	event.Highlights = strings.TrimSpace(input.Highlights)
	event.TotalPlayers = input.TotalPlayers
	event.TotalTeams = input.TotalTeams
	event.PDFURL = input.PDFURL

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, mapEventRepoError(err)
	}

	s.notify("event_updated", map[string]int{"event_id": id})
	return s.GetByID(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id int) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return mapEventRepoError(err)
	}
	s.notify("event_deleted", map[string]int{"event_id": id})
	return nil
}

func (s *eventService) SetValidated(ctx context.Context, id int, validated bool) (*models.Event, error) {
	if err := s.eventRepo.SetValidated(ctx, id, validated); err != nil {
		return nil, mapEventRepoError(err)
	}
	s.notify("event_validated", map[string]int{"event_id": id})
	return s.GetByID(ctx, id)
}

// BulkUploadSummary creates one event per row for the target venue. Hosts
// are created on the fly, rows whose venue+date already has an event are
// skipped, and a bad row is recorded without stopping the batch.
func (s *eventService) BulkUploadSummary(ctx context.Context, venueID int, rows []bulkcsv.EventRow, opts BulkUploadOptions) (*BulkUploadSummary, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, mapVenueRepoError(err)
	}

	status := models.EventStatusUnposted
	if opts.Posted {
		status = models.EventStatusPosted
	}

	hosts, err := s.hostRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hosts for bulk upload: %w", err)
	}
	hostLookup := make(map[string]int, len(hosts))
	for _, host := range hosts {
		hostLookup[strings.ToLower(host.Name)] = host.ID
	}

	summary := &BulkUploadSummary{Errors: []string{}}
	for _, row := range rows {
		summary.TotalAttempted++

		if err := s.uploadRow(ctx, venue, row, status, opts.Validated, hostLookup, summary); err != nil {
			summary.SkippedErrors++
			label := fmt.Sprintf("%s - %s", orPlaceholder(row.Date), orPlaceholder(row.Host))
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row '%s': %v", label, err))
			if s.logger != nil {
				s.logger.WarnContext(ctx, "bulk upload row failed",
					slog.Int("venue_id", venueID),
					slog.String("row", label),
					slog.Any("error", err))
			}
		}
	}

	if summary.EventsCreated > 0 {
		s.notify("events_bulk_uploaded", map[string]int{"venue_id": venueID, "created": summary.EventsCreated})
	}
	return summary, nil
}

// BulkUploadCSV parses a raw CSV body server-side and feeds the rows
// through the summary upload. An input that parses to zero rows fails
// before any database work.
func (s *eventService) BulkUploadCSV(ctx context.Context, venueID int, csvText string, opts BulkUploadOptions) (*BulkUploadSummary, error) {
	rows := bulkcsv.Parse(csvText)
	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}
	return s.BulkUploadSummary(ctx, venueID, rows, opts)
}

func (s *eventService) uploadRow(
	ctx context.Context,
	venue *models.Venue,
	row bulkcsv.EventRow,
	status string,
	validated bool,
	hostLookup map[string]int,
	summary *BulkUploadSummary,
) error {
	date := strings.TrimSpace(row.Date)
	hostName := strings.TrimSpace(row.Host)
	if date == "" || hostName == "" {
		return errors.New("Date and Host are required for each row")
	}

	eventDate, err := parseDateFlex(date)
	if err != nil {
		return err
	}

	totalPlayers, err := parseCount(row.PeopleCount)
	if err != nil {
		return fmt.Errorf("invalid # of people: %w", err)
	}
	totalTeams, err := parseCount(row.TeamCount)
	if err != nil {
		return fmt.Errorf("invalid # of teams: %w", err)
	}

	hostKey := strings.ToLower(hostName)
	hostID, ok := hostLookup[hostKey]
	if !ok {
		host := &models.Host{Name: hostName}
		if err := s.hostRepo.Create(ctx, host); err != nil {
			return fmt.Errorf("failed to create host %q: %w", hostName, err)
		}
		hostID = host.ID
		hostLookup[hostKey] = hostID
		summary.HostsCreated++
	}

	exists, err := s.eventRepo.ExistsForVenueDate(ctx, venue.ID, eventDate)
	if err != nil {
		return fmt.Errorf("failed to check existing event: %w", err)
	}
	if exists {
		summary.EventsSkippedExisting++
		return nil
	}

	event := &models.Event{
		HostID:       &hostID,
		VenueID:      venue.ID,
		EventDate:    eventDate,
		ShowType:     venue.ShowType,
		Status:       status,
		IsValidated:  validated,
		Highlights:   strings.TrimSpace(row.Comments),
		TotalPlayers: totalPlayers,
		TotalTeams:   totalTeams,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}
	summary.EventsCreated++
	return nil
}

func (s *eventService) AddPhotoURL(ctx context.Context, eventID int, url string) (*models.Event, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrPhotoURLRequired
	}
	if err := s.eventRepo.AddPhotoURL(ctx, eventID, url); err != nil {
		return nil, mapEventRepoError(err)
	}
	return s.GetByID(ctx, eventID)
}

func (s *eventService) DeletePhotoURL(ctx context.Context, eventID int, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrPhotoURLRequired
	}
	if err := s.eventRepo.DeletePhotoURL(ctx, eventID, url); err != nil {
		return mapEventRepoError(err)
	}
	return nil
}

func (s *eventService) notify(event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(event, payload)
}

var flexDateLayouts = []string{"1/2/2006", "1/2/06", "2006-01-02"}

func parseDateFlex(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("Date is required")
	}
	for _, layout := range flexDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", raw)
}

func parseCount(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return "?"
	}
	return strings.TrimSpace(value)
}

func mapEventRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrEventNotFound):
		return ErrEventNotFound
	case errors.Is(err, repositories.ErrEventDateConflict):
		return ErrEventDateConflict
	case errors.Is(err, repositories.ErrEventVenueInvalid):
		return ErrVenueNotFound
	case errors.Is(err, repositories.ErrEventHostInvalid):
		return ErrHostNotFound
	case errors.Is(err, repositories.ErrEventPhotoNotFound):
		return ErrPhotoNotFound
	default:
		return err
	}
}
