package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
)

type VenueService interface {
	Create(ctx context.Context, input VenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	Update(ctx context.Context, id int, input VenueInput) (*models.Venue, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Venue, error)
	Search(ctx context.Context, query string, limit int) ([]models.Venue, error)
	GenerateAccessKey(ctx context.Context, id int) (string, error)
}

type VenueInput struct {
	Name          string `json:"name"`
	DefaultDay    string `json:"default_day"`
	DefaultTime   string `json:"default_time"`
	ShowType      string `json:"show_type"`
	DefaultHostID *int   `json:"default_host_id"`
	IsActive      bool   `json:"is_active"`
	Cancelled     bool   `json:"cancelled"`
	CancelReason  string `json:"cancel_reason"`
}

type venueService struct {
	venueRepo repositories.VenueRepository
}

func NewVenueService(venueRepo repositories.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) Create(ctx context.Context, input VenueInput) (*models.Venue, error) {
	venue, err := s.venueFromInput(0, input)
	if err != nil {
		return nil, err
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, mapVenueRepoError(err)
	}
	return s.GetByID(ctx, venue.ID)
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapVenueRepoError(err)
	}
	return venue, nil
}

func (s *venueService) Update(ctx context.Context, id int, input VenueInput) (*models.Venue, error) {
	venue, err := s.venueFromInput(id, input)
	if err != nil {
		return nil, err
	}
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, mapVenueRepoError(err)
	}
	return s.GetByID(ctx, id)
}

func (s *venueService) Delete(ctx context.Context, id int) error {
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return mapVenueRepoError(err)
	}
	return nil
}

func (s *venueService) List(ctx context.Context) ([]models.Venue, error) {
	return s.venueRepo.List(ctx)
}

func (s *venueService) Search(ctx context.Context, query string, limit int) ([]models.Venue, error) {
	return s.venueRepo.Search(ctx, strings.TrimSpace(query), clampSearchLimit(limit))
}

// GenerateAccessKey rotates the key venues use to submit score sheets.
// The old key stops working as soon as the new one is stored.
func (s *venueService) GenerateAccessKey(ctx context.Context, id int) (string, error) {
	key := uuid.NewString()
	if err := s.venueRepo.SetAccessKey(ctx, id, key); err != nil {
		return "", mapVenueRepoError(err)
	}
	return key, nil
}

func (s *venueService) venueFromInput(id int, input VenueInput) (*models.Venue, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: venue name", ErrNameRequired)
	}
	if !isValidDay(input.DefaultDay) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, input.DefaultDay)
	}
	if !isValidShowType(input.ShowType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShowType, input.ShowType)
	}

	showType := strings.ToLower(input.ShowType)
	if showType == "" {
		showType = models.ShowTypeGSP
	}

	return &models.Venue{
		ID:            id,
		Name:          input.Name,
		Slug:          slugify(input.Name),
		DefaultDay:    strings.ToLower(strings.TrimSpace(input.DefaultDay)),
		DefaultTime:   strings.TrimSpace(input.DefaultTime),
		ShowType:      showType,
		DefaultHostID: input.DefaultHostID,
		IsActive:      input.IsActive,
		Cancelled:     input.Cancelled,
		CancelReason:  strings.TrimSpace(input.CancelReason),
	}, nil
}

func mapVenueRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrVenueNotFound):
		return ErrVenueNotFound
	case errors.Is(err, repositories.ErrVenueSlugConflict):
		return ErrVenueSlugConflict
	case errors.Is(err, repositories.ErrVenueHostInvalid):
		return ErrHostNotFound
	case errors.Is(err, repositories.ErrVenueHasReferences):
		return ErrVenueInUse
	default:
		return err
	}
}
