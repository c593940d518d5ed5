package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
)

type HostService interface {
	Create(ctx context.Context, input HostInput) (*models.Host, error)
	GetByID(ctx context.Context, id int) (*models.Host, error)
	Update(ctx context.Context, id int, input HostInput) (*models.Host, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Host, error)
	Search(ctx context.Context, query string, limit int) ([]models.Host, error)
}

type HostInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type hostService struct {
	hostRepo repositories.HostRepository
}

func NewHostService(hostRepo repositories.HostRepository) HostService {
	return &hostService{hostRepo: hostRepo}
}

func (s *hostService) Create(ctx context.Context, input HostInput) (*models.Host, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: host name", ErrNameRequired)
	}

	host := &models.Host{
		Name:  input.Name,
		Phone: strings.TrimSpace(input.Phone),
		Email: strings.TrimSpace(input.Email),
	}
	if err := s.hostRepo.Create(ctx, host); err != nil {
		return nil, mapHostRepoError(err)
	}
	return host, nil
}

func (s *hostService) GetByID(ctx context.Context, id int) (*models.Host, error) {
	host, err := s.hostRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapHostRepoError(err)
	}
	return host, nil
}

func (s *hostService) Update(ctx context.Context, id int, input HostInput) (*models.Host, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: host name", ErrNameRequired)
	}

	host := &models.Host{
		ID:    id,
		Name:  input.Name,
		Phone: strings.TrimSpace(input.Phone),
		Email: strings.TrimSpace(input.Email),
	}
	if err := s.hostRepo.Update(ctx, host); err != nil {
		return nil, mapHostRepoError(err)
	}
	return host, nil
}

func (s *hostService) Delete(ctx context.Context, id int) error {
	if err := s.hostRepo.Delete(ctx, id); err != nil {
		return mapHostRepoError(err)
	}
	return nil
}

func (s *hostService) List(ctx context.Context) ([]models.Host, error) {
	return s.hostRepo.List(ctx)
}

func (s *hostService) Search(ctx context.Context, query string, limit int) ([]models.Host, error) {
	return s.hostRepo.Search(ctx, strings.TrimSpace(query), clampSearchLimit(limit))
}

func mapHostRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrHostNotFound):
		return ErrHostNotFound
	case errors.Is(err, repositories.ErrHostNameConflict):
		return ErrHostNameConflict
	case errors.Is(err, repositories.ErrHostHasReferences):
		return ErrHostInUse
	default:
		return err
	}
}
