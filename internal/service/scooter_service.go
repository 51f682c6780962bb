package service

import (
	"context"
	"fmt"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/repository"
)

// scooterService implements ScooterService
type scooterService struct {
	scooterRepo repository.ScooterRepository
}

// NewScooterService creates a new scooter service
func NewScooterService(scooterRepo repository.ScooterRepository) ScooterService {
	return &scooterService{scooterRepo: scooterRepo}
}

// List returns all scooters in the fleet
func (s *scooterService) List(ctx context.Context) ([]*domain.Scooter, error) {
	return s.scooterRepo.List(ctx)
}

// Get returns a scooter by id
func (s *scooterService) Get(ctx context.Context, id int64) (*domain.Scooter, error) {
	return s.scooterRepo.GetByID(ctx, id)
}

// Create registers a new scooter. Availability defaults to true.
func (s *scooterService) Create(ctx context.Context, req *dto.CreateScooterRequest) (*domain.Scooter, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	scooter := &domain.Scooter{
		Code:         req.Code,
		BatteryLevel: req.BatteryLevel,
		IsAvailable:  available,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	if err := s.scooterRepo.Create(ctx, scooter); err != nil {
		return nil, fmt.Errorf("failed to create scooter: %w", err)
	}

	return scooter, nil
}
