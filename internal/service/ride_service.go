package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/config"
	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/repository"
)

// rideService implements RideService.
//
// Start and End are check-then-act sequences over two entities (ride and
// scooter); mu serializes them so two concurrent starts cannot both observe
// an available scooter, and a ride cannot be ended twice.
type rideService struct {
	rideRepo    repository.RideRepository
	scooterRepo repository.ScooterRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	pricing     config.PricingConfig
	logger      *zap.Logger
	now         func() time.Time
	mu          sync.Mutex
}

// NewRideService creates a new ride service
func NewRideService(
	rideRepo repository.RideRepository,
	scooterRepo repository.ScooterRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	pricing config.PricingConfig,
	logger *zap.Logger,
) RideService {
	return &rideService{
		rideRepo:    rideRepo,
		scooterRepo: scooterRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		pricing:     pricing,
		logger:      logger,
		now:         time.Now,
	}
}

// Start opens a ride: the user must have no active ride and the scooter must
// exist and be available. On success the scooter is locked for the ride.
func (s *rideService) Start(ctx context.Context, userID int64, req *dto.StartRideRequest) (*domain.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rideRepo.GetActiveByUser(ctx, userID); err == nil {
		return nil, ErrActiveRideExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active ride: %w", err)
	}

	scooter, err := s.scooterRepo.GetByID(ctx, req.ScooterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scooter: %w", err)
	}

	if !scooter.IsAvailable {
		return nil, ErrScooterUnavailable
	}

	unavailable := false
	if _, err := s.scooterRepo.Update(ctx, scooter.ID, repository.ScooterUpdate{IsAvailable: &unavailable}); err != nil {
		return nil, fmt.Errorf("failed to lock scooter: %w", err)
	}

	ride := &domain.Ride{
		UserID:         userID,
		ScooterID:      scooter.ID,
		Status:         domain.RideActive,
		StartTime:      s.now(),
		StartLatitude:  req.StartLatitude,
		StartLongitude: req.StartLongitude,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		// Best effort: put the scooter back so it is not stranded locked.
		available := true
		if _, unlockErr := s.scooterRepo.Update(ctx, scooter.ID, repository.ScooterUpdate{IsAvailable: &available}); unlockErr != nil {
			s.logger.Error("Failed to unlock scooter after ride create failure",
				zap.Int64("scooter_id", scooter.ID),
				zap.Error(unlockErr),
			)
		}
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	s.logger.Info("Ride started",
		zap.Int64("ride_id", ride.ID),
		zap.Int64("user_id", userID),
		zap.Int64("scooter_id", scooter.ID),
		zap.String("scooter_code", scooter.Code),
	)

	return ride, nil
}

// End settles an active ride: it derives duration, distance and cost, frees
// the scooter, records exactly one payment and debits the rider's balance.
// The balance may go negative; settlement is trust-based.
func (s *rideService) End(ctx context.Context, rideID, userID int64, req *dto.EndRideRequest) (*domain.Ride, *domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if ride.UserID != userID {
		return nil, nil, ErrNotRideOwner
	}

	if ride.Status != domain.RideActive {
		return nil, nil, ErrRideNotActive
	}

	endTime := s.now()
	minutes := endTime.Sub(ride.StartTime).Minutes()

	// Distance is a fixed multiple of ride duration, not derived from the
	// recorded coordinates. The end coordinates are stored for display only.
	distance := s.pricing.DistancePerMinute * minutes
	cost := s.pricing.BaseFee + s.pricing.PerMinuteRate*minutes

	completed := domain.RideCompleted
	updated, err := s.rideRepo.Update(ctx, ride.ID, repository.RideUpdate{
		Status:       &completed,
		EndTime:      &endTime,
		EndLatitude:  &req.EndLatitude,
		EndLongitude: &req.EndLongitude,
		Distance:     &distance,
		Cost:         &cost,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete ride: %w", err)
	}

	available := true
	if _, err := s.scooterRepo.Update(ctx, ride.ScooterID, repository.ScooterUpdate{IsAvailable: &available}); err != nil {
		return nil, nil, fmt.Errorf("failed to release scooter: %w", err)
	}

	payment := &domain.Payment{
		UserID:    userID,
		RideID:    ride.ID,
		Amount:    cost,
		Status:    domain.PaymentSuccess,
		Timestamp: endTime,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if _, err := s.userRepo.UpdateBalance(ctx, userID, -cost); err != nil {
		return nil, nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	s.logger.Info("Ride completed",
		zap.Int64("ride_id", ride.ID),
		zap.Int64("user_id", userID),
		zap.Float64("minutes", minutes),
		zap.Float64("cost", cost),
	)

	return updated, payment, nil
}

// ListForUser returns the user's ride history, newest first
func (s *rideService) ListForUser(ctx context.Context, userID int64) ([]*domain.Ride, error) {
	return s.rideRepo.ListByUser(ctx, userID)
}

// ActiveForUser returns the user's active ride, if any
func (s *rideService) ActiveForUser(ctx context.Context, userID int64) (*domain.Ride, error) {
	return s.rideRepo.GetActiveByUser(ctx, userID)
}
