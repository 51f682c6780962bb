package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/repository"
)

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ListForUser returns the user's settlement history, newest first
func (s *paymentService) ListForUser(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// AddBalance tops up the user's wallet by a positive amount
func (s *paymentService) AddBalance(ctx context.Context, userID int64, amount float64) (*domain.User, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("top-up amount must be positive")
	}

	user, err := s.userRepo.UpdateBalance(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add balance: %w", err)
	}

	s.logger.Info("Balance topped up",
		zap.Int64("user_id", userID),
		zap.Float64("amount", amount),
		zap.Float64("balance", user.Balance),
	)

	return user, nil
}
