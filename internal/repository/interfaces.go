package repository

import (
	"context"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
)

// UserUpdate carries the profile fields a generic update may touch.
// Identity, password and balance changes go through dedicated methods.
type UserUpdate struct {
	Username       *string
	Email          *string
	FullName       *string
	PhoneNumber    *string
	ProfilePicture *string
}

// ScooterUpdate carries partial scooter fields for an update.
type ScooterUpdate struct {
	BatteryLevel *int
	IsAvailable  *bool
	Latitude     *float64
	Longitude    *float64
}

// RideUpdate carries the fields written when a ride reaches a terminal state.
type RideUpdate struct {
	Status       *domain.RideStatus
	EndTime      *time.Time
	EndLatitude  *float64
	EndLongitude *float64
	Distance     *float64
	Cost         *float64
}

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByProvider(ctx context.Context, providerID, providerAccountID string) (*domain.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)
	UpdateBalance(ctx context.Context, id int64, delta float64) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetEmailVerification(ctx context.Context, id int64, code string, expiresAt time.Time) error
	ConfirmEmail(ctx context.Context, id int64) error
	SetPhoneVerification(ctx context.Context, id int64, code string, expiresAt time.Time) error
	ConfirmPhone(ctx context.Context, id int64) error
}

// ScooterRepository defines methods for scooter operations
type ScooterRepository interface {
	Create(ctx context.Context, scooter *domain.Scooter) error
	GetByID(ctx context.Context, id int64) (*domain.Scooter, error)
	GetByCode(ctx context.Context, code string) (*domain.Scooter, error)
	List(ctx context.Context) ([]*domain.Scooter, error)
	Update(ctx context.Context, id int64, upd ScooterUpdate) (*domain.Scooter, error)
}

// RideRepository defines methods for ride operations
type RideRepository interface {
	Create(ctx context.Context, ride *domain.Ride) error
	GetByID(ctx context.Context, id int64) (*domain.Ride, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Ride, error)
	GetActiveByUser(ctx context.Context, userID int64) (*domain.Ride, error)
	Update(ctx context.Context, id int64, upd RideUpdate) (*domain.Ride, error)
}

// PaymentRepository defines methods for payment operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Payment, error)
}
