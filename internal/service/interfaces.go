package service

import (
	"context"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
)

// AuthResult pairs an authenticated user with their new session token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService defines methods for account and session operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	Logout(ctx context.Context, claims *domain.SessionClaims) error
	ValidateSession(ctx context.Context, token string) (*domain.SessionClaims, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
}

// VerificationService issues and matches email/phone verification codes
type VerificationService interface {
	RequestEmailCode(ctx context.Context, userID int64) error
	ConfirmEmailCode(ctx context.Context, userID int64, code string) error
	RequestPhoneCode(ctx context.Context, phone string) error
	VerifyPhoneCode(ctx context.Context, phone, code string) (*AuthResult, error)
}

// CodeSender delivers verification codes to riders. SMS and email gateways
// are external; the in-tree implementation logs the code.
type CodeSender interface {
	SendSMS(ctx context.Context, phone, code string) error
	SendEmail(ctx context.Context, email, code string) error
}

// RideService orchestrates the two-phase rental protocol
type RideService interface {
	Start(ctx context.Context, userID int64, req *dto.StartRideRequest) (*domain.Ride, error)
	End(ctx context.Context, rideID, userID int64, req *dto.EndRideRequest) (*domain.Ride, *domain.Payment, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Ride, error)
	ActiveForUser(ctx context.Context, userID int64) (*domain.Ride, error)
}

// ScooterService exposes fleet browsing and registration
type ScooterService interface {
	List(ctx context.Context) ([]*domain.Scooter, error)
	Get(ctx context.Context, id int64) (*domain.Scooter, error)
	Create(ctx context.Context, req *dto.CreateScooterRequest) (*domain.Scooter, error)
}

// PaymentService exposes settlement history and wallet top-up
type PaymentService interface {
	ListForUser(ctx context.Context, userID int64) ([]*domain.Payment, error)
	AddBalance(ctx context.Context, userID int64, amount float64) (*domain.User, error)
}
