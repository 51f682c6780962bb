package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
	"github.com/avetkin/scooter-rental/internal/repository"
	"github.com/avetkin/scooter-rental/internal/utils"
)

// authService implements AuthService
type authService struct {
	userRepo       repository.UserRepository
	sessionManager *utils.SessionManager
	revoked        *SessionBlacklistService
	bcryptCost     int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	sessionManager *utils.SessionManager,
	revoked *SessionBlacklistService,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		sessionManager: sessionManager,
		revoked:        revoked,
		bcryptCost:     bcryptCost,
	}
}

// Register creates a password-credentialed account and opens a session
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, fmt.Errorf("invalid email format")
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number")
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:       req.Username,
		Email:          utils.SanitizeEmail(req.Email),
		FullName:       req.FullName,
		PasswordHash:   passwordHash,
		CredentialKind: domain.CredentialPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.openSession(user)
}

// Login authenticates a user by username and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPasswordCredential() {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(user)
}

// Logout revokes the session until its natural expiry
func (s *authService) Logout(ctx context.Context, claims *domain.SessionClaims) error {
	remaining := time.Until(time.Unix(claims.Exp, 0))
	if remaining <= 0 {
		return nil
	}
	if err := s.revoked.Add(ctx, claims.JTI, remaining); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ValidateSession parses the token and rejects revoked sessions
func (s *authService) ValidateSession(ctx context.Context, token string) (*domain.SessionClaims, error) {
	claims, err := s.sessionManager.Validate(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.Contains(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// GetUser returns the user's profile
func (s *authService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges the given fields into the user's profile
func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*domain.User, error) {
	if req.Email != nil {
		sanitized := utils.SanitizeEmail(*req.Email)
		if !utils.ValidateEmail(sanitized) {
			return nil, fmt.Errorf("invalid email format")
		}
		req.Email = &sanitized
	}
	if req.PhoneNumber != nil && !utils.ValidatePhone(*req.PhoneNumber) {
		return nil, fmt.Errorf("invalid phone number format")
	}

	return s.userRepo.Update(ctx, userID, repository.UserUpdate{
		Email:          req.Email,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		ProfilePicture: req.ProfilePicture,
	})
}

// ChangePassword verifies the current password and replaces it
func (s *authService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPasswordCredential() || !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if !utils.ValidatePassword(req.NewPassword) {
		return fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number")
	}

	hash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

func (s *authService) openSession(user *domain.User) (*AuthResult, error) {
	token, err := s.sessionManager.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
