package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/repository"
	"github.com/avetkin/scooter-rental/internal/utils"
)

const phoneProvider = "phone"

// verificationService implements VerificationService
type verificationService struct {
	userRepo       repository.UserRepository
	sender         CodeSender
	sessionManager *utils.SessionManager
	codeTTL        time.Duration
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	userRepo repository.UserRepository,
	sender CodeSender,
	sessionManager *utils.SessionManager,
	codeTTL time.Duration,
) VerificationService {
	return &verificationService{
		userRepo:       userRepo,
		sender:         sender,
		sessionManager: sessionManager,
		codeTTL:        codeTTL,
	}
}

// RequestEmailCode issues a code proving control of the user's email address
func (s *verificationService) RequestEmailCode(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Email == "" {
		return fmt.Errorf("user has no email address on file")
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetEmailVerification(ctx, userID, code, time.Now().Add(s.codeTTL)); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return s.sender.SendEmail(ctx, user.Email, code)
}

// ConfirmEmailCode matches a pending email code and flips the verified flag
func (s *verificationService) ConfirmEmailCode(ctx context.Context, userID int64, code string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := matchCode(user.EmailVerificationCode, user.EmailCodeExpiresAt, code); err != nil {
		return err
	}

	return s.userRepo.ConfirmEmail(ctx, userID)
}

// RequestPhoneCode issues an SMS code for the number. An unknown number gets
// a fresh phone-credentialed account so the code has somewhere to live.
func (s *verificationService) RequestPhoneCode(ctx context.Context, phone string) error {
	if !utils.ValidatePhone(phone) {
		return fmt.Errorf("invalid phone number format")
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to get user: %w", err)
		}
		user, err = s.createPhoneUser(ctx, phone)
		if err != nil {
			return err
		}
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetPhoneVerification(ctx, user.ID, code, time.Now().Add(s.codeTTL)); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return s.sender.SendSMS(ctx, phone, code)
}

// VerifyPhoneCode matches an SMS code and signs the rider in
func (s *verificationService) VerifyPhoneCode(ctx context.Context, phone, code string) (*AuthResult, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := matchCode(user.PhoneVerificationCode, user.PhoneCodeExpiresAt, code); err != nil {
		return nil, err
	}

	if err := s.userRepo.ConfirmPhone(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to confirm phone: %w", err)
	}

	user, err = s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}

	token, err := s.sessionManager.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *verificationService) createPhoneUser(ctx context.Context, phone string) (*domain.User, error) {
	provider := phoneProvider
	account := phone
	user := &domain.User{
		Username:          fmt.Sprintf("rider-%s", phone),
		PhoneNumber:       &phone,
		CredentialKind:    domain.CredentialPhone,
		ProviderID:        &provider,
		ProviderAccountID: &account,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create phone user: %w", err)
	}
	return user, nil
}

func matchCode(stored *string, expiresAt *time.Time, code string) error {
	if stored == nil || expiresAt == nil {
		return ErrNoPendingCode
	}
	if time.Now().After(*expiresAt) {
		return ErrCodeExpired
	}
	if *stored != code {
		return ErrInvalidCode
	}
	return nil
}
