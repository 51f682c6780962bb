package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
)

// memoryUserRepository implements UserRepository over an in-process map.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
	seq   sequence
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

// Create stores a new user, assigning the next id and applying defaults.
// A Google identity arrives with a verified email; phone numbers are only
// verified by a completed code round-trip.
func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return fmt.Errorf("user with username %s already exists: %w", user.Username, ErrDuplicateUsername)
		}
		if user.Email != "" && existing.Email == user.Email {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
		}
		if user.ProviderID != nil && user.ProviderAccountID != nil &&
			existing.ProviderID != nil && existing.ProviderAccountID != nil &&
			*existing.ProviderID == *user.ProviderID && *existing.ProviderAccountID == *user.ProviderAccountID {
			return fmt.Errorf("provider identity %s/%s already linked: %w", *user.ProviderID, *user.ProviderAccountID, ErrDuplicateProvider)
		}
	}

	user.ID = r.seq.next()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.CredentialKind == "" {
		user.CredentialKind = domain.CredentialPassword
	}
	if user.CredentialKind == domain.CredentialGoogle {
		user.IsEmailVerified = true
	}

	r.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID retrieves a user by id
func (r *memoryUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}
	return cloneUser(user), nil
}

// GetByUsername retrieves a user by username via a linear scan
func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findFirst(func(u *domain.User) bool { return u.Username == username },
		fmt.Sprintf("user with username %s", username))
}

// GetByEmail retrieves a user by email via a linear scan
func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findFirst(func(u *domain.User) bool { return u.Email != "" && u.Email == email },
		fmt.Sprintf("user with email %s", email))
}

// GetByPhone retrieves a user by phone number via a linear scan
func (r *memoryUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findFirst(func(u *domain.User) bool { return u.PhoneNumber != nil && *u.PhoneNumber == phone },
		fmt.Sprintf("user with phone %s", phone))
}

// GetByProvider retrieves a user by its linked provider identity pair
func (r *memoryUserRepository) GetByProvider(ctx context.Context, providerID, providerAccountID string) (*domain.User, error) {
	return r.findFirst(func(u *domain.User) bool {
		return u.ProviderID != nil && u.ProviderAccountID != nil &&
			*u.ProviderID == providerID && *u.ProviderAccountID == providerAccountID
	}, fmt.Sprintf("user with provider %s/%s", providerID, providerAccountID))
}

func (r *memoryUserRepository) findFirst(match func(*domain.User) bool, what string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *domain.User
	for _, u := range r.users {
		if match(u) && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%s not found: %w", what, ErrNotFound)
	}
	return cloneUser(found), nil
}

// Update merges the given profile fields into an existing user.
// Password and balance are deliberately out of reach here.
func (r *memoryUserRepository) Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	if upd.Username != nil {
		for _, existing := range r.users {
			if existing.ID != id && existing.Username == *upd.Username {
				return nil, fmt.Errorf("user with username %s already exists: %w", *upd.Username, ErrDuplicateUsername)
			}
		}
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.FullName != nil {
		user.FullName = *upd.FullName
	}
	if upd.PhoneNumber != nil {
		user.PhoneNumber = upd.PhoneNumber
	}
	if upd.ProfilePicture != nil {
		user.ProfilePicture = upd.ProfilePicture
	}

	return cloneUser(user), nil
}

// UpdateBalance adds delta to the user's balance. Delta may be negative and
// the result is not clamped; settlement is trust-based.
func (r *memoryUserRepository) UpdateBalance(ctx context.Context, id int64, delta float64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	user.Balance += delta
	return cloneUser(user), nil
}

// UpdatePassword replaces the stored password hash
func (r *memoryUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	user.PasswordHash = passwordHash
	return nil
}

// SetEmailVerification stores a pending email verification code
func (r *memoryUserRepository) SetEmailVerification(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	user.EmailVerificationCode = &code
	user.EmailCodeExpiresAt = &expiresAt
	return nil
}

// ConfirmEmail marks the email verified and clears the pending code
func (r *memoryUserRepository) ConfirmEmail(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	user.IsEmailVerified = true
	user.EmailVerificationCode = nil
	user.EmailCodeExpiresAt = nil
	return nil
}

// SetPhoneVerification stores a pending phone verification code
func (r *memoryUserRepository) SetPhoneVerification(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	user.PhoneVerificationCode = &code
	user.PhoneCodeExpiresAt = &expiresAt
	return nil
}

// ConfirmPhone marks the phone number verified and clears the pending code
func (r *memoryUserRepository) ConfirmPhone(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %d not found: %w", id, ErrNotFound)
	}

	user.IsPhoneVerified = true
	user.PhoneVerificationCode = nil
	user.PhoneCodeExpiresAt = nil
	return nil
}
