package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/pkg/database"
)

const userColumns = `id, username, password_hash, email, full_name, phone_number, profile_picture,
		balance, credential_kind, provider_id, provider_account_id,
		is_email_verified, is_phone_verified,
		email_verification_code, email_code_expires_at,
		phone_verification_code, phone_code_expires_at, created_at`

// postgresUserRepository implements UserRepository over PostgreSQL
type postgresUserRepository struct {
	db *database.Postgres
}

// NewPostgresUserRepository creates a new PostgreSQL-backed user repository
func NewPostgresUserRepository(db *database.Postgres) UserRepository {
	return &postgresUserRepository{db: db}
}

// Create creates a new user in the database
func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.CredentialKind == "" {
		user.CredentialKind = domain.CredentialPassword
	}
	if user.CredentialKind == domain.CredentialGoogle {
		user.IsEmailVerified = true
	}

	query := `
		INSERT INTO users (username, password_hash, email, full_name, phone_number, profile_picture,
			balance, credential_kind, provider_id, provider_account_id,
			is_email_verified, is_phone_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FullName,
		user.PhoneNumber,
		user.ProfilePicture,
		user.Balance,
		user.CredentialKind,
		user.ProviderID,
		user.ProviderAccountID,
		user.IsEmailVerified,
		user.IsPhoneVerified,
		user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				switch pqErr.Constraint {
				case "users_username_key":
					return fmt.Errorf("user with username %s already exists: %w", user.Username, ErrDuplicateUsername)
				case "users_provider_key":
					return fmt.Errorf("provider identity already linked: %w", ErrDuplicateProvider)
				default:
					return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
				}
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) scanUser(row *sql.Row, what string) (*domain.User, error) {
	user := &domain.User{}
	var emailCodeExpires, phoneCodeExpires sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FullName,
		&user.PhoneNumber,
		&user.ProfilePicture,
		&user.Balance,
		&user.CredentialKind,
		&user.ProviderID,
		&user.ProviderAccountID,
		&user.IsEmailVerified,
		&user.IsPhoneVerified,
		&user.EmailVerificationCode,
		&emailCodeExpires,
		&user.PhoneVerificationCode,
		&phoneCodeExpires,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s not found: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}

	if emailCodeExpires.Valid {
		user.EmailCodeExpiresAt = &emailCodeExpires.Time
	}
	if phoneCodeExpires.Valid {
		user.PhoneCodeExpiresAt = &phoneCodeExpires.Time
	}

	return user, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("user with id %d", id))
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, username), fmt.Sprintf("user with username %s", username))
}

// GetByEmail retrieves a user by email
func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 ORDER BY id LIMIT 1`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, email), fmt.Sprintf("user with email %s", email))
}

// GetByPhone retrieves a user by phone number
func (r *postgresUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE phone_number = $1 ORDER BY id LIMIT 1`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, phone), fmt.Sprintf("user with phone %s", phone))
}

// GetByProvider retrieves a user by its linked provider identity pair
func (r *postgresUserRepository) GetByProvider(ctx context.Context, providerID, providerAccountID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE provider_id = $1 AND provider_account_id = $2`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, providerID, providerAccountID),
		fmt.Sprintf("user with provider %s/%s", providerID, providerAccountID))
}

// Update merges the given profile fields into an existing user
func (r *postgresUserRepository) Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET username = COALESCE($2, username),
			email = COALESCE($3, email),
			full_name = COALESCE($4, full_name),
			phone_number = COALESCE($5, phone_number),
			profile_picture = COALESCE($6, profile_picture)
		WHERE id = $1
		RETURNING %s
	`, userColumns)

	row := r.db.DB.QueryRowContext(ctx, query, id,
		upd.Username, upd.Email, upd.FullName, upd.PhoneNumber, upd.ProfilePicture)

	user, err := r.scanUser(row, fmt.Sprintf("user with id %d", id))
	if err != nil {
		if pqErr, ok := errors.Unwrap(err).(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("username already taken: %w", ErrDuplicateUsername)
		}
		return nil, err
	}
	return user, nil
}

// UpdateBalance adds delta to the user's balance without clamping
func (r *postgresUserRepository) UpdateBalance(ctx context.Context, id int64, delta float64) (*domain.User, error) {
	query := fmt.Sprintf(`UPDATE users SET balance = balance + $2 WHERE id = $1 RETURNING %s`, userColumns)
	return r.scanUser(r.db.DB.QueryRowContext(ctx, query, id, delta), fmt.Sprintf("user with id %d", id))
}

// UpdatePassword replaces the stored password hash
func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

// SetEmailVerification stores a pending email verification code
func (r *postgresUserRepository) SetEmailVerification(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	return r.exec(ctx, `UPDATE users SET email_verification_code = $2, email_code_expires_at = $3 WHERE id = $1`, id, code, expiresAt)
}

// ConfirmEmail marks the email verified and clears the pending code
func (r *postgresUserRepository) ConfirmEmail(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE users SET is_email_verified = TRUE, email_verification_code = NULL, email_code_expires_at = NULL WHERE id = $1`, id)
}

// SetPhoneVerification stores a pending phone verification code
func (r *postgresUserRepository) SetPhoneVerification(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	return r.exec(ctx, `UPDATE users SET phone_verification_code = $2, phone_code_expires_at = $3 WHERE id = $1`, id, code, expiresAt)
}

// ConfirmPhone marks the phone number verified and clears the pending code
func (r *postgresUserRepository) ConfirmPhone(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE users SET is_phone_verified = TRUE, phone_verification_code = NULL, phone_code_expires_at = NULL WHERE id = $1`, id)
}

func (r *postgresUserRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}

	return nil
}
