package domain

import "time"

// CredentialKind discriminates how a user proves their identity.
type CredentialKind string

const (
	CredentialPassword CredentialKind = "password"
	CredentialGoogle   CredentialKind = "google"
	CredentialPhone    CredentialKind = "phone"
)

// User represents a rider account with a prepaid balance.
type User struct {
	ID                int64          `json:"id" db:"id"`
	Username          string         `json:"username" db:"username"`
	PasswordHash      string         `json:"-" db:"password_hash"`
	Email             string         `json:"email" db:"email"`
	FullName          string         `json:"fullName" db:"full_name"`
	PhoneNumber       *string        `json:"phoneNumber" db:"phone_number"`
	ProfilePicture    *string        `json:"profilePicture" db:"profile_picture"`
	Balance           float64        `json:"balance" db:"balance"`
	CredentialKind    CredentialKind `json:"credentialKind" db:"credential_kind"`
	ProviderID        *string        `json:"providerId" db:"provider_id"`
	ProviderAccountID *string        `json:"providerAccountId" db:"provider_account_id"`
	IsEmailVerified   bool           `json:"isEmailVerified" db:"is_email_verified"`
	IsPhoneVerified   bool           `json:"isPhoneVerified" db:"is_phone_verified"`

	EmailVerificationCode *string    `json:"-" db:"email_verification_code"`
	EmailCodeExpiresAt    *time.Time `json:"-" db:"email_code_expires_at"`
	PhoneVerificationCode *string    `json:"-" db:"phone_verification_code"`
	PhoneCodeExpiresAt    *time.Time `json:"-" db:"phone_code_expires_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// HasPasswordCredential reports whether the user can authenticate with a password.
func (u *User) HasPasswordCredential() bool {
	return u.CredentialKind == CredentialPassword && u.PasswordHash != ""
}
