package service

import "errors"

// Sentinel errors handlers map to HTTP status codes
var (
	// ErrInvalidCredentials is returned when login credentials do not match
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionRevoked is returned when a session token has been logged out
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrActiveRideExists is returned when a user tries to start a second ride
	ErrActiveRideExists = errors.New("user already has an active ride")

	// ErrScooterUnavailable is returned when the target scooter is locked by a ride
	ErrScooterUnavailable = errors.New("scooter is not available")

	// ErrNotRideOwner is returned when a user tries to end someone else's ride
	ErrNotRideOwner = errors.New("ride belongs to another user")

	// ErrRideNotActive is returned when ending a ride that already reached a terminal state
	ErrRideNotActive = errors.New("ride is not active")

	// ErrInvalidCode is returned when a verification code does not match
	ErrInvalidCode = errors.New("verification code does not match")

	// ErrCodeExpired is returned when a verification code is past its expiry
	ErrCodeExpired = errors.New("verification code has expired")

	// ErrNoPendingCode is returned when no verification code was requested
	ErrNoPendingCode = errors.New("no pending verification code")
)
