package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"omitempty,max=128"`
}

// LoginRequest represents a username/password login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries optional profile fields to merge
type UpdateProfileRequest struct {
	Email          *string `json:"email" binding:"omitempty,email"`
	FullName       *string `json:"fullName" binding:"omitempty,max=128"`
	PhoneNumber    *string `json:"phoneNumber"`
	ProfilePicture *string `json:"profilePicture"`
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// PhoneCodeRequest asks for an SMS verification code
type PhoneCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// PhoneVerifyRequest matches an SMS code and signs the caller in
type PhoneVerifyRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required,len=6"`
}

// EmailVerifyRequest matches an email verification code
type EmailVerifyRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// CreateScooterRequest registers a new scooter on the map.
// Availability defaults to true when unspecified.
type CreateScooterRequest struct {
	Code         string  `json:"scooterId" binding:"required"`
	BatteryLevel int     `json:"batteryLevel" binding:"required,min=0,max=100"`
	IsAvailable  *bool   `json:"isAvailable"`
	Latitude     float64 `json:"latitude" binding:"required"`
	Longitude    float64 `json:"longitude" binding:"required"`
}

// StartRideRequest unlocks a scooter and opens a ride
type StartRideRequest struct {
	ScooterID      int64   `json:"scooterId" binding:"required"`
	StartLatitude  float64 `json:"startLatitude"`
	StartLongitude float64 `json:"startLongitude"`
}

// EndRideRequest closes an active ride
type EndRideRequest struct {
	EndLatitude  float64 `json:"endLatitude"`
	EndLongitude float64 `json:"endLongitude"`
}

// AddBalanceRequest tops up the caller's wallet
type AddBalanceRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
