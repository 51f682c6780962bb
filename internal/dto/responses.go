package dto

import "github.com/avetkin/scooter-rental/internal/domain"

// AuthResponse is returned after a successful register/login
type AuthResponse struct {
	User *domain.User `json:"user"`
}

// EndRideResponse pairs the completed ride with its settlement record
type EndRideResponse struct {
	Ride    *domain.Ride    `json:"ride"`
	Payment *domain.Payment `json:"payment"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
