package domain

import "time"

// Scooter represents a rentable unit on the map.
type Scooter struct {
	ID           int64     `json:"id" db:"id"`
	Code         string    `json:"scooterId" db:"code"`
	BatteryLevel int       `json:"batteryLevel" db:"battery_level"`
	IsAvailable  bool      `json:"isAvailable" db:"is_available"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
