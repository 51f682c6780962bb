package domain

import "time"

// RideStatus is the lifecycle state of a rental session.
type RideStatus string

const (
	RideActive    RideStatus = "active"
	RideCompleted RideStatus = "completed"
	RideCancelled RideStatus = "cancelled"
)

// CanTransitionTo reports whether the status change is allowed.
// Active rides may complete or be cancelled; both end states are terminal.
func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	switch s {
	case RideActive:
		return next == RideCompleted || next == RideCancelled
	default:
		return false
	}
}

// Valid reports whether s is one of the known statuses.
func (s RideStatus) Valid() bool {
	switch s {
	case RideActive, RideCompleted, RideCancelled:
		return true
	}
	return false
}

// Ride represents one rental session from unlock to return.
// End fields stay nil while the ride is active.
type Ride struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"userId" db:"user_id"`
	ScooterID      int64      `json:"scooterId" db:"scooter_id"`
	Status         RideStatus `json:"status" db:"status"`
	StartTime      time.Time  `json:"startTime" db:"start_time"`
	EndTime        *time.Time `json:"endTime" db:"end_time"`
	StartLatitude  float64    `json:"startLatitude" db:"start_latitude"`
	StartLongitude float64    `json:"startLongitude" db:"start_longitude"`
	EndLatitude    *float64   `json:"endLatitude" db:"end_latitude"`
	EndLongitude   *float64   `json:"endLongitude" db:"end_longitude"`
	Distance       *float64   `json:"distance" db:"distance"`
	Cost           *float64   `json:"cost" db:"cost"`
}

// IsActive reports whether the ride is still in progress.
func (r *Ride) IsActive() bool {
	return r.Status == RideActive
}
