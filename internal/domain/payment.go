package domain

import "time"

// PaymentStatus is the settlement outcome of a payment record.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
	PaymentPending PaymentStatus = "pending"
)

// Payment is the settlement record created once per completed ride.
// Immutable after creation.
type Payment struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"userId" db:"user_id"`
	RideID    int64         `json:"rideId" db:"ride_id"`
	Amount    float64       `json:"amount" db:"amount"`
	Status    PaymentStatus `json:"status" db:"status"`
	Timestamp time.Time     `json:"timestamp" db:"timestamp"`
}
