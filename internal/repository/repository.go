package repository

import (
	"github.com/avetkin/scooter-rental/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Scooter ScooterRepository
	Ride    RideRepository
	Payment PaymentRepository
}

// NewMemoryRepositories creates the default in-process repositories.
// State lives for the lifetime of the process only.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		User:    NewMemoryUserRepository(),
		Scooter: NewMemoryScooterRepository(),
		Ride:    NewMemoryRideRepository(),
		Payment: NewMemoryPaymentRepository(),
	}
}

// NewPostgresRepositories creates repositories backed by PostgreSQL.
func NewPostgresRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:    NewPostgresUserRepository(db),
		Scooter: NewPostgresScooterRepository(db),
		Ride:    NewPostgresRideRepository(db),
		Payment: NewPostgresPaymentRepository(db),
	}
}
