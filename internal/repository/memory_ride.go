package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/avetkin/scooter-rental/internal/domain"
)

// memoryRideRepository implements RideRepository over an in-process map.
type memoryRideRepository struct {
	mu    sync.RWMutex
	rides map[int64]*domain.Ride
	seq   sequence
}

// NewMemoryRideRepository creates an empty in-memory ride repository
func NewMemoryRideRepository() RideRepository {
	return &memoryRideRepository{rides: make(map[int64]*domain.Ride)}
}

func cloneRide(r *domain.Ride) *domain.Ride {
	c := *r
	return &c
}

// Create stores a new ride, assigning the next id
func (r *memoryRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride.ID = r.seq.next()
	if ride.Status == "" {
		ride.Status = domain.RideActive
	}

	r.rides[ride.ID] = cloneRide(ride)
	return nil
}

// GetByID retrieves a ride by id
func (r *memoryRideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.rides[id]
	if !ok {
		return nil, fmt.Errorf("ride with id %d not found: %w", id, ErrNotFound)
	}
	return cloneRide(ride), nil
}

// ListByUser returns all rides for a user, newest first
func (r *memoryRideRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rides []*domain.Ride
	for _, ride := range r.rides {
		if ride.UserID == userID {
			rides = append(rides, cloneRide(ride))
		}
	}
	sort.Slice(rides, func(i, j int) bool { return rides[i].ID > rides[j].ID })
	return rides, nil
}

// GetActiveByUser returns the user's active ride, if any
func (r *memoryRideRepository) GetActiveByUser(ctx context.Context, userID int64) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ride := range r.rides {
		if ride.UserID == userID && ride.Status == domain.RideActive {
			return cloneRide(ride), nil
		}
	}
	return nil, fmt.Errorf("active ride for user %d not found: %w", userID, ErrNotFound)
}

// Update merges terminal-state fields into an existing ride.
// A status change must be allowed by the ride's transition table.
func (r *memoryRideRepository) Update(ctx context.Context, id int64, upd RideUpdate) (*domain.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok {
		return nil, fmt.Errorf("ride with id %d not found: %w", id, ErrNotFound)
	}

	if upd.Status != nil && *upd.Status != ride.Status {
		if !ride.Status.CanTransitionTo(*upd.Status) {
			return nil, fmt.Errorf("ride %d cannot transition from %s to %s", id, ride.Status, *upd.Status)
		}
		ride.Status = *upd.Status
	}
	if upd.EndTime != nil {
		ride.EndTime = upd.EndTime
	}
	if upd.EndLatitude != nil {
		ride.EndLatitude = upd.EndLatitude
	}
	if upd.EndLongitude != nil {
		ride.EndLongitude = upd.EndLongitude
	}
	if upd.Distance != nil {
		ride.Distance = upd.Distance
	}
	if upd.Cost != nil {
		ride.Cost = upd.Cost
	}

	return cloneRide(ride), nil
}
