package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
)

// memoryScooterRepository implements ScooterRepository over an in-process map.
type memoryScooterRepository struct {
	mu       sync.RWMutex
	scooters map[int64]*domain.Scooter
	seq      sequence
}

// NewMemoryScooterRepository creates an empty in-memory scooter repository
func NewMemoryScooterRepository() ScooterRepository {
	return &memoryScooterRepository{scooters: make(map[int64]*domain.Scooter)}
}

func cloneScooter(s *domain.Scooter) *domain.Scooter {
	c := *s
	return &c
}

// Create stores a new scooter, assigning the next id
func (r *memoryScooterRepository) Create(ctx context.Context, scooter *domain.Scooter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	scooter.ID = r.seq.next()
	if scooter.CreatedAt.IsZero() {
		scooter.CreatedAt = time.Now()
	}

	r.scooters[scooter.ID] = cloneScooter(scooter)
	return nil
}

// GetByID retrieves a scooter by id
func (r *memoryScooterRepository) GetByID(ctx context.Context, id int64) (*domain.Scooter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scooter, ok := r.scooters[id]
	if !ok {
		return nil, fmt.Errorf("scooter with id %d not found: %w", id, ErrNotFound)
	}
	return cloneScooter(scooter), nil
}

// GetByCode retrieves a scooter by its human-facing code via a linear scan
func (r *memoryScooterRepository) GetByCode(ctx context.Context, code string) (*domain.Scooter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *domain.Scooter
	for _, s := range r.scooters {
		if s.Code == code && (found == nil || s.ID < found.ID) {
			found = s
		}
	}
	if found == nil {
		return nil, fmt.Errorf("scooter with code %s not found: %w", code, ErrNotFound)
	}
	return cloneScooter(found), nil
}

// List returns all scooters ordered by id
func (r *memoryScooterRepository) List(ctx context.Context) ([]*domain.Scooter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scooters := make([]*domain.Scooter, 0, len(r.scooters))
	for _, s := range r.scooters {
		scooters = append(scooters, cloneScooter(s))
	}
	sort.Slice(scooters, func(i, j int) bool { return scooters[i].ID < scooters[j].ID })
	return scooters, nil
}

// Update merges partial fields into an existing scooter
func (r *memoryScooterRepository) Update(ctx context.Context, id int64, upd ScooterUpdate) (*domain.Scooter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scooter, ok := r.scooters[id]
	if !ok {
		return nil, fmt.Errorf("scooter with id %d not found: %w", id, ErrNotFound)
	}

	if upd.BatteryLevel != nil {
		scooter.BatteryLevel = *upd.BatteryLevel
	}
	if upd.IsAvailable != nil {
		scooter.IsAvailable = *upd.IsAvailable
	}
	if upd.Latitude != nil {
		scooter.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		scooter.Longitude = *upd.Longitude
	}

	return cloneScooter(scooter), nil
}
