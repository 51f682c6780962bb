package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
)

func TestMemoryRideActiveLookup(t *testing.T) {
	repo := NewMemoryRideRepository()
	ctx := context.Background()

	ride := &domain.Ride{UserID: 1, ScooterID: 2, StartTime: time.Now()}
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if ride.Status != domain.RideActive {
		t.Errorf("expected new ride to default to active, got %s", ride.Status)
	}

	active, err := repo.GetActiveByUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetActiveByUser failed: %v", err)
	}
	if active.ID != ride.ID {
		t.Errorf("expected ride %d, got %d", ride.ID, active.ID)
	}

	if _, err := repo.GetActiveByUser(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for user without active ride, got %v", err)
	}
}

func TestMemoryRideUpdateEnforcesTransitions(t *testing.T) {
	repo := NewMemoryRideRepository()
	ctx := context.Background()

	ride := &domain.Ride{UserID: 1, ScooterID: 2, StartTime: time.Now()}
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	completed := domain.RideCompleted
	now := time.Now()
	cost := 4.00
	updated, err := repo.Update(ctx, ride.ID, RideUpdate{
		Status:  &completed,
		EndTime: &now,
		Cost:    &cost,
	})
	if err != nil {
		t.Fatalf("Update to completed failed: %v", err)
	}
	if updated.Status != domain.RideCompleted || updated.EndTime == nil || updated.Cost == nil {
		t.Error("expected terminal fields to be written")
	}

	active := domain.RideActive
	if _, err := repo.Update(ctx, ride.ID, RideUpdate{Status: &active}); err == nil {
		t.Error("expected reopening a completed ride to fail")
	}

	cancelled := domain.RideCancelled
	if _, err := repo.Update(ctx, ride.ID, RideUpdate{Status: &cancelled}); err == nil {
		t.Error("expected completed -> cancelled to fail")
	}
}

func TestMemoryRideListByUserNewestFirst(t *testing.T) {
	repo := NewMemoryRideRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, &domain.Ride{UserID: 7, ScooterID: int64(i + 1), StartTime: time.Now()}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := repo.Create(ctx, &domain.Ride{UserID: 8, ScooterID: 9, StartTime: time.Now()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	rides, err := repo.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(rides) != 3 {
		t.Fatalf("expected 3 rides, got %d", len(rides))
	}
	for i := 1; i < len(rides); i++ {
		if rides[i-1].ID < rides[i].ID {
			t.Error("expected rides ordered newest first")
		}
	}
}

func TestMemoryRideReturnsCopies(t *testing.T) {
	repo := NewMemoryRideRepository()
	ctx := context.Background()

	ride := &domain.Ride{UserID: 1, ScooterID: 1, StartTime: time.Now()}
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, ride.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	got.Status = domain.RideCancelled

	again, _ := repo.GetByID(ctx, ride.ID)
	if again.Status != domain.RideActive {
		t.Error("mutating a returned ride must not affect stored state")
	}
}
