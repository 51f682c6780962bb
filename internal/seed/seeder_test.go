package seed

import (
	"context"
	"regexp"
	"testing"

	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/repository"
)

func TestScootersSeedsExactCount(t *testing.T) {
	repo := repository.NewMemoryScooterRepository()
	ctx := context.Background()

	const count = 250
	if err := Scooters(ctx, repo, count, zap.NewNop()); err != nil {
		t.Fatalf("Scooters failed: %v", err)
	}

	scooters, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(scooters) != count {
		t.Fatalf("expected %d scooters, got %d", count, len(scooters))
	}

	codePattern := regexp.MustCompile(`^[A-Z][0-9]{3}$`)
	for _, s := range scooters {
		if s.BatteryLevel < 20 || s.BatteryLevel > 100 {
			t.Errorf("scooter %s battery %d out of [20,100]", s.Code, s.BatteryLevel)
		}
		if !s.IsAvailable {
			t.Errorf("scooter %s should start available", s.Code)
		}
		if !codePattern.MatchString(s.Code) {
			t.Errorf("scooter code %q does not match letter+3 digits", s.Code)
		}
		if s.Latitude == 0 || s.Longitude == 0 {
			t.Errorf("scooter %s has zero coordinates", s.Code)
		}
	}
}

func TestScootersSpreadAcrossAreas(t *testing.T) {
	repo := repository.NewMemoryScooterRepository()
	ctx := context.Background()

	if err := Scooters(ctx, repo, 200, zap.NewNop()); err != nil {
		t.Fatalf("Scooters failed: %v", err)
	}

	scooters, _ := repo.List(ctx)

	// Every scooter must sit within jitter range of one of the anchor points.
	for _, s := range scooters {
		matched := false
		for _, a := range areas {
			for _, p := range a.points {
				if abs(s.Latitude-p.lat) <= coordJitter && abs(s.Longitude-p.lng) <= coordJitter {
					matched = true
				}
			}
		}
		if !matched {
			t.Errorf("scooter %s at (%f, %f) is not near any known area", s.Code, s.Latitude, s.Longitude)
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
