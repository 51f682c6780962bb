// Package seed populates the scooter fleet with plausible demo data at startup.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/repository"
)

// area is a named cluster of anchor points scooters are scattered around.
type area struct {
	name   string
	points []point
}

type point struct {
	lat float64
	lng float64
}

// coordJitter is roughly tens of meters on each axis.
const coordJitter = 0.0008

var areas = []area{
	{name: "City Center", points: []point{
		{51.5074, -0.1278}, {51.5101, -0.1340}, {51.5033, -0.1196},
	}},
	{name: "Riverside", points: []point{
		{51.5081, -0.0759}, {51.5055, -0.0865}, {51.5007, -0.1246},
	}},
	{name: "University District", points: []point{
		{51.5246, -0.1340}, {51.5203, -0.1300}, {51.5229, -0.1308},
	}},
	{name: "Business Park", points: []point{
		{51.5155, -0.0922}, {51.5132, -0.0890}, {51.5174, -0.0800},
	}},
	{name: "Old Town", points: []point{
		{51.5128, -0.1040}, {51.5145, -0.0998}, {51.5113, -0.1090},
	}},
	{name: "North Station", points: []point{
		{51.5309, -0.1238}, {51.5288, -0.1257}, {51.5320, -0.1200},
	}},
}

// Scooters scatters count scooters across the known areas. Each unit gets
// uniform coordinate jitter, a battery level in [20,100] and a code of one
// uppercase letter plus a zero-padded 3-digit number. Codes may collide;
// nothing depends on their uniqueness.
func Scooters(ctx context.Context, repo repository.ScooterRepository, count int, logger *zap.Logger) error {
	for i := 0; i < count; i++ {
		a := areas[rand.Intn(len(areas))]
		p := a.points[rand.Intn(len(a.points))]

		scooter := &domain.Scooter{
			Code:         randomCode(),
			BatteryLevel: 20 + rand.Intn(81),
			IsAvailable:  true,
			Latitude:     p.lat + jitter(),
			Longitude:    p.lng + jitter(),
		}

		if err := repo.Create(ctx, scooter); err != nil {
			return fmt.Errorf("failed to seed scooter %d: %w", i+1, err)
		}
	}

	logger.Info("Seeded scooter fleet",
		zap.Int("count", count),
		zap.Int("areas", len(areas)),
	)
	return nil
}

func jitter() float64 {
	return (rand.Float64()*2 - 1) * coordJitter
}

func randomCode() string {
	letter := rune('A' + rand.Intn(26))
	return fmt.Sprintf("%c%03d", letter, rand.Intn(1000))
}
