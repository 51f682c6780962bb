package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/pkg/database"
)

const rideColumns = `id, user_id, scooter_id, status, start_time, end_time,
		start_latitude, start_longitude, end_latitude, end_longitude, distance, cost`

// postgresRideRepository implements RideRepository over PostgreSQL
type postgresRideRepository struct {
	db *database.Postgres
}

// NewPostgresRideRepository creates a new PostgreSQL-backed ride repository
func NewPostgresRideRepository(db *database.Postgres) RideRepository {
	return &postgresRideRepository{db: db}
}

// Create creates a new ride in the database
func (r *postgresRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if ride.Status == "" {
		ride.Status = domain.RideActive
	}

	query := `
		INSERT INTO rides (user_id, scooter_id, status, start_time, start_latitude, start_longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		ride.UserID,
		ride.ScooterID,
		ride.Status,
		ride.StartTime,
		ride.StartLatitude,
		ride.StartLongitude,
	).Scan(&ride.ID)

	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func scanRideRow(scan func(dest ...any) error) (*domain.Ride, error) {
	ride := &domain.Ride{}
	var endTime sql.NullTime

	err := scan(
		&ride.ID,
		&ride.UserID,
		&ride.ScooterID,
		&ride.Status,
		&ride.StartTime,
		&endTime,
		&ride.StartLatitude,
		&ride.StartLongitude,
		&ride.EndLatitude,
		&ride.EndLongitude,
		&ride.Distance,
		&ride.Cost,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		ride.EndTime = &endTime.Time
	}
	return ride, nil
}

func scanRide(row *sql.Row, what string) (*domain.Ride, error) {
	ride, err := scanRideRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s not found: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return ride, nil
}

// GetByID retrieves a ride by id
func (r *postgresRideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	query := fmt.Sprintf(`SELECT %s FROM rides WHERE id = $1`, rideColumns)
	return scanRide(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("ride with id %d", id))
}

// ListByUser returns all rides for a user, newest first
func (r *postgresRideRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Ride, error) {
	query := fmt.Sprintf(`SELECT %s FROM rides WHERE user_id = $1 ORDER BY id DESC`, rideColumns)

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRideRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ride: %w", err)
		}
		rides = append(rides, ride)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rides: %w", err)
	}

	return rides, nil
}

// GetActiveByUser returns the user's active ride, if any
func (r *postgresRideRepository) GetActiveByUser(ctx context.Context, userID int64) (*domain.Ride, error) {
	query := fmt.Sprintf(`SELECT %s FROM rides WHERE user_id = $1 AND status = $2 LIMIT 1`, rideColumns)
	return scanRide(r.db.DB.QueryRowContext(ctx, query, userID, domain.RideActive),
		fmt.Sprintf("active ride for user %d", userID))
}

// Update merges terminal-state fields into an existing ride.
// A status change must be allowed by the ride's transition table.
func (r *postgresRideRepository) Update(ctx context.Context, id int64, upd RideUpdate) (*domain.Ride, error) {
	if upd.Status != nil {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if *upd.Status != current.Status && !current.Status.CanTransitionTo(*upd.Status) {
			return nil, fmt.Errorf("ride %d cannot transition from %s to %s", id, current.Status, *upd.Status)
		}
	}

	query := fmt.Sprintf(`
		UPDATE rides
		SET status = COALESCE($2, status),
			end_time = COALESCE($3, end_time),
			end_latitude = COALESCE($4, end_latitude),
			end_longitude = COALESCE($5, end_longitude),
			distance = COALESCE($6, distance),
			cost = COALESCE($7, cost)
		WHERE id = $1
		RETURNING %s
	`, rideColumns)

	row := r.db.DB.QueryRowContext(ctx, query, id,
		upd.Status, upd.EndTime, upd.EndLatitude, upd.EndLongitude, upd.Distance, upd.Cost)
	return scanRide(row, fmt.Sprintf("ride with id %d", id))
}
