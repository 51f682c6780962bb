package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/pkg/database"
)

const scooterColumns = `id, code, battery_level, is_available, latitude, longitude, created_at`

// postgresScooterRepository implements ScooterRepository over PostgreSQL
type postgresScooterRepository struct {
	db *database.Postgres
}

// NewPostgresScooterRepository creates a new PostgreSQL-backed scooter repository
func NewPostgresScooterRepository(db *database.Postgres) ScooterRepository {
	return &postgresScooterRepository{db: db}
}

// Create creates a new scooter in the database
func (r *postgresScooterRepository) Create(ctx context.Context, scooter *domain.Scooter) error {
	if scooter.CreatedAt.IsZero() {
		scooter.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO scooters (code, battery_level, is_available, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		scooter.Code,
		scooter.BatteryLevel,
		scooter.IsAvailable,
		scooter.Latitude,
		scooter.Longitude,
		scooter.CreatedAt,
	).Scan(&scooter.ID)

	if err != nil {
		return fmt.Errorf("failed to create scooter: %w", err)
	}

	return nil
}

func scanScooter(row *sql.Row, what string) (*domain.Scooter, error) {
	scooter := &domain.Scooter{}
	err := row.Scan(
		&scooter.ID,
		&scooter.Code,
		&scooter.BatteryLevel,
		&scooter.IsAvailable,
		&scooter.Latitude,
		&scooter.Longitude,
		&scooter.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s not found: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}

	return scooter, nil
}

// GetByID retrieves a scooter by id
func (r *postgresScooterRepository) GetByID(ctx context.Context, id int64) (*domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters WHERE id = $1`, scooterColumns)
	return scanScooter(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("scooter with id %d", id))
}

// GetByCode retrieves a scooter by its human-facing code
func (r *postgresScooterRepository) GetByCode(ctx context.Context, code string) (*domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters WHERE code = $1 ORDER BY id LIMIT 1`, scooterColumns)
	return scanScooter(r.db.DB.QueryRowContext(ctx, query, code), fmt.Sprintf("scooter with code %s", code))
}

// List returns all scooters ordered by id
func (r *postgresScooterRepository) List(ctx context.Context) ([]*domain.Scooter, error) {
	query := fmt.Sprintf(`SELECT %s FROM scooters ORDER BY id`, scooterColumns)

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scooters: %w", err)
	}
	defer rows.Close()

	var scooters []*domain.Scooter
	for rows.Next() {
		scooter := &domain.Scooter{}
		err := rows.Scan(
			&scooter.ID,
			&scooter.Code,
			&scooter.BatteryLevel,
			&scooter.IsAvailable,
			&scooter.Latitude,
			&scooter.Longitude,
			&scooter.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scooter: %w", err)
		}
		scooters = append(scooters, scooter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scooters: %w", err)
	}

	return scooters, nil
}

// Update merges partial fields into an existing scooter
func (r *postgresScooterRepository) Update(ctx context.Context, id int64, upd ScooterUpdate) (*domain.Scooter, error) {
	query := fmt.Sprintf(`
		UPDATE scooters
		SET battery_level = COALESCE($2, battery_level),
			is_available = COALESCE($3, is_available),
			latitude = COALESCE($4, latitude),
			longitude = COALESCE($5, longitude)
		WHERE id = $1
		RETURNING %s
	`, scooterColumns)

	row := r.db.DB.QueryRowContext(ctx, query, id,
		upd.BatteryLevel, upd.IsAvailable, upd.Latitude, upd.Longitude)
	return scanScooter(row, fmt.Sprintf("scooter with id %d", id))
}
