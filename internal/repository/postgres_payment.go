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

const paymentColumns = `id, user_id, ride_id, amount, status, timestamp`

// postgresPaymentRepository implements PaymentRepository over PostgreSQL
type postgresPaymentRepository struct {
	db *database.Postgres
}

// NewPostgresPaymentRepository creates a new PostgreSQL-backed payment repository
func NewPostgresPaymentRepository(db *database.Postgres) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

// Create creates a new payment in the database
func (r *postgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now()
	}
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}

	query := `
		INSERT INTO payments (user_id, ride_id, amount, status, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.DB.QueryRowContext(ctx, query,
		payment.UserID,
		payment.RideID,
		payment.Amount,
		payment.Status,
		payment.Timestamp,
	).Scan(&payment.ID)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by id
func (r *postgresPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)

	payment := &domain.Payment{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.RideID,
		&payment.Amount,
		&payment.Status,
		&payment.Timestamp,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("payment with id %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment by id: %w", err)
	}

	return payment, nil
}

// ListByUser returns all payments for a user, newest first
func (r *postgresPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE user_id = $1 ORDER BY id DESC`, paymentColumns)

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment := &domain.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.RideID,
			&payment.Amount,
			&payment.Status,
			&payment.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
