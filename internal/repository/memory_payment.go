package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avetkin/scooter-rental/internal/domain"
)

// memoryPaymentRepository implements PaymentRepository over an in-process map.
// Payments are immutable once created; there is no update path.
type memoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[int64]*domain.Payment
	seq      sequence
}

// NewMemoryPaymentRepository creates an empty in-memory payment repository
func NewMemoryPaymentRepository() PaymentRepository {
	return &memoryPaymentRepository{payments: make(map[int64]*domain.Payment)}
}

func clonePayment(p *domain.Payment) *domain.Payment {
	c := *p
	return &c
}

// Create stores a new payment, assigning the next id
func (r *memoryPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment.ID = r.seq.next()
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now()
	}
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}

	r.payments[payment.ID] = clonePayment(payment)
	return nil
}

// GetByID retrieves a payment by id
func (r *memoryPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment with id %d not found: %w", id, ErrNotFound)
	}
	return clonePayment(payment), nil
}

// ListByUser returns all payments for a user, newest first
func (r *memoryPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []*domain.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			payments = append(payments, clonePayment(p))
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID > payments[j].ID })
	return payments, nil
}
