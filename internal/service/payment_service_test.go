package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/repository"
)

func TestAddBalance(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewPaymentService(repos.Payment, repos.User, zap.NewNop())
	ctx := context.Background()

	user := &domain.User{Username: "topper", Email: "topper@example.com", Balance: 1.50}
	require.NoError(t, repos.User.Create(ctx, user))

	updated, err := svc.AddBalance(ctx, user.ID, 10.00)
	require.NoError(t, err)
	require.InDelta(t, 11.50, updated.Balance, 1e-9)

	_, err = svc.AddBalance(ctx, user.ID, 0)
	require.Error(t, err)

	_, err = svc.AddBalance(ctx, user.ID, -5)
	require.Error(t, err)

	unchanged, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.InDelta(t, 11.50, unchanged.Balance, 1e-9)
}

func TestListForUserEmpty(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewPaymentService(repos.Payment, repos.User, zap.NewNop())

	payments, err := svc.ListForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, payments)
}
