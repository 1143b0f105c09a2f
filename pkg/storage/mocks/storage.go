// Package mocks provides a testify-based mock of the storage interfaces for
// handler and engine tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/leonelcastillo/Tx/pkg/models"
)

// Storage is a mock implementation of storage.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *Storage) ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *Storage) CreateTransaction(ctx context.Context, newTx *models.NewTransaction) (*models.Transaction, error) {
	args := m.Called(ctx, newTx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *Storage) UpdateTransaction(ctx context.Context, id int64, update models.TransactionUpdate) (*models.Transaction, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *Storage) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *Storage) CollectTransaction(ctx context.Context, id int64, weightKg float64, photo *string) (*models.Transaction, error) {
	args := m.Called(ctx, id, weightKg, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *Storage) DeleteTransaction(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Storage) CollectedTotals(ctx context.Context, limit int) ([]models.IdentityTotal, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IdentityTotal), args.Error(1)
}

func (m *Storage) ContributionsFor(ctx context.Context, identifier string) ([]models.Contribution, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contribution), args.Error(1)
}

func (m *Storage) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *Storage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
