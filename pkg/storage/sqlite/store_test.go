package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leonelcastillo/Tx/pkg/models"
)

// newTestStore opens a fresh migrated database in a per-test directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "transactions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.Migrate(context.Background())
	require.NoError(t, err)
	return store
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// seedTransaction creates a pending transaction with the given identity fields.
func seedTransaction(t *testing.T, store *Store, name string, wallet, phone *string, weightKg *float64) *models.Transaction {
	t.Helper()
	tx, err := store.CreateTransaction(context.Background(), &models.NewTransaction{
		Name:     name,
		Wallet:   wallet,
		Phone:    phone,
		WeightKg: weightKg,
	})
	require.NoError(t, err)
	return tx
}

// seedCollected creates a transaction and immediately collects it.
func seedCollected(t *testing.T, store *Store, name string, wallet, phone *string, collectedKg float64) *models.Transaction {
	t.Helper()
	tx := seedTransaction(t, store, name, wallet, phone, nil)
	collected, err := store.CollectTransaction(context.Background(), tx.Id, collectedKg, nil)
	require.NoError(t, err)
	return collected
}
