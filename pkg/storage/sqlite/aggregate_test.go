package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonelcastillo/Tx/pkg/models"
)

func TestCollectedTotalsGroupsByIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Wallet wins over phone when both are present.
	seedCollected(t, store, "Alice", strPtr("0xAAA"), strPtr("+15550001111"), 2.0)
	seedCollected(t, store, "Alice 2", strPtr("0xAAA"), nil, 3.0)
	seedCollected(t, store, "Bob", nil, strPtr("+15552222222"), 4.0)

	totals, err := store.CollectedTotals(ctx, 50)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "0xAAA", totals[0].Identity)
	assert.Equal(t, 5.0, totals[0].TotalKg)
	assert.Equal(t, "+15552222222", totals[1].Identity)
	assert.Equal(t, 4.0, totals[1].TotalKg)
}

func TestCollectedTotalsRepresentativeIsLatestRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedCollected(t, store, "Old Name", strPtr("0xAAA"), nil, 1.0)
	seedCollected(t, store, "New Name", strPtr("0xAAA"), strPtr("+15559999999"), 1.0)

	totals, err := store.CollectedTotals(ctx, 50)
	require.NoError(t, err)
	require.Len(t, totals, 1)

	// The group renders with the highest-id row's name and contact fields.
	assert.Equal(t, "New Name", totals[0].RepName)
	require.NotNil(t, totals[0].RepPhone)
	assert.Equal(t, "+15559999999", *totals[0].RepPhone)
}

func TestCollectedTotalsTieBreaksByIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedCollected(t, store, "A", strPtr("walletA"), nil, 3.0)
	seedCollected(t, store, "A", strPtr("walletA"), nil, 2.0)
	seedCollected(t, store, "B", strPtr("walletB"), nil, 5.0)

	totals, err := store.CollectedTotals(ctx, 50)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// Both groups total 5.0; equal totals order by identity ascending.
	assert.Equal(t, "walletA", totals[0].Identity)
	assert.Equal(t, "walletB", totals[1].Identity)
}

func TestCollectedTotalsIgnoresUncollectedRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedCollected(t, store, "done", strPtr("0xAAA"), nil, 2.0)
	seedTransaction(t, store, "still pending", strPtr("0xAAA"), nil, floatPtr(10))

	// A cancelled row with a populated outcome must not count either; status
	// alone decides membership.
	stale := &models.Transaction{
		Id:                500,
		Name:              "cancelled after collection",
		Wallet:            strPtr("0xAAA"),
		Date:              time.Now().UTC(),
		Status:            models.CANCELLED,
		CollectedWeightKg: floatPtr(99),
	}
	require.NoError(t, store.ImportTransaction(ctx, stale))

	totals, err := store.CollectedTotals(ctx, 50)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 2.0, totals[0].TotalKg)
}

func TestCollectedTotalsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedCollected(t, store, "a", strPtr("w1"), nil, 1.0)
	seedCollected(t, store, "b", strPtr("w2"), nil, 2.0)
	seedCollected(t, store, "c", strPtr("w3"), nil, 3.0)

	totals, err := store.CollectedTotals(ctx, 2)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "w3", totals[0].Identity)
	assert.Equal(t, "w2", totals[1].Identity)
}

func TestCollectedTotalsEmptyTable(t *testing.T) {
	store := newTestStore(t)

	totals, err := store.CollectedTotals(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestContributionsForSumsAllStatuses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedTransaction(t, store, "p1", strPtr("0xAAA"), strPtr("+15550001111"), floatPtr(1.5))
	seedTransaction(t, store, "p2", strPtr("0xAAA"), strPtr("+15550001111"), floatPtr(2.5))
	tx := seedTransaction(t, store, "p3", strPtr("0xAAA"), nil, floatPtr(3))
	_, err := store.UpdateStatus(ctx, tx.Id, models.CANCELLED)
	require.NoError(t, err)
	seedTransaction(t, store, "other", strPtr("0xBBB"), nil, floatPtr(100))

	contributions, err := store.ContributionsFor(ctx, "0xAAA")
	require.NoError(t, err)
	require.Len(t, contributions, 2, "distinct (wallet, phone) pairs stay separate")

	var total float64
	for _, c := range contributions {
		total += c.Kg
	}
	assert.Equal(t, 7.0, total, "pledged weight sums across every status")
}

func TestContributionsForMatchesPhone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedTransaction(t, store, "p", nil, strPtr("+15550001111"), floatPtr(2))

	contributions, err := store.ContributionsFor(ctx, "+15550001111")
	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.Nil(t, contributions[0].Wallet)
	assert.Equal(t, 2.0, contributions[0].Kg)

	none, err := store.ContributionsFor(ctx, "no-such-identifier")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalKg)
	assert.Equal(t, int64(0), stats.TotalCount)

	seedCollected(t, store, "a", strPtr("w"), nil, 2.5)
	seedTransaction(t, store, "b", nil, nil, floatPtr(100))

	stats, err = store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.5, stats.TotalKg, "only collected weight counts toward the total")
	assert.Equal(t, int64(2), stats.TotalCount, "every transaction counts, collected or not")
}
