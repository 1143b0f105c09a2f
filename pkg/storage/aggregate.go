package storage

import (
	"context"

	"github.com/leonelcastillo/Tx/pkg/models"
)

// AggregateReader defines the aggregate views computed over the transaction
// table. Nothing here is cached; every call recomputes from the store.
type AggregateReader interface {
	// CollectedTotals groups COLLECTED transactions by resolved identity
	// (wallet when non-empty, else phone) and returns up to limit groups
	// ordered by summed collected weight descending. Equal totals are ordered
	// by identity string ascending so the ranking is deterministic.
	CollectedTotals(ctx context.Context, limit int) ([]models.IdentityTotal, error)

	// ContributionsFor returns the raw (wallet, phone) groups whose wallet or
	// phone equals identifier verbatim, each with its summed submitted
	// weight_kg across all statuses.
	ContributionsFor(ctx context.Context, identifier string) ([]models.Contribution, error)

	// Stats returns the total collected weight and overall row count.
	Stats(ctx context.Context) (*models.Stats, error)
}
