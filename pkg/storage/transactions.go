package storage

import (
	"context"

	"github.com/leonelcastillo/Tx/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its id.
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)

	// ListTransactions retrieves transactions ordered by id, skipping the
	// first skip rows. A limit <= 0 means no limit.
	ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error)
}

// TransactionManager defines the interface for creating and mutating
// transactions. Each operation is applied in its own atomic storage
// transaction.
type TransactionManager interface {
	// CreateTransaction creates a new PENDING transaction and returns the
	// stored row with its server-assigned id and date.
	CreateTransaction(ctx context.Context, newTx *models.NewTransaction) (*models.Transaction, error)

	// UpdateTransaction applies a partial update of the mutable submission
	// fields and returns the updated row.
	UpdateTransaction(ctx context.Context, id int64, update models.TransactionUpdate) (*models.Transaction, error)

	// UpdateStatus sets the transaction status. It never touches the
	// collected_* fields; use CollectTransaction for that.
	UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error)

	// CollectTransaction records the collection outcome: collected weight,
	// optional collected photo, a collection timestamp and the COLLECTED
	// status, all in one atomic update. Re-collecting an already collected
	// transaction overwrites the previous outcome (last write wins).
	CollectTransaction(ctx context.Context, id int64, weightKg float64, photo *string) (*models.Transaction, error)

	// DeleteTransaction removes a transaction. Its id is never reused.
	DeleteTransaction(ctx context.Context, id int64) error
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
