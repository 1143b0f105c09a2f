package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leonelcastillo/Tx/pkg/models"
	"github.com/leonelcastillo/Tx/pkg/storage"
)

const transactionColumns = `id, name, phone, wallet, weight_kg, address, photo, date, status,
	collected_weight_kg, collected_photo, collected_at`

// CreateTransaction inserts a new PENDING transaction with a server-assigned
// creation timestamp and returns the stored row.
func (s *Store) CreateTransaction(ctx context.Context, newTx *models.NewTransaction) (*models.Transaction, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (name, phone, wallet, weight_kg, address, photo, date, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		newTx.Name, newTx.Phone, newTx.Wallet, newTx.WeightKg, newTx.Address, newTx.Photo,
		formatTime(time.Now()), models.PENDING)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted transaction id: %w", err)
	}

	return s.GetTransaction(ctx, id)
}

// GetTransaction retrieves a transaction by its id.
func (s *Store) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM transactions WHERE id = ?", transactionColumns), id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return tx, nil
}

// ListTransactions retrieves transactions ordered by id. A limit <= 0 means no
// limit.
func (s *Store) ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = -1 // SQLite: LIMIT -1 disables the limit while keeping OFFSET valid
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM transactions ORDER BY id LIMIT ? OFFSET ?", transactionColumns),
		limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

// UpdateTransaction applies a partial update of the mutable submission fields.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, update models.TransactionUpdate) (*models.Transaction, error) {
	var (
		sets []string
		args []any
	)
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *update.Phone)
	}
	if update.Wallet != nil {
		sets = append(sets, "wallet = ?")
		args = append(args, *update.Wallet)
	}
	if update.WeightKg != nil {
		sets = append(sets, "weight_kg = ?")
		args = append(args, *update.WeightKg)
	}
	if update.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *update.Address)
	}
	if len(sets) == 0 {
		return nil, storage.ErrNoUpdatableFields
	}
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE transactions SET %s WHERE id = ?", strings.Join(sets, ", ")), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	if err := requireRowAffected(result); err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}

// UpdateStatus sets the transaction status without touching the collected_*
// fields.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status models.TransactionStatus) (*models.Transaction, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of transaction %d: %w", id, err)
	}
	if err := requireRowAffected(result); err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}

// CollectTransaction records the collection outcome. The collected weight,
// photo, timestamp and COLLECTED status are written in one atomic UPDATE, so
// no reader ever observes a partially collected row. Collecting an already
// collected transaction overwrites the previous outcome (last write wins).
func (s *Store) CollectTransaction(ctx context.Context, id int64, weightKg float64, photo *string) (*models.Transaction, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET collected_weight_kg = ?, collected_photo = ?, collected_at = ?, status = ?
		 WHERE id = ?`,
		weightKg, photo, formatTime(time.Now()), models.COLLECTED, id)
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction %d: %w", id, err)
	}
	if err := requireRowAffected(result); err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, id)
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return requireRowAffected(result)
}

// ImportTransaction inserts a fully-populated row verbatim, preserving its id,
// date, status and collection outcome. Used by the admin CLI to restore CSV
// exports; the HTTP API never goes through this path.
func (s *Store) ImportTransaction(ctx context.Context, tx *models.Transaction) error {
	var collectedAt any
	if tx.CollectedAt != nil {
		collectedAt = formatTime(*tx.CollectedAt)
	}
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO transactions (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", transactionColumns),
		tx.Id, tx.Name, tx.Phone, tx.Wallet, tx.WeightKg, tx.Address, tx.Photo,
		formatTime(tx.Date), tx.Status, tx.CollectedWeightKg, tx.CollectedPhoto, collectedAt)
	if err != nil {
		return fmt.Errorf("failed to import transaction %d: %w", tx.Id, err)
	}
	return nil
}

func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrTransactionNotFound
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx                models.Transaction
		phone             sql.NullString
		wallet            sql.NullString
		weightKg          sql.NullFloat64
		address           sql.NullString
		photo             sql.NullString
		date              sql.NullString
		status            string
		collectedWeightKg sql.NullFloat64
		collectedPhoto    sql.NullString
		collectedAt       sql.NullString
	)
	if err := row.Scan(&tx.Id, &tx.Name, &phone, &wallet, &weightKg, &address, &photo,
		&date, &status, &collectedWeightKg, &collectedPhoto, &collectedAt); err != nil {
		return nil, err
	}

	tx.Phone = nullStringPtr(phone)
	tx.Wallet = nullStringPtr(wallet)
	tx.WeightKg = nullFloatPtr(weightKg)
	tx.Address = nullStringPtr(address)
	tx.Photo = nullStringPtr(photo)
	tx.Status = models.TransactionStatus(status)
	tx.CollectedWeightKg = nullFloatPtr(collectedWeightKg)
	tx.CollectedPhoto = nullStringPtr(collectedPhoto)

	if date.Valid {
		t, err := parseTime(date.String)
		if err != nil {
			return nil, err
		}
		tx.Date = t
	}
	if collectedAt.Valid {
		t, err := parseTime(collectedAt.String)
		if err != nil {
			return nil, err
		}
		tx.CollectedAt = &t
	}

	return &tx, nil
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
