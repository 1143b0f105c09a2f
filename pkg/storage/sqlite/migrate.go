package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Canonical schema. weight_kg is nullable: weight may be supplied later, at
// collection time, rather than at submission.
const createTransactionsTable = `CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY,
	name VARCHAR NOT NULL,
	phone VARCHAR,
	wallet VARCHAR,
	weight_kg FLOAT,
	address VARCHAR,
	photo VARCHAR,
	date DATETIME,
	status VARCHAR NOT NULL,
	collected_weight_kg FLOAT,
	collected_photo VARCHAR,
	collected_at DATETIME
)`

// Shadow table used by the rebuild step. Deliberately not IF NOT EXISTS: a
// leftover transactions_new from a crashed run must fail the rebuild and roll
// back rather than silently merge into stale state.
const createShadowTable = `CREATE TABLE transactions_new (
	id INTEGER PRIMARY KEY,
	name VARCHAR NOT NULL,
	phone VARCHAR,
	wallet VARCHAR,
	weight_kg FLOAT,
	address VARCHAR,
	photo VARCHAR,
	date DATETIME,
	status VARCHAR NOT NULL,
	collected_weight_kg FLOAT,
	collected_photo VARCHAR,
	collected_at DATETIME
)`

const copyIntoShadowTable = `INSERT INTO transactions_new
	(id, name, phone, wallet, weight_kg, address, photo, date, status, collected_weight_kg, collected_photo, collected_at)
	SELECT id, name, phone, wallet, weight_kg, address, photo, date, status, collected_weight_kg, collected_photo, collected_at
	FROM transactions`

// MigrationResult reports what Migrate changed, so callers and tests can tell
// an upgrade from a no-op.
type MigrationResult struct {
	AddedColumns []string
	Rebuilt      bool
}

// column mirrors one row of PRAGMA table_info output.
type column struct {
	name    string
	notNull bool
}

// Migrate brings the transactions table up to the current schema. It must run
// to completion before the store serves any other operation. Each step is
// independently idempotent, so running Migrate against an already-upgraded
// database performs no DDL at all:
//
//  1. Create the table if the database is fresh.
//  2. Add the collected_* columns missing from databases that predate the
//     collection outcome (additive ALTERs, never destructive).
//  3. If weight_kg is still NOT NULL from the era when weight was required at
//     submission, rebuild the table through a shadow copy to drop the
//     constraint. SQLite cannot drop a column constraint in place.
func (s *Store) Migrate(ctx context.Context) (*MigrationResult, error) {
	res := &MigrationResult{}

	if _, err := s.db.ExecContext(ctx, createTransactionsTable); err != nil {
		return res, fmt.Errorf("failed to create transactions table: %w", err)
	}

	cols, err := s.tableColumns(ctx, "transactions")
	if err != nil {
		return res, fmt.Errorf("failed to inspect transactions table: %w", err)
	}

	additive := []struct{ name, ddl string }{
		{"collected_weight_kg", "ALTER TABLE transactions ADD COLUMN collected_weight_kg FLOAT"},
		{"collected_photo", "ALTER TABLE transactions ADD COLUMN collected_photo VARCHAR"},
		{"collected_at", "ALTER TABLE transactions ADD COLUMN collected_at DATETIME"},
	}
	for _, a := range additive {
		if _, ok := cols[a.name]; ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, a.ddl); err != nil {
			return res, fmt.Errorf("failed to add column %s: %w", a.name, err)
		}
		res.AddedColumns = append(res.AddedColumns, a.name)
	}

	if c, ok := cols["weight_kg"]; ok && c.notNull {
		if err := s.rebuildWeightNullable(ctx); err != nil {
			return res, fmt.Errorf("failed to rebuild transactions table: %w", err)
		}
		res.Rebuilt = true
	}

	return res, nil
}

// tableColumns returns the current column set of table keyed by column name.
func (s *Store) tableColumns(ctx context.Context, table string) (map[string]column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]column)
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = column{name: name, notNull: notNull == 1}
	}
	return cols, rows.Err()
}

// rebuildWeightNullable recreates the transactions table with weight_kg
// nullable by copying every row verbatim into a shadow table and swapping it
// in. The whole sequence runs inside a single transaction: any failure rolls
// back and leaves the original table completely untouched.
func (s *Store) rebuildWeightNullable(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		createShadowTable,
		copyIntoShadowTable,
		"DROP TABLE transactions",
		"ALTER TABLE transactions_new RENAME TO transactions",
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("rebuild step failed: %w", err)
		}
	}

	return tx.Commit()
}
