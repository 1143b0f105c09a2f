package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leonelcastillo/Tx/pkg/models"
)

// Identity resolution: the wallet when non-empty, otherwise the phone. Two
// rows belong to the same identity iff these strings match exactly; no
// normalization is applied.
//
// The inner aggregate keeps MAX(id) per identity so the outer join can pull
// the representative row: the group's most recent transaction by insertion
// order. Ids are used instead of timestamps because timestamps can collide.
// Equal totals order by identity ascending, a deterministic tiebreak in place
// of incidental database ordering.
const collectedTotalsQuery = `
SELECT agg.identity, agg.total_kg, t.name, t.wallet, t.phone
FROM (
	SELECT
		CASE WHEN wallet IS NOT NULL AND wallet != '' THEN wallet ELSE phone END AS identity,
		SUM(collected_weight_kg) AS total_kg,
		MAX(id) AS last_id
	FROM transactions
	WHERE status = 'collected'
	GROUP BY identity
) agg
JOIN transactions t ON t.id = agg.last_id
ORDER BY agg.total_kg DESC, agg.identity ASC
LIMIT ?`

// CollectedTotals returns up to limit leaderboard groups, best first.
func (s *Store) CollectedTotals(ctx context.Context, limit int) ([]models.IdentityTotal, error) {
	rows, err := s.db.QueryContext(ctx, collectedTotalsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query collected totals: %w", err)
	}
	defer rows.Close()

	var totals []models.IdentityTotal
	for rows.Next() {
		var (
			identity sql.NullString
			totalKg  sql.NullFloat64
			name     string
			wallet   sql.NullString
			phone    sql.NullString
		)
		if err := rows.Scan(&identity, &totalKg, &name, &wallet, &phone); err != nil {
			return nil, fmt.Errorf("failed to scan collected total: %w", err)
		}
		totals = append(totals, models.IdentityTotal{
			Identity:  identity.String, // NULL identity (no wallet, no phone) renders as empty
			TotalKg:   totalKg.Float64, // NULL sum renders as 0
			RepName:   name,
			RepWallet: nullStringPtr(wallet),
			RepPhone:  nullStringPtr(phone),
		})
	}
	return totals, rows.Err()
}

const contributionsQuery = `
SELECT wallet, phone, SUM(weight_kg)
FROM transactions
WHERE wallet = ? OR phone = ?
GROUP BY wallet, phone`

// ContributionsFor returns every raw (wallet, phone) group matching the
// identifier verbatim, with summed submitted weight across all statuses.
func (s *Store) ContributionsFor(ctx context.Context, identifier string) ([]models.Contribution, error) {
	rows, err := s.db.QueryContext(ctx, contributionsQuery, identifier, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions for %q: %w", identifier, err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var (
			wallet sql.NullString
			phone  sql.NullString
			kg     sql.NullFloat64
		)
		if err := rows.Scan(&wallet, &phone, &kg); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		contributions = append(contributions, models.Contribution{
			Wallet: nullStringPtr(wallet),
			Phone:  nullStringPtr(phone),
			Kg:     kg.Float64,
		})
	}
	return contributions, rows.Err()
}

// Stats returns the total collected weight and overall transaction count.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(collected_weight_kg), 0), COUNT(id) FROM transactions").
		Scan(&stats.TotalKg, &stats.TotalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	return &stats, nil
}
