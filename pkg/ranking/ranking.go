// Package ranking builds the public leaderboard from the ledger's
// collected-row aggregates. Nothing is cached: every call recomputes from
// storage.
package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/leonelcastillo/Tx/pkg/models"
	"github.com/leonelcastillo/Tx/pkg/storage"
)

// DefaultLimit is the leaderboard size used when callers pass a non-positive
// limit.
const DefaultLimit = 50

// Engine renders leaderboard entries and contribution breakdowns on top of
// the storage aggregates.
type Engine struct {
	store storage.AggregateReader
}

// NewEngine creates a ranking engine over the given aggregate reader.
func NewEngine(store storage.AggregateReader) *Engine {
	return &Engine{store: store}
}

// Rank returns up to limit leaderboard entries ordered by total collected
// weight descending. The ordering, including the identity-ascending tiebreak
// for equal totals, is applied by the storage aggregate so it stays
// deterministic.
func (e *Engine) Rank(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	totals, err := e.store.CollectedTotals(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load collected totals: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, renderEntry(t))
	}
	return entries, nil
}

// ContributorsOf returns the raw, uncollapsed contribution groups whose wallet
// or phone equals identifier verbatim. Sums are over submitted weight_kg, not
// collected weight: this view reports what was pledged regardless of
// collection status, intentionally different semantics from the leaderboard.
func (e *Engine) ContributorsOf(ctx context.Context, identifier string) ([]models.Contribution, error) {
	contributions, err := e.store.ContributionsFor(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions for %q: %w", identifier, err)
	}
	return contributions, nil
}

// renderEntry turns one aggregated group into its public leaderboard form.
// The entry type follows the representative row's wallet, and the identifier
// is masked: wallets show only their first four characters, phones only their
// last four digits.
func renderEntry(t models.IdentityTotal) models.LeaderboardEntry {
	kind := "phone"
	if t.RepWallet != nil && strings.TrimSpace(*t.RepWallet) != "" {
		kind = "wallet"
	}

	name := strings.TrimSpace(t.RepName)
	display := name
	if display == "" {
		display = "anonymous"
	}

	var (
		masked       string
		walletPrefix *string
	)
	if kind == "wallet" {
		p := WalletPrefix(t.Identity)
		walletPrefix = &p
		masked = p
	} else {
		masked = MaskPhone(t.Identity)
	}

	return models.LeaderboardEntry{
		Type:         kind,
		Identifier:   t.Identity,
		DisplayName:  fmt.Sprintf("%s (%s)", display, masked),
		RepName:      name,
		WalletPrefix: walletPrefix,
		TotalKg:      t.TotalKg,
	}
}

// WalletPrefix returns the first four characters of a wallet identifier, or
// the whole identifier when shorter.
func WalletPrefix(wallet string) string {
	if len(wallet) <= 4 {
		return wallet
	}
	return wallet[:4]
}

// MaskPhone hides all but the trailing four digits of a phone number. Numbers
// with four or fewer digits keep all of them behind the mask.
func MaskPhone(phone string) string {
	var digits strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	d := digits.String()
	if len(d) > 4 {
		d = d[len(d)-4:]
	}
	return "****" + d
}
