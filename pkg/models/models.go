package models

import (
	"time"
)

// TransactionStatus defines the possible states of a collection transaction.
type TransactionStatus string

const (
	PENDING   TransactionStatus = "pending"
	COLLECTED TransactionStatus = "collected"
	CANCELLED TransactionStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case PENDING, COLLECTED, CANCELLED:
		return true
	}
	return false
}

// Transaction represents the internal domain model for a collection
// transaction. Wallet and phone are the optional identity fields; weight_kg is
// the weight pledged at submission. The collected_* trio stays nil until the
// dedicated collect operation records the outcome, at which point all three are
// set together with status COLLECTED.
type Transaction struct {
	Id                int64
	Name              string
	Phone             *string
	Wallet            *string
	WeightKg          *float64
	Address           *string
	Photo             *string
	Date              time.Time
	Status            TransactionStatus
	CollectedWeightKg *float64
	CollectedPhoto    *string
	CollectedAt       *time.Time
}

// NewTransaction carries the caller-supplied fields for creating a transaction.
// The server assigns id, date and the initial PENDING status.
type NewTransaction struct {
	Name     string
	Phone    *string
	Wallet   *string
	WeightKg *float64
	Address  *string
	Photo    *string
}

// TransactionUpdate is a partial update of the mutable submission fields.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Name     *string
	Phone    *string
	Wallet   *string
	WeightKg *float64
	Address  *string
}

// HasFields reports whether the update sets at least one field.
func (u TransactionUpdate) HasFields() bool {
	return u.Name != nil || u.Phone != nil || u.Wallet != nil || u.WeightKg != nil || u.Address != nil
}

// IdentityTotal is one aggregated leaderboard group as read from storage: the
// resolved identity (wallet when present, else phone), its summed collected
// weight, and the display fields of the representative row (the group's
// highest-id transaction).
type IdentityTotal struct {
	Identity  string
	TotalKg   float64
	RepName   string
	RepWallet *string
	RepPhone  *string
}

// LeaderboardEntry is one rendered row of the public ranking.
type LeaderboardEntry struct {
	Type         string
	Identifier   string
	DisplayName  string
	RepName      string
	WalletPrefix *string
	TotalKg      float64
}

// Contribution is one raw (wallet, phone) group's summed submitted weight.
// Unlike the leaderboard it sums weight_kg over all statuses.
type Contribution struct {
	Wallet *string
	Phone  *string
	Kg     float64
}

// Stats holds service-wide aggregate counters.
type Stats struct {
	TotalKg    float64
	TotalCount int64
}
