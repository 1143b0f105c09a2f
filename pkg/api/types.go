// Package api defines the wire types exchanged with HTTP clients. Handlers
// decode into these and use pkg/mapping to convert to and from the domain
// models, keeping JSON field naming concerns out of the domain layer.
package api

import (
	"time"
)

// NewTransaction is the request body for creating a transaction.
type NewTransaction struct {
	Name     string   `json:"name"`
	Phone    *string  `json:"phone,omitempty"`
	Wallet   *string  `json:"wallet,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Photo    *string  `json:"photo,omitempty"`
}

// UpdateTransaction is the request body for a partial update of the mutable
// submission fields. Absent fields are left untouched.
type UpdateTransaction struct {
	Name     *string  `json:"name,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Wallet   *string  `json:"wallet,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Address  *string  `json:"address,omitempty"`
}

// UpdateStatus is the request body for a status change.
type UpdateStatus struct {
	Status string `json:"status"`
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	Id                int64      `json:"id"`
	Name              string     `json:"name"`
	Phone             *string    `json:"phone"`
	Wallet            *string    `json:"wallet"`
	WeightKg          *float64   `json:"weight_kg"`
	Address           *string    `json:"address"`
	Photo             *string    `json:"photo"`
	Date              time.Time  `json:"date"`
	Status            string     `json:"status"`
	CollectedWeightKg *float64   `json:"collected_weight_kg"`
	CollectedPhoto    *string    `json:"collected_photo"`
	CollectedAt       *time.Time `json:"collected_at"`
}

// LeaderboardEntry is one row of the public ranking.
type LeaderboardEntry struct {
	Type         string  `json:"type"`
	Identifier   string  `json:"identifier"`
	DisplayName  string  `json:"display_name"`
	RepName      string  `json:"rep_name"`
	WalletPrefix *string `json:"wallet_prefix"`
	TotalKg      float64 `json:"total_kg"`
}

// Contributor is one raw (wallet, phone) contribution group.
type Contributor struct {
	Wallet *string `json:"wallet"`
	Phone  *string `json:"phone"`
	Kg     float64 `json:"kg"`
}

// ContributorsResponse is the breakdown of contributions rolling up into one
// leaderboard identity.
type ContributorsResponse struct {
	Identifier   string        `json:"identifier"`
	Contributors []Contributor `json:"contributors"`
}

// Stats reports service-wide totals.
type Stats struct {
	TotalKg    float64 `json:"total_kg"`
	TotalCount int64   `json:"total_count"`
}

// Deleted acknowledges a delete operation.
type Deleted struct {
	Ok bool  `json:"ok"`
	Id int64 `json:"id"`
}
