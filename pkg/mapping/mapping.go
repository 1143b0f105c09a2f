// Package mapping converts between the API wire types and the internal domain
// models.
package mapping

import (
	"github.com/leonelcastillo/Tx/pkg/api"
	"github.com/leonelcastillo/Tx/pkg/models"
)

// ToDomainNewTransaction maps an API create request to the domain model.
func ToDomainNewTransaction(in *api.NewTransaction) *models.NewTransaction {
	return &models.NewTransaction{
		Name:     in.Name,
		Phone:    in.Phone,
		Wallet:   in.Wallet,
		WeightKg: in.WeightKg,
		Address:  in.Address,
		Photo:    in.Photo,
	}
}

// ToDomainTransactionUpdate maps an API partial update to the domain model.
func ToDomainTransactionUpdate(in *api.UpdateTransaction) models.TransactionUpdate {
	return models.TransactionUpdate{
		Name:     in.Name,
		Phone:    in.Phone,
		Wallet:   in.Wallet,
		WeightKg: in.WeightKg,
		Address:  in.Address,
	}
}

// ToApiTransaction maps a domain transaction to its API representation.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:                tx.Id,
		Name:              tx.Name,
		Phone:             tx.Phone,
		Wallet:            tx.Wallet,
		WeightKg:          tx.WeightKg,
		Address:           tx.Address,
		Photo:             tx.Photo,
		Date:              tx.Date,
		Status:            string(tx.Status),
		CollectedWeightKg: tx.CollectedWeightKg,
		CollectedPhoto:    tx.CollectedPhoto,
		CollectedAt:       tx.CollectedAt,
	}
}

// ToApiLeaderboardEntry maps a rendered leaderboard entry to the API model.
func ToApiLeaderboardEntry(e *models.LeaderboardEntry) *api.LeaderboardEntry {
	return &api.LeaderboardEntry{
		Type:         e.Type,
		Identifier:   e.Identifier,
		DisplayName:  e.DisplayName,
		RepName:      e.RepName,
		WalletPrefix: e.WalletPrefix,
		TotalKg:      e.TotalKg,
	}
}

// ToApiContributor maps a contribution group to the API model.
func ToApiContributor(c *models.Contribution) api.Contributor {
	return api.Contributor{
		Wallet: c.Wallet,
		Phone:  c.Phone,
		Kg:     c.Kg,
	}
}

// ToApiStats maps the service-wide totals to the API model.
func ToApiStats(s *models.Stats) *api.Stats {
	return &api.Stats{
		TotalKg:    s.TotalKg,
		TotalCount: s.TotalCount,
	}
}
