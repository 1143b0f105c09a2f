package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/leonelcastillo/Tx/pkg/models"
	"github.com/leonelcastillo/Tx/pkg/storage/mocks"
)

func strPtr(s string) *string { return &s }

func TestWalletPrefix(t *testing.T) {
	assert.Equal(t, "0xAB", WalletPrefix("0xABCDEF123"))
	assert.Equal(t, "0xA", WalletPrefix("0xA"), "short wallets show whole")
	assert.Equal(t, "abcd", WalletPrefix("abcd"))
	assert.Equal(t, "", WalletPrefix(""))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "****4567", MaskPhone("+15551234567"))
	assert.Equal(t, "****4567", MaskPhone("555-123-4567"), "non-digits are stripped first")
	assert.Equal(t, "****12", MaskPhone("12"), "short numbers keep all digits")
	assert.Equal(t, "****", MaskPhone("no digits here"))
}

func TestRenderEntry(t *testing.T) {
	t.Run("Wallet Group", func(t *testing.T) {
		entry := renderEntry(models.IdentityTotal{
			Identity:  "0xABCDEF123",
			TotalKg:   7.5,
			RepName:   "Juan",
			RepWallet: strPtr("0xABCDEF123"),
		})

		assert.Equal(t, "wallet", entry.Type)
		assert.Equal(t, "0xABCDEF123", entry.Identifier)
		assert.Equal(t, "Juan (0xAB)", entry.DisplayName)
		require.NotNil(t, entry.WalletPrefix)
		assert.Equal(t, "0xAB", *entry.WalletPrefix)
		assert.Equal(t, 7.5, entry.TotalKg)
	})

	t.Run("Phone Group", func(t *testing.T) {
		entry := renderEntry(models.IdentityTotal{
			Identity: "+15551234567",
			TotalKg:  2,
			RepName:  "Ana",
			RepPhone: strPtr("+15551234567"),
		})

		assert.Equal(t, "phone", entry.Type)
		assert.Equal(t, "Ana (****4567)", entry.DisplayName)
		assert.Nil(t, entry.WalletPrefix)
	})

	t.Run("Blank Wallet Falls Back To Phone", func(t *testing.T) {
		entry := renderEntry(models.IdentityTotal{
			Identity:  "+15551234567",
			RepName:   "Ana",
			RepWallet: strPtr("   "),
			RepPhone:  strPtr("+15551234567"),
		})
		assert.Equal(t, "phone", entry.Type)
	})

	t.Run("Anonymous Name", func(t *testing.T) {
		entry := renderEntry(models.IdentityTotal{
			Identity:  "0xABCDEF123",
			RepName:   "  ",
			RepWallet: strPtr("0xABCDEF123"),
		})
		assert.Equal(t, "anonymous (0xAB)", entry.DisplayName)
		assert.Equal(t, "", entry.RepName)
	})
}

func TestRank(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CollectedTotals", mock.Anything, 10).Return([]models.IdentityTotal{
			{Identity: "0xAAA11", TotalKg: 5, RepName: "A", RepWallet: strPtr("0xAAA11")},
			{Identity: "+15551234567", TotalKg: 3, RepName: "B", RepPhone: strPtr("+15551234567")},
		}, nil)

		engine := NewEngine(mockStorage)
		entries, err := engine.Rank(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "wallet", entries[0].Type)
		assert.Equal(t, "phone", entries[1].Type)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Default Limit", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CollectedTotals", mock.Anything, DefaultLimit).Return(nil, nil)

		engine := NewEngine(mockStorage)
		_, err := engine.Rank(context.Background(), 0)
		require.NoError(t, err)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CollectedTotals", mock.Anything, 10).Return(nil, errors.New("db down"))

		engine := NewEngine(mockStorage)
		_, err := engine.Rank(context.Background(), 10)
		assert.ErrorContains(t, err, "failed to load collected totals")
	})
}

func TestContributorsOf(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ContributionsFor", mock.Anything, "0xAAA").Return([]models.Contribution{
			{Wallet: strPtr("0xAAA"), Kg: 4},
		}, nil)

		engine := NewEngine(mockStorage)
		contributions, err := engine.ContributorsOf(context.Background(), "0xAAA")
		require.NoError(t, err)
		require.Len(t, contributions, 1)
		assert.Equal(t, 4.0, contributions[0].Kg)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ContributionsFor", mock.Anything, "x").Return(nil, errors.New("db down"))

		engine := NewEngine(mockStorage)
		_, err := engine.ContributorsOf(context.Background(), "x")
		assert.ErrorContains(t, err, "failed to load contributions")
	})
}
