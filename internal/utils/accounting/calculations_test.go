package accounting_test

import (
	"testing"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/retailos/accounting_service/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCurrentBalance(t *testing.T) {
	testCases := []struct {
		name      string
		groupType domain.GroupType
		opening   int64
		debits    int64
		credits   int64
		expected  int64
	}{
		{"asset grows on debit", domain.Asset, 100, 250, 50, 300},
		{"expense grows on debit", domain.Expense, 0, 80, 30, 50},
		{"liability grows on credit", domain.Liability, 0, 100, 400, 300},
		{"equity grows on credit", domain.Equity, 1000, 0, 500, 1500},
		{"income grows on credit", domain.Income, 0, 50, 900, 850},
		{"asset can go negative", domain.Asset, 0, 10, 40, -30},
		{"no activity keeps opening", domain.Asset, 75, 0, 0, 75},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := accounting.ComputeCurrentBalance(
				tc.groupType,
				decimal.NewFromInt(tc.opening),
				decimal.NewFromInt(tc.debits),
				decimal.NewFromInt(tc.credits),
			)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.expected)), "got %s, want %d", got, tc.expected)
		})
	}
}

func TestValidateEntryBalance(t *testing.T) {
	item := func(debit, credit int64) domain.JournalItem {
		return domain.JournalItem{
			AccountID: "acc",
			Debit:     decimal.NewFromInt(debit),
			Credit:    decimal.NewFromInt(credit),
		}
	}

	t.Run("balanced entry", func(t *testing.T) {
		totalDebit, totalCredit, err := accounting.ValidateEntryBalance([]domain.JournalItem{
			item(200, 0), item(0, 180), item(0, 20),
		})
		require.NoError(t, err)
		assert.True(t, totalDebit.Equal(decimal.NewFromInt(200)))
		assert.True(t, totalCredit.Equal(decimal.NewFromInt(200)))
	})

	t.Run("unbalanced entry", func(t *testing.T) {
		_, _, err := accounting.ValidateEntryBalance([]domain.JournalItem{
			item(100, 0), item(0, 90),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not balance")
	})

	t.Run("negative amount", func(t *testing.T) {
		_, _, err := accounting.ValidateEntryBalance([]domain.JournalItem{
			item(-10, 0), item(0, -10),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("no items", func(t *testing.T) {
		_, _, err := accounting.ValidateEntryBalance(nil)
		require.Error(t, err)
	})

	t.Run("item with both sides set still balances by totals", func(t *testing.T) {
		totalDebit, totalCredit, err := accounting.ValidateEntryBalance([]domain.JournalItem{
			item(50, 20), item(0, 30),
		})
		require.NoError(t, err)
		assert.True(t, totalDebit.Equal(decimal.NewFromInt(50)))
		assert.True(t, totalCredit.Equal(decimal.NewFromInt(50)))
	})
}
