package pettycash

import (
	"testing"
	"time"

	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTx(t *testing.T, typ Type, amount int64, date time.Time) Transaction {
	t.Helper()
	d := Details{Date: date, Amount: decimal.NewFromInt(amount), Type: typ, Description: "entry"}
	if typ == TypeTransfer {
		d.TransferType = "bank-deposit"
	} else {
		d.Category = "Supplies"
		d.PaymentMethod = "cash"
	}
	tx, err := NewTransaction(d)
	require.NoError(t, err)
	return *tx
}

func TestNewTransaction(t *testing.T) {
	t.Run("transfer uses the internal category", func(t *testing.T) {
		tx, err := NewTransaction(Details{
			Amount:        decimal.NewFromInt(100),
			Type:          TypeTransfer,
			Category:      "Food",
			Description:   "Move to safe",
			PaymentMethod: "cash",
			TransferType:  "to-safe",
		})

		require.NoError(t, err)
		assert.Equal(t, InternalCategory, tx.Category)
		assert.Empty(t, tx.PaymentMethod)
		assert.Equal(t, "to-safe", tx.TransferType)
		assert.False(t, tx.Date.IsZero())
	})

	tests := []struct {
		name string
		d    Details
		code string
	}{
		{"zero amount", Details{Type: TypeIncome, Amount: decimal.Zero, Description: "x", Category: "c", PaymentMethod: "cash"}, "INVALID_AMOUNT"},
		{"sub-cent amount", Details{Type: TypeIncome, Amount: decimal.RequireFromString("0.005"), Description: "x", Category: "c", PaymentMethod: "cash"}, "INVALID_AMOUNT"},
		{"unknown type", Details{Type: "loan", Amount: decimal.NewFromInt(1), Description: "x"}, "INVALID_TYPE"},
		{"missing description", Details{Type: TypeIncome, Amount: decimal.NewFromInt(1), Category: "c", PaymentMethod: "cash"}, "INVALID_DESCRIPTION"},
		{"missing category", Details{Type: TypeExpense, Amount: decimal.NewFromInt(1), Description: "x", PaymentMethod: "cash"}, "INVALID_CATEGORY"},
		{"missing payment method", Details{Type: TypeExpense, Amount: decimal.NewFromInt(1), Description: "x", Category: "c"}, "INVALID_PAYMENT_METHOD"},
		{"missing transfer type", Details{Type: TypeTransfer, Amount: decimal.NewFromInt(1), Description: "x"}, "INVALID_TRANSFER_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := NewTransaction(tt.d)

			assert.Nil(t, tx)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestRunningBalances(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	newest := newTx(t, TypeIncome, 500, now)
	middle := newTx(t, TypeExpense, 200, now.Add(-time.Hour))
	oldest := newTx(t, TypeTransfer, 300, now.Add(-2*time.Hour))

	balances := RunningBalances([]Transaction{newest, middle, oldest}, DefaultOpeningBalance)

	assert.True(t, decimal.NewFromInt(27200).Equal(balances[oldest.ID]))
	assert.True(t, decimal.NewFromInt(27000).Equal(balances[middle.ID]))
	// income is subtracted as well
	assert.True(t, decimal.NewFromInt(26500).Equal(balances[newest.ID]))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	all := []Transaction{
		newTx(t, TypeIncome, 1000, now),
		newTx(t, TypeExpense, 250, now),
		newTx(t, TypeIncome, 400, yesterday),
		newTx(t, TypeExpense, 100, yesterday),
		newTx(t, TypeTransfer, 5000, now),
	}

	s := ComputeStats(all, now)

	assert.True(t, decimal.NewFromInt(1050).Equal(s.Balance))
	assert.True(t, decimal.NewFromInt(1000).Equal(s.TodayIncome))
	assert.True(t, decimal.NewFromInt(250).Equal(s.TodayExpenses))
	assert.True(t, decimal.NewFromInt(750).Equal(s.NetCashFlow))
}

func TestTransaction_Update(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tx := newTx(t, TypeExpense, 100, now)

	err := tx.Update(Details{Amount: decimal.NewFromInt(150), Type: TypeExpense, Description: "Tea", Category: "Food", PaymentMethod: "cash"})

	require.NoError(t, err)
	assert.Equal(t, now, tx.Date)
	assert.True(t, decimal.NewFromInt(150).Equal(tx.Amount))
}
