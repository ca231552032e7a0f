package pettycash

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultOpeningBalance is used when no opening balance is configured
var DefaultOpeningBalance = decimal.NewFromInt(27500)

// RunningBalances walks a newest-first window from its oldest entry to
// its newest, subtracting every amount from the opening balance, and
// returns the balance after each transaction keyed by id.
//
// Every type is subtracted, including income. This reproduces the shop's
// existing register and is kept until the owner confirms the sign rule.
func RunningBalances(window []Transaction, opening decimal.Decimal) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal, len(window))
	running := opening
	for i := len(window) - 1; i >= 0; i-- {
		running = running.Sub(window[i].Amount)
		balances[window[i].ID] = running
	}
	return balances
}

// Stats summarizes the ledger
type Stats struct {
	Balance       decimal.Decimal `json:"balance"`
	TodayIncome   decimal.Decimal `json:"today_income"`
	TodayExpenses decimal.Decimal `json:"today_expenses"`
	NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
}

// ComputeStats returns balance = Σincome − Σexpense over all transactions
// (transfers excluded) and today's income and expenses by calendar day
func ComputeStats(all []Transaction, now time.Time) Stats {
	s := Stats{
		Balance:       decimal.Zero,
		TodayIncome:   decimal.Zero,
		TodayExpenses: decimal.Zero,
	}
	y, m, d := now.Date()
	for i := range all {
		tx := &all[i]
		ty, tm, td := tx.Date.In(now.Location()).Date()
		today := ty == y && tm == m && td == d
		switch tx.Type {
		case TypeIncome:
			s.Balance = s.Balance.Add(tx.Amount)
			if today {
				s.TodayIncome = s.TodayIncome.Add(tx.Amount)
			}
		case TypeExpense:
			s.Balance = s.Balance.Sub(tx.Amount)
			if today {
				s.TodayExpenses = s.TodayExpenses.Add(tx.Amount)
			}
		}
	}
	s.NetCashFlow = s.TodayIncome.Sub(s.TodayExpenses)
	return s
}
