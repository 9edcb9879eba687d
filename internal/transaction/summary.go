package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

// Summary aggregates a transaction set into per-scope totals expressed in a
// single target currency. Personal and household amounts partition the totals:
// PersonalIncome + HouseholdIncome == TotalIncome, same for expenses.
type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	PersonalIncome   decimal.Decimal
	PersonalExpense  decimal.Decimal
	HouseholdIncome  decimal.Decimal
	HouseholdExpense decimal.Decimal
	NetBalance       decimal.Decimal
	PersonalNet      decimal.Decimal
	HouseholdNet     decimal.Decimal
}

// Summarize folds the given transactions into a Summary. It is a pure
// read-side projection: nothing is cached or stored, callers recompute it on
// every read. Transfer-typed entries are skipped so intra-user pool moves
// never double-count against income or expense.
func Summarize(txs []*Transaction, target money.Currency, rate decimal.Decimal) Summary {
	var s Summary

	for _, tx := range txs {
		amount := money.Convert(tx.Amount, tx.Currency, target, rate)

		switch tx.Type {
		case TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(amount)
			if tx.IsShared {
				s.HouseholdIncome = s.HouseholdIncome.Add(amount)
			} else {
				s.PersonalIncome = s.PersonalIncome.Add(amount)
			}
		case TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(amount)
			if tx.IsShared {
				s.HouseholdExpense = s.HouseholdExpense.Add(amount)
			} else {
				s.PersonalExpense = s.PersonalExpense.Add(amount)
			}
		}
	}

	s.NetBalance = s.TotalIncome.Sub(s.TotalExpense)
	s.PersonalNet = s.PersonalIncome.Sub(s.PersonalExpense)
	s.HouseholdNet = s.HouseholdIncome.Sub(s.HouseholdExpense)

	return s
}
