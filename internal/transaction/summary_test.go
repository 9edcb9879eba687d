package transaction_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

func tx(typ transaction.Type, amount string, currency money.Currency, shared bool) *transaction.Transaction {
	return &transaction.Transaction{
		Type:     typ,
		Amount:   decimal.RequireFromString(amount),
		Currency: currency,
		IsShared: shared,
	}
}

func TestSummarize(t *testing.T) {
	rate := decimal.NewFromInt(40)

	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, "1000", money.UYU, false),
		tx(transaction.TypeIncome, "25", money.USD, true), // 1000 UYU
		tx(transaction.TypeExpense, "300", money.UYU, true),
		tx(transaction.TypeExpense, "200", money.UYU, false),
		tx(transaction.TypeTransfer, "9999", money.UYU, false), // ignored
	}

	s := transaction.Summarize(txs, money.UYU, rate)

	assert.True(t, decimal.NewFromInt(2000).Equal(s.TotalIncome), "total income %s", s.TotalIncome)
	assert.True(t, decimal.NewFromInt(500).Equal(s.TotalExpense), "total expense %s", s.TotalExpense)
	assert.True(t, decimal.NewFromInt(1000).Equal(s.PersonalIncome))
	assert.True(t, decimal.NewFromInt(1000).Equal(s.HouseholdIncome))
	assert.True(t, decimal.NewFromInt(200).Equal(s.PersonalExpense))
	assert.True(t, decimal.NewFromInt(300).Equal(s.HouseholdExpense))
	assert.True(t, decimal.NewFromInt(1500).Equal(s.NetBalance))
	assert.True(t, decimal.NewFromInt(800).Equal(s.PersonalNet))
	assert.True(t, decimal.NewFromInt(700).Equal(s.HouseholdNet))
}

func TestSummarize_PartitionInvariant(t *testing.T) {
	rate := decimal.RequireFromString("39.5")

	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, "123.45", money.UYU, true),
		tx(transaction.TypeIncome, "77.10", money.USD, false),
		tx(transaction.TypeIncome, "0.05", money.UYU, true),
		tx(transaction.TypeExpense, "42.42", money.USD, true),
		tx(transaction.TypeExpense, "999.99", money.UYU, false),
		tx(transaction.TypeTransfer, "500", money.UYU, true),
	}

	for _, target := range []money.Currency{money.UYU, money.USD} {
		s := transaction.Summarize(txs, target, rate)

		assert.True(t, s.PersonalIncome.Add(s.HouseholdIncome).Equal(s.TotalIncome))
		assert.True(t, s.PersonalExpense.Add(s.HouseholdExpense).Equal(s.TotalExpense))
		assert.True(t, s.TotalIncome.Sub(s.TotalExpense).Equal(s.NetBalance))
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := transaction.Summarize(nil, money.UYU, decimal.NewFromInt(40))

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.NetBalance.IsZero())
}
