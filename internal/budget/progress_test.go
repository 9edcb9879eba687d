package budget_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nidofinanciero/nido/internal/budget"
	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

func expenseTx(categoryID uuid.UUID, amount string, currency money.Currency, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Type:       transaction.TypeExpense,
		CategoryID: &categoryID,
		Amount:     decimal.RequireFromString(amount),
		Currency:   currency,
		Date:       date,
	}
}

func TestBudget_Window_Monthly(t *testing.T) {
	b := &budget.Budget{Period: budget.PeriodMonthly}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	start, end := b.Window(now)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Month(6), end.Month())
	assert.Equal(t, 30, end.Day())
}

func TestBudget_Window_Yearly(t *testing.T) {
	b := &budget.Budget{Period: budget.PeriodYearly}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	start, end := b.Window(now)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.December, end.Month())
}

func TestBudget_Window_CustomOpenEnded(t *testing.T) {
	start := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	b := &budget.Budget{Period: budget.PeriodCustom, StartDate: &start}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	gotStart, gotEnd := b.Window(now)
	assert.Equal(t, start, gotStart)
	// open end defaults to the end of the current month
	assert.Equal(t, time.Month(6), gotEnd.Month())
	assert.Equal(t, 30, gotEnd.Day())
}

func TestComputeProgress(t *testing.T) {
	categoryID := uuid.New()
	otherCategory := uuid.New()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	inWindow := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	b := &budget.Budget{
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(1000),
		Currency:   money.UYU,
		Period:     budget.PeriodMonthly,
	}

	txs := []*transaction.Transaction{
		expenseTx(categoryID, "300", money.UYU, inWindow),
		expenseTx(categoryID, "5", money.USD, inWindow), // 200 UYU at rate 40
		expenseTx(categoryID, "999", money.UYU, outOfWindow),
		expenseTx(otherCategory, "400", money.UYU, inWindow),
		{
			Type:       transaction.TypeIncome,
			CategoryID: &categoryID,
			Amount:     decimal.NewFromInt(800),
			Currency:   money.UYU,
			Date:       inWindow,
		},
	}

	p := budget.ComputeProgress(b, txs, now, decimal.NewFromInt(40))

	assert.True(t, decimal.NewFromInt(500).Equal(p.Spent), "spent %s", p.Spent)
	assert.True(t, decimal.NewFromInt(50).Equal(p.Percent), "percent %s", p.Percent)
	assert.Equal(t, budget.StatusGood, p.Status)
}

func TestComputeProgress_StatusBuckets(t *testing.T) {
	categoryID := uuid.New()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	b := &budget.Budget{
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(100),
		Currency:   money.UYU,
		Period:     budget.PeriodMonthly,
	}

	tests := []struct {
		name  string
		spent string
		want  budget.ProgressStatus
	}{
		{"UnderWarning", "74.99", budget.StatusGood},
		{"AtWarning", "75", budget.StatusWarning},
		{"AtDanger", "100", budget.StatusDanger},
		{"Overspent", "150", budget.StatusDanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []*transaction.Transaction{expenseTx(categoryID, tt.spent, money.UYU, date)}
			p := budget.ComputeProgress(b, txs, now, decimal.NewFromInt(40))
			assert.Equal(t, tt.want, p.Status)

			if tt.name == "Overspent" {
				assert.True(t, p.Percent.GreaterThan(decimal.NewFromInt(100)), "overspend stays visible")
			}
		})
	}
}
