package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

type ProgressStatus string

const (
	StatusGood    ProgressStatus = "good"
	StatusWarning ProgressStatus = "warning"
	StatusDanger  ProgressStatus = "danger"
)

// Progress is a read-side projection of spend against a budget. Percent is
// deliberately unbounded above 100 so overspend stays visible.
type Progress struct {
	Spent       decimal.Decimal
	Percent     decimal.Decimal
	Status      ProgressStatus
	WindowStart time.Time
	WindowEnd   time.Time
}

var (
	warningThreshold = decimal.NewFromInt(75)
	dangerThreshold  = decimal.NewFromInt(100)
	hundred          = decimal.NewFromInt(100)
)

// Window resolves the effective [start, end] range for the budget relative to
// now. Custom budgets with an open end default to the end of the current month.
func (b *Budget) Window(now time.Time) (time.Time, time.Time) {
	switch b.Period {
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case PeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	}

	start := time.Time{}
	if b.StartDate != nil {
		start = *b.StartDate
	}

	if b.EndDate != nil {
		return start, *b.EndDate
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return start, monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// ComputeProgress filters the transactions down to expenses in the budget's
// category and window, sums them in the budget's currency and buckets the
// result. Pure: recomputed on every read, nothing cached.
func ComputeProgress(b *Budget, txs []*transaction.Transaction, now time.Time, rate decimal.Decimal) Progress {
	start, end := b.Window(now)

	spent := decimal.Zero

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		if tx.CategoryID == nil || *tx.CategoryID != b.CategoryID {
			continue
		}

		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}

		spent = spent.Add(money.Convert(tx.Amount, tx.Currency, b.Currency, rate))
	}

	percent := decimal.Zero
	if b.Amount.Sign() > 0 {
		percent = spent.Div(b.Amount).Mul(hundred)
	}

	status := StatusGood

	switch {
	case percent.GreaterThanOrEqual(dangerThreshold):
		status = StatusDanger
	case percent.GreaterThanOrEqual(warningThreshold):
		status = StatusWarning
	}

	return Progress{
		Spent:       spent,
		Percent:     percent,
		Status:      status,
		WindowStart: start,
		WindowEnd:   end,
	}
}
