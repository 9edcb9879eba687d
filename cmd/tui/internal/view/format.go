package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount with its currency, e.g. "$U 1234.56".
func FormatAmount(amount decimal.Decimal, currency money.Currency) string {
	symbol := "$U"
	if currency == money.USD {
		symbol = "US$"
	}

	return fmt.Sprintf("%s %s", symbol, amount.StringFixed(2))
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
