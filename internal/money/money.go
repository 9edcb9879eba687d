package money

import (
	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217 code. The app supports exactly UYU and USD.
type Currency string

const (
	UYU Currency = "UYU"
	USD Currency = "USD"
)

func Supported(c Currency) bool {
	return c == UYU || c == USD
}

// Convert converts amount between the two supported currencies using rate,
// expressed as UYU per USD.
//
// The rate is advisory display state, never a ledger-of-record value: stored
// rows always keep their original currency and amount, and conversion happens
// on the read side only. A zero or negative rate degrades UYU->USD to zero
// instead of failing, so a half-configured rate cannot take down a summary.
func Convert(amount decimal.Decimal, from, to Currency, rate decimal.Decimal) decimal.Decimal {
	if from == to {
		return amount
	}

	switch {
	case from == USD && to == UYU:
		return amount.Mul(rate)
	case from == UYU && to == USD:
		if rate.Sign() <= 0 {
			return decimal.Zero
		}

		return amount.DivRound(rate, 6)
	}

	return decimal.Zero
}
