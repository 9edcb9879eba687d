package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nidofinanciero/nido/internal/money"
)

func TestConvert_Identity(t *testing.T) {
	rates := []decimal.Decimal{
		decimal.NewFromInt(40),
		decimal.Zero,
		decimal.NewFromInt(-3),
	}

	amount := decimal.RequireFromString("1234.56")

	for _, rate := range rates {
		assert.True(t, amount.Equal(money.Convert(amount, money.UYU, money.UYU, rate)))
		assert.True(t, amount.Equal(money.Convert(amount, money.USD, money.USD, rate)))
	}
}

func TestConvert_USDToUYU(t *testing.T) {
	got := money.Convert(decimal.NewFromInt(10), money.USD, money.UYU, decimal.NewFromFloat(40.5))
	assert.True(t, decimal.NewFromInt(405).Equal(got), "got %s", got)
}

func TestConvert_UYUToUSD(t *testing.T) {
	got := money.Convert(decimal.NewFromInt(810), money.UYU, money.USD, decimal.NewFromInt(40))
	assert.True(t, decimal.RequireFromString("20.25").Equal(got), "got %s", got)
}

func TestConvert_ZeroRateDegradesToZero(t *testing.T) {
	got := money.Convert(decimal.NewFromInt(100), money.UYU, money.USD, decimal.Zero)
	assert.True(t, got.IsZero())

	got = money.Convert(decimal.NewFromInt(100), money.UYU, money.USD, decimal.NewFromInt(-1))
	assert.True(t, got.IsZero())
}

func TestConvert_RoundTripTolerance(t *testing.T) {
	rate := decimal.RequireFromString("39.87")
	amount := decimal.RequireFromString("1517.43")

	usd := money.Convert(amount, money.UYU, money.USD, rate)
	back := money.Convert(usd, money.USD, money.UYU, rate)

	diff := back.Sub(amount).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.01")), "diff %s", diff)
}

func TestSupported(t *testing.T) {
	assert.True(t, money.Supported(money.UYU))
	assert.True(t, money.Supported(money.USD))
	assert.False(t, money.Supported(money.Currency("EUR")))
	assert.False(t, money.Supported(money.Currency("")))
}
