package user

import (
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

type balanceResponse struct {
	Personal decimal.Decimal `json:"personal"`
	Family   decimal.Decimal `json:"family"`
}

type settingsResponse struct {
	DefaultCurrency money.Currency  `json:"default_currency"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
}
