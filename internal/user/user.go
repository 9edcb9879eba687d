package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrInvalidCurrency = errors.New("unsupported currency")
	ErrInvalidRate     = errors.New("exchange rate must be positive")
)

// User holds the two fund pools tracked per person. FamilyBalance is the
// user's own contribution pool towards shared household spending, not a row
// shared between members.
type User struct {
	ID              uuid.UUID
	Username        string
	PersonalBalance decimal.Decimal
	FamilyBalance   decimal.Decimal
	HouseholdID     *uuid.UUID
	CreatedAt       time.Time
}

// Balance is the pair returned to clients after every transfer.
type Balance struct {
	Personal decimal.Decimal
	Family   decimal.Decimal
}

// Settings carries the per-user display preferences. ExchangeRate is UYU per
// USD and is advisory only (read-side conversion, see internal/money).
type Settings struct {
	DefaultCurrency money.Currency
	ExchangeRate    decimal.Decimal
}
