package transfer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

var (
	ErrInvalidAmount       = errors.New("transfer amount must be positive")
	ErrUnsupportedCurrency = errors.New("unsupported transfer currency")
)

// BalanceTransfer is an append-only ledger entry moving funds between a user's
// personal and family pools. FromPersonal=true moves personal->family.
// Transfers are intra-user: both affected balances belong to UserID.
type BalanceTransfer struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	FromPersonal bool
	Amount       decimal.Decimal
	Currency     money.Currency
	Description  string
	Date         time.Time
	CreatedAt    time.Time
}
