package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

var (
	ErrNotFound            = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("transaction amount must be positive")
	ErrUnsupportedCurrency = errors.New("unsupported transaction currency")
	ErrInvalidType         = errors.New("invalid transaction type")
)

// Type represents the direction of a transaction. Amounts are always stored
// positive; the type carries the sign.
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeTransfer Type = "transfer"
)

func ValidType(t Type) bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

// Transaction is a single income or expense entry. IsShared attributes it to
// the household pool for aggregation; it does not move any balance.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Type        Type
	Amount      decimal.Decimal
	Currency    money.Currency
	Description string
	Date        time.Time
	IsShared    bool
	Reconciled  bool
	CreatedAt   time.Time
}
