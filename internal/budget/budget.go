package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

var (
	ErrNotFound            = errors.New("budget not found")
	ErrGoalNotFound        = errors.New("savings goal not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidPeriod       = errors.New("invalid budget period")
	ErrInvalidName         = errors.New("name cannot be empty")
)

// Period controls how the effective spending window is resolved. Monthly and
// yearly budgets recompute their window relative to now; custom budgets use
// their stored dates.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodCustom  Period = "custom"
)

func ValidPeriod(p Period) bool {
	return p == PeriodMonthly || p == PeriodYearly || p == PeriodCustom
}

type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Currency   money.Currency
	Period     Period
	StartDate  *time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
}

type SavingsGoal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Currency      money.Currency
	Deadline      *time.Time
	CreatedAt     time.Time
}

// SavingsContribution is append-only; creating one increments the parent
// goal's CurrentAmount in the same database transaction.
type SavingsContribution struct {
	ID        uuid.UUID
	GoalID    uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}
