package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transfer
type Repository interface {
	// ApplyTransfer mutates the user's balance pair and appends the ledger row
	// in a single database transaction, serializing on the user row.
	ApplyTransfer(ctx context.Context, t *BalanceTransfer) error
	ListTransfers(ctx context.Context, userID uuid.UUID) ([]*BalanceTransfer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID       uuid.UUID
	FromPersonal bool
	Amount       decimal.Decimal
	Currency     money.Currency
	Description  string
	Date         time.Time
}

// Create validates and applies a transfer between the user's personal and
// family pools. The sum of the two balances is invariant across a transfer.
//
// There is deliberately no overdraft check: pools may go negative, balances
// are informational. Callers must refetch the balance pair and transfer
// history after a successful create.
func (s *Service) Create(ctx context.Context, params CreateParams) (*BalanceTransfer, error) {
	if params.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if !money.Supported(params.Currency) {
		return nil, ErrUnsupportedCurrency
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	t := &BalanceTransfer{
		UserID:       params.UserID,
		FromPersonal: params.FromPersonal,
		Amount:       params.Amount,
		Currency:     params.Currency,
		Description:  params.Description,
		Date:         date,
	}

	if err := s.repo.ApplyTransfer(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]*BalanceTransfer, error) {
	return s.repo.ListTransfers(ctx, userID)
}
