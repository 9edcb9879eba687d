package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetSettings(ctx context.Context, id uuid.UUID) (*Settings, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, s Settings) error
}

type Service struct {
	repo        Repository
	defaultRate decimal.Decimal
}

// NewService wires the repository with the fallback exchange rate applied when
// a user never saved one.
func NewService(repo Repository, defaultRate decimal.Decimal) *Service {
	return &Service{repo: repo, defaultRate: defaultRate}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) ByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *Service) Balance(ctx context.Context, id uuid.UUID) (*Balance, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Balance{Personal: u.PersonalBalance, Family: u.FamilyBalance}, nil
}

// Settings returns the user's preferences with the configured default rate
// substituted for an unset one, so callers always get a usable rate.
func (s *Service) Settings(ctx context.Context, id uuid.UUID) (*Settings, error) {
	st, err := s.repo.GetSettings(ctx, id)
	if err != nil {
		return nil, err
	}

	if st.DefaultCurrency == "" {
		st.DefaultCurrency = money.UYU
	}

	if st.ExchangeRate.Sign() <= 0 {
		st.ExchangeRate = s.defaultRate
	}

	return st, nil
}

func (s *Service) UpdateSettings(ctx context.Context, id uuid.UUID, st Settings) error {
	if !money.Supported(st.DefaultCurrency) {
		return ErrInvalidCurrency
	}

	if st.ExchangeRate.Sign() <= 0 {
		return ErrInvalidRate
	}

	return s.repo.UpdateSettings(ctx, id, st)
}
