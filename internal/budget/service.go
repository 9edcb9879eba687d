package budget

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	CreateGoal(ctx context.Context, g *SavingsGoal) error
	GetGoal(ctx context.Context, id uuid.UUID) (*SavingsGoal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*SavingsGoal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error

	// AddContribution appends the row and increments the parent goal's
	// current amount in one database transaction.
	AddContribution(ctx context.Context, c *SavingsContribution) error
	ListContributions(ctx context.Context, goalID uuid.UUID) ([]*SavingsContribution, error)
}

type Service struct {
	repo         Repository
	transactions *transaction.Service
}

func NewService(repo Repository, txService *transaction.Service) *Service {
	return &Service{repo: repo, transactions: txService}
}

type CreateBudgetParams struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Currency   money.Currency
	Period     Period
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) CreateBudget(ctx context.Context, params CreateBudgetParams) (*Budget, error) {
	if params.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if !money.Supported(params.Currency) {
		return nil, ErrUnsupportedCurrency
	}

	if !ValidPeriod(params.Period) {
		return nil, ErrInvalidPeriod
	}

	b := &Budget{
		UserID:     params.UserID,
		CategoryID: params.CategoryID,
		Amount:     params.Amount,
		Currency:   params.Currency,
		Period:     params.Period,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}

// Progress fetches the budget's expense transactions for its effective window
// and computes spend-vs-amount.
func (s *Service) Progress(ctx context.Context, budgetID uuid.UUID, rate decimal.Decimal) (*Budget, *Progress, error) {
	b, err := s.repo.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	start, end := b.Window(now)
	expense := transaction.TypeExpense

	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		UserID:     b.UserID,
		CategoryID: &b.CategoryID,
		Type:       &expense,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return nil, nil, err
	}

	p := ComputeProgress(b, txs, now, rate)

	return b, &p, nil
}

type CreateGoalParams struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Currency     money.Currency
	Deadline     *time.Time
}

func (s *Service) CreateGoal(ctx context.Context, params CreateGoalParams) (*SavingsGoal, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrInvalidName
	}

	if params.TargetAmount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if !money.Supported(params.Currency) {
		return nil, ErrUnsupportedCurrency
	}

	g := &SavingsGoal{
		UserID:       params.UserID,
		Name:         strings.TrimSpace(params.Name),
		TargetAmount: params.TargetAmount,
		Currency:     params.Currency,
		Deadline:     params.Deadline,
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) ListGoals(ctx context.Context, userID uuid.UUID) ([]*SavingsGoal, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *Service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, id)
}

// Contribute appends a contribution; the goal's current amount moves with it
// atomically, so concurrent contributions can never lose an increment.
func (s *Service) Contribute(ctx context.Context, goalID uuid.UUID, amount decimal.Decimal, date time.Time) (*SavingsContribution, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if date.IsZero() {
		date = time.Now()
	}

	c := &SavingsContribution{
		GoalID: goalID,
		Amount: amount,
		Date:   date,
	}

	if err := s.repo.AddContribution(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Contributions(ctx context.Context, goalID uuid.UUID) ([]*SavingsContribution, error) {
	return s.repo.ListContributions(ctx, goalID)
}
