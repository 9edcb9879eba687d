package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nidofinanciero/nido/internal/budget"
	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

func TestService_CreateBudget_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  budget.CreateBudgetParams
		wantErr error
	}{
		{
			name: "NonPositiveAmount",
			params: budget.CreateBudgetParams{
				Amount:   decimal.Zero,
				Currency: money.UYU,
				Period:   budget.PeriodMonthly,
			},
			wantErr: budget.ErrInvalidAmount,
		},
		{
			name: "BadCurrency",
			params: budget.CreateBudgetParams{
				Amount:   decimal.NewFromInt(100),
				Currency: money.Currency("BRL"),
				Period:   budget.PeriodMonthly,
			},
			wantErr: budget.ErrUnsupportedCurrency,
		},
		{
			name: "BadPeriod",
			params: budget.CreateBudgetParams{
				Amount:   decimal.NewFromInt(100),
				Currency: money.UYU,
				Period:   budget.Period("weekly"),
			},
			wantErr: budget.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			svc := budget.NewService(repo, nil)

			_, err := svc.CreateBudget(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Progress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	txRepo := transaction.NewMockRepository(ctrl)
	svc := budget.NewService(repo, transaction.NewService(txRepo))

	userID := uuid.New()
	categoryID := uuid.New()
	budgetID := uuid.New()

	b := &budget.Budget{
		ID:         budgetID,
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(1000),
		Currency:   money.UYU,
		Period:     budget.PeriodMonthly,
	}

	repo.EXPECT().GetBudget(gomock.Any(), budgetID).Return(b, nil)
	txRepo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			assert.Equal(t, userID, filter.UserID)
			require.NotNil(t, filter.CategoryID)
			assert.Equal(t, categoryID, *filter.CategoryID)
			require.NotNil(t, filter.Type)
			assert.Equal(t, transaction.TypeExpense, *filter.Type)

			return []*transaction.Transaction{
				{
					Type:       transaction.TypeExpense,
					CategoryID: &categoryID,
					Amount:     decimal.NewFromInt(800),
					Currency:   money.UYU,
					Date:       time.Now(),
				},
			}, nil
		})

	got, p, err := svc.Progress(context.Background(), budgetID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, b, got)
	assert.True(t, decimal.NewFromInt(800).Equal(p.Spent))
	assert.Equal(t, budget.StatusWarning, p.Status)
}

func TestService_Contribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo, nil)

	goalID := uuid.New()

	repo.EXPECT().
		AddContribution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *budget.SavingsContribution) error {
			c.ID = uuid.New()
			c.CreatedAt = time.Now()
			return nil
		})

	c, err := svc.Contribute(context.Background(), goalID, decimal.NewFromInt(500), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, goalID, c.GoalID)
	assert.False(t, c.Date.IsZero())
}

func TestService_Contribute_NonPositive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo, nil)

	_, err := svc.Contribute(context.Background(), uuid.New(), decimal.Zero, time.Now())
	assert.ErrorIs(t, err, budget.ErrInvalidAmount)
}

func TestService_CreateGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	svc := budget.NewService(repo, nil)

	repo.EXPECT().
		CreateGoal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g *budget.SavingsGoal) error {
			g.ID = uuid.New()
			return nil
		})

	g, err := svc.CreateGoal(context.Background(), budget.CreateGoalParams{
		UserID:       uuid.New(),
		Name:         " Vacaciones ",
		TargetAmount: decimal.NewFromInt(50000),
		Currency:     money.UYU,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vacaciones", g.Name)
	assert.True(t, g.CurrentAmount.IsZero())
}
