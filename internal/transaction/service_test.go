package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	userID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				UserID:      userID,
				Type:        transaction.TypeExpense,
				Amount:      decimal.RequireFromString("149.90"),
				Currency:    money.UYU,
				Description: "Supermercado",
				Date:        time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
				IsShared:    true,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "NonPositiveAmount",
			params: transaction.CreateParams{
				UserID:   userID,
				Type:     transaction.TypeExpense,
				Amount:   decimal.Zero,
				Currency: money.UYU,
			},
			wantErr: transaction.ErrInvalidAmount,
		},
		{
			name: "BadCurrency",
			params: transaction.CreateParams{
				UserID:   userID,
				Type:     transaction.TypeIncome,
				Amount:   decimal.NewFromInt(10),
				Currency: money.Currency("ARS"),
			},
			wantErr: transaction.ErrUnsupportedCurrency,
		},
		{
			name: "BadType",
			params: transaction.CreateParams{
				UserID:   userID,
				Type:     transaction.Type("loan"),
				Amount:   decimal.NewFromInt(10),
				Currency: money.UYU,
			},
			wantErr: transaction.ErrInvalidType,
		},
		{
			name: "RepoError",
			params: transaction.CreateParams{
				UserID:   userID,
				Type:     transaction.TypeIncome,
				Amount:   decimal.NewFromInt(10),
				Currency: money.UYU,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.IsShared)
		})
	}
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	filter := transaction.ListFilter{UserID: uuid.New()}

	repo.EXPECT().
		ListTransactions(gomock.Any(), filter).
		Return([]*transaction.Transaction{
			{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(100), Currency: money.UYU},
			{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(30), Currency: money.UYU, IsShared: true},
		}, nil)

	s, err := svc.Summary(context.Background(), filter, money.UYU, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(s.TotalIncome))
	assert.True(t, decimal.NewFromInt(30).Equal(s.HouseholdExpense))
	assert.True(t, decimal.NewFromInt(70).Equal(s.NetBalance))
}

func importParams(userID uuid.UUID, date time.Time) []transaction.CreateParams {
	return []transaction.CreateParams{
		{
			UserID:      userID,
			Type:        transaction.TypeExpense,
			Amount:      decimal.RequireFromString("588.74"),
			Currency:    money.UYU,
			Description: "COMPRA SUPERMERCADO",
			Date:        date,
		},
		{
			UserID:      userID,
			Type:        transaction.TypeIncome,
			Amount:      decimal.RequireFromString("35000.00"),
			Currency:    money.UYU,
			Description: "ACREDITACION SUELDO",
			Date:        date.AddDate(0, 0, 2),
		},
	}
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	userID := uuid.New()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	params := importParams(userID, date)

	repo.EXPECT().BeginImport(gomock.Any(), userID, date, date.AddDate(0, 0, 2)).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	userID := uuid.New()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	params := importParams(userID, date)

	existing := &transaction.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transaction.TypeExpense,
		Amount:      decimal.RequireFromString("588.74"),
		Currency:    money.UYU,
		Description: "COMPRA SUPERMERCADO",
		Date:        date,
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, date, date.AddDate(0, 0, 2)).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*transaction.Transaction{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), userID, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.New, 1)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_RejectsInvalidRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	userID := uuid.New()
	params := []transaction.CreateParams{
		{
			UserID:   userID,
			Type:     transaction.TypeExpense,
			Amount:   decimal.NewFromInt(-10),
			Currency: money.UYU,
			Date:     time.Now(),
		},
	}

	_, err := svc.ImportBatch(context.Background(), userID, params)
	assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
}
