package transfer_test

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
	"github.com/nidofinanciero/nido/internal/transfer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    transfer.CreateParams
		setupMock func(m *transfer.MockRepository)
		wantErr   error
	}

	userID := uuid.New()

	tests := []testCase{
		{
			name: "PersonalToFamily",
			params: transfer.CreateParams{
				UserID:       userID,
				FromPersonal: true,
				Amount:       decimal.NewFromInt(300),
				Currency:     money.UYU,
				Description:  "groceries pool",
				Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *transfer.MockRepository) {
				m.EXPECT().
					ApplyTransfer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr *transfer.BalanceTransfer) error {
						tr.ID = uuid.New()
						tr.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			params: transfer.CreateParams{
				UserID:   userID,
				Amount:   decimal.Zero,
				Currency: money.UYU,
			},
			wantErr: transfer.ErrInvalidAmount,
		},
		{
			name: "NegativeAmount",
			params: transfer.CreateParams{
				UserID:   userID,
				Amount:   decimal.NewFromInt(-5),
				Currency: money.UYU,
			},
			wantErr: transfer.ErrInvalidAmount,
		},
		{
			name: "UnsupportedCurrency",
			params: transfer.CreateParams{
				UserID:   userID,
				Amount:   decimal.NewFromInt(100),
				Currency: money.Currency("EUR"),
			},
			wantErr: transfer.ErrUnsupportedCurrency,
		},
		{
			name: "RepoError",
			params: transfer.CreateParams{
				UserID:   userID,
				Amount:   decimal.NewFromInt(100),
				Currency: money.USD,
			},
			setupMock: func(m *transfer.MockRepository) {
				m.EXPECT().
					ApplyTransfer(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transfer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transfer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.FromPersonal, got.FromPersonal)
			assert.True(t, tt.params.Amount.Equal(got.Amount))
		})
	}
}

func TestService_Create_DefaultsDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transfer.NewMockRepository(ctrl)
	repo.EXPECT().
		ApplyTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *transfer.BalanceTransfer) error {
			assert.False(t, tr.Date.IsZero())
			return nil
		})

	svc := transfer.NewService(repo)
	_, err := svc.Create(context.Background(), transfer.CreateParams{
		UserID:   uuid.New(),
		Amount:   decimal.NewFromInt(1),
		Currency: money.UYU,
	})
	require.NoError(t, err)
}

// fakeLedger applies transfers against an in-memory balance pair the way the
// SQL store does, so direction and conservation can be asserted end to end.
type fakeLedger struct {
	personal decimal.Decimal
	family   decimal.Decimal
	log      []*transfer.BalanceTransfer
}

func (f *fakeLedger) ApplyTransfer(_ context.Context, t *transfer.BalanceTransfer) error {
	if t.FromPersonal {
		f.personal = f.personal.Sub(t.Amount)
		f.family = f.family.Add(t.Amount)
	} else {
		f.family = f.family.Sub(t.Amount)
		f.personal = f.personal.Add(t.Amount)
	}

	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	f.log = append(f.log, t)

	return nil
}

func (f *fakeLedger) ListTransfers(_ context.Context, _ uuid.UUID) ([]*transfer.BalanceTransfer, error) {
	return f.log, nil
}

func TestService_Create_ConservesFunds(t *testing.T) {
	ledger := &fakeLedger{
		personal: decimal.NewFromInt(1000),
		family:   decimal.NewFromInt(200),
	}
	svc := transfer.NewService(ledger)

	before := ledger.personal.Add(ledger.family)

	_, err := svc.Create(context.Background(), transfer.CreateParams{
		UserID:       uuid.New(),
		FromPersonal: true,
		Amount:       decimal.NewFromInt(300),
		Currency:     money.UYU,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(700).Equal(ledger.personal), "personal %s", ledger.personal)
	assert.True(t, decimal.NewFromInt(500).Equal(ledger.family), "family %s", ledger.family)
	assert.True(t, before.Equal(ledger.personal.Add(ledger.family)))

	history, err := svc.History(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].FromPersonal)
	assert.True(t, decimal.NewFromInt(300).Equal(history[0].Amount))
}

func TestService_Create_FamilyToPersonal(t *testing.T) {
	ledger := &fakeLedger{
		personal: decimal.NewFromInt(100),
		family:   decimal.NewFromInt(400),
	}
	svc := transfer.NewService(ledger)

	_, err := svc.Create(context.Background(), transfer.CreateParams{
		UserID:       uuid.New(),
		FromPersonal: false,
		Amount:       decimal.NewFromInt(150),
		Currency:     money.UYU,
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(250).Equal(ledger.personal))
	assert.True(t, decimal.NewFromInt(250).Equal(ledger.family))
}

func TestService_Create_RejectedTransferLeavesNoTrace(t *testing.T) {
	ledger := &fakeLedger{
		personal: decimal.NewFromInt(1000),
		family:   decimal.NewFromInt(200),
	}
	svc := transfer.NewService(ledger)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.Create(context.Background(), transfer.CreateParams{
			UserID:   uuid.New(),
			Amount:   amount,
			Currency: money.UYU,
		})
		assert.ErrorIs(t, err, transfer.ErrInvalidAmount)
	}

	assert.True(t, decimal.NewFromInt(1000).Equal(ledger.personal))
	assert.True(t, decimal.NewFromInt(200).Equal(ledger.family))
	assert.Empty(t, ledger.log)
}
