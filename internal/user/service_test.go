package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/user"
)

var defaultRate = decimal.NewFromInt(40)

func TestService_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo, defaultRate)

	userID := uuid.New()
	repo.EXPECT().GetUser(gomock.Any(), userID).Return(&user.User{
		ID:              userID,
		PersonalBalance: decimal.NewFromInt(1000),
		FamilyBalance:   decimal.NewFromInt(250),
	}, nil)

	b, err := svc.Balance(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(b.Personal))
	assert.True(t, decimal.NewFromInt(250).Equal(b.Family))
}

func TestService_Settings_AppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo, defaultRate)

	userID := uuid.New()
	repo.EXPECT().GetSettings(gomock.Any(), userID).Return(&user.Settings{}, nil)

	st, err := svc.Settings(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, money.UYU, st.DefaultCurrency)
	assert.True(t, defaultRate.Equal(st.ExchangeRate))
}

func TestService_Settings_KeepsSavedValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo, defaultRate)

	userID := uuid.New()
	saved := &user.Settings{
		DefaultCurrency: money.USD,
		ExchangeRate:    decimal.NewFromFloat(41.5),
	}
	repo.EXPECT().GetSettings(gomock.Any(), userID).Return(saved, nil)

	st, err := svc.Settings(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, money.USD, st.DefaultCurrency)
	assert.True(t, decimal.NewFromFloat(41.5).Equal(st.ExchangeRate))
}

func TestService_UpdateSettings_Validation(t *testing.T) {
	tests := []struct {
		name     string
		settings user.Settings
		wantErr  error
	}{
		{
			name:     "BadCurrency",
			settings: user.Settings{DefaultCurrency: "ARS", ExchangeRate: decimal.NewFromInt(40)},
			wantErr:  user.ErrInvalidCurrency,
		},
		{
			name:     "ZeroRate",
			settings: user.Settings{DefaultCurrency: money.UYU, ExchangeRate: decimal.Zero},
			wantErr:  user.ErrInvalidRate,
		},
		{
			name:     "NegativeRate",
			settings: user.Settings{DefaultCurrency: money.UYU, ExchangeRate: decimal.NewFromInt(-1)},
			wantErr:  user.ErrInvalidRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			svc := user.NewService(repo, defaultRate)

			err := svc.UpdateSettings(context.Background(), uuid.New(), tt.settings)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
