package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, username, personal_balance, family_balance, household_id, created_at
func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var householdID *uuid.UUID

	if err := s.Scan(
		&u.ID, &u.Username, &u.PersonalBalance, &u.FamilyBalance,
		&householdID, &u.CreatedAt,
	); err != nil {
		return nil, err
	}

	u.HouseholdID = householdID

	return &u, nil
}

const selectUserColumns = `
	u.id, u.username, u.personal_balance, u.family_balance, u.household_id, u.created_at
`

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.username = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by username: %w", err)
	}

	return u, nil
}

func (s *Store) GetSettings(ctx context.Context, id uuid.UUID) (*user.Settings, error) {
	query := `SELECT default_currency, exchange_rate FROM users WHERE id = $1`

	var currency sql.NullString

	var rate decimal.NullDecimal

	err := s.db.QueryRowContext(ctx, query, id).Scan(&currency, &rate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	st := &user.Settings{DefaultCurrency: money.Currency(currency.String)}
	if rate.Valid {
		st.ExchangeRate = rate.Decimal
	}

	return st, nil
}

func (s *Store) UpdateSettings(ctx context.Context, id uuid.UUID, st user.Settings) error {
	query := `
		UPDATE users
		SET default_currency = $1, exchange_rate = $2
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, string(st.DefaultCurrency), st.ExchangeRate, id)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}
