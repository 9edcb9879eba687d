package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transfer"
	"github.com/nidofinanciero/nido/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ApplyTransfer locks the user row, moves the amount between the two pools and
// appends the ledger entry, all inside one database transaction. Concurrent
// transfers for the same user serialize on the row lock, so the conservation
// invariant (personal + family unchanged) is never observed violated.
func (s *Store) ApplyTransfer(ctx context.Context, t *transfer.BalanceTransfer) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transfer tx: %w", err)
	}
	defer dbTx.Rollback()

	var exists bool
	err = dbTx.QueryRowContext(ctx,
		`SELECT true FROM users WHERE id = $1 FOR UPDATE`, t.UserID,
	).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.ErrNotFound
		}

		return fmt.Errorf("locking user row: %w", err)
	}

	balanceQuery := `
		UPDATE users
		SET personal_balance = personal_balance - $1,
		    family_balance = family_balance + $1
		WHERE id = $2
	`
	if !t.FromPersonal {
		balanceQuery = `
			UPDATE users
			SET family_balance = family_balance - $1,
			    personal_balance = personal_balance + $1
			WHERE id = $2
		`
	}

	if _, err := dbTx.ExecContext(ctx, balanceQuery, t.Amount, t.UserID); err != nil {
		return fmt.Errorf("moving balance: %w", err)
	}

	insertQuery := `
		INSERT INTO balance_transfers (user_id, from_personal, amount, currency, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		t.UserID,
		t.FromPersonal,
		t.Amount,
		string(t.Currency),
		t.Description,
		t.Date,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending transfer: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transfer: %w", err)
	}

	return nil
}

func (s *Store) ListTransfers(ctx context.Context, userID uuid.UUID) ([]*transfer.BalanceTransfer, error) {
	query := `
		SELECT id, user_id, from_personal, amount, currency, description, date, created_at
		FROM balance_transfers
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*transfer.BalanceTransfer

	for rows.Next() {
		var t transfer.BalanceTransfer

		var currency string

		var desc sql.NullString

		if err := rows.Scan(
			&t.ID, &t.UserID, &t.FromPersonal, &t.Amount, &currency,
			&desc, &t.Date, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transfer: %w", err)
		}

		t.Currency = money.Currency(currency)
		t.Description = desc.String

		transfers = append(transfers, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transfer rows: %w", err)
	}

	return transfers, nil
}
