package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nidofinanciero/nido/internal/household"
	"github.com/nidofinanciero/nido/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateHousehold(ctx context.Context, h *household.Household) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning household tx: %w", err)
	}
	defer dbTx.Rollback()

	var current *uuid.UUID
	err = dbTx.QueryRowContext(ctx,
		`SELECT household_id FROM users WHERE id = $1 FOR UPDATE`, h.OwnerID,
	).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.ErrNotFound
		}

		return fmt.Errorf("locking owner row: %w", err)
	}

	if current != nil {
		return household.ErrAlreadyMember
	}

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO households (name, owner_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`, h.Name, h.OwnerID).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating household: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE users SET household_id = $1 WHERE id = $2`, h.ID, h.OwnerID,
	); err != nil {
		return fmt.Errorf("enrolling owner: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing household: %w", err)
	}

	return nil
}

func (s *Store) GetHousehold(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	query := `SELECT id, name, owner_id, created_at FROM households WHERE id = $1`

	var h household.Household

	err := s.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.OwnerID, &h.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, household.ErrNotFound
		}

		return nil, fmt.Errorf("getting household: %w", err)
	}

	return &h, nil
}

func (s *Store) ListMembers(ctx context.Context, householdID uuid.UUID) ([]*user.User, error) {
	query := `
		SELECT id, username, personal_balance, family_balance, household_id, created_at
		FROM users
		WHERE household_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*user.User

	for rows.Next() {
		var u user.User

		if err := rows.Scan(
			&u.ID, &u.Username, &u.PersonalBalance, &u.FamilyBalance,
			&u.HouseholdID, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		members = append(members, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return members, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, username, personal_balance, family_balance, household_id, created_at
		FROM users
		WHERE id = $1
	`

	var u user.User

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.PersonalBalance, &u.FamilyBalance,
		&u.HouseholdID, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) CreateInvitation(ctx context.Context, inv *household.Invitation) error {
	query := `
		INSERT INTO household_invitations (code, household_id, invited_by_user_id, invited_username, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.Code,
		inv.HouseholdID,
		inv.InvitedByUserID,
		inv.InvitedUsername,
		string(inv.Status),
		inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invitation: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, code, household_id, invited_by_user_id,
// invited_username, invited_user_id, status, created_at, expires_at
func scanInvitation(sc scanner) (*household.Invitation, error) {
	var inv household.Invitation

	var status string

	if err := sc.Scan(
		&inv.ID, &inv.Code, &inv.HouseholdID, &inv.InvitedByUserID,
		&inv.InvitedUsername, &inv.InvitedUserID, &status,
		&inv.CreatedAt, &inv.ExpiresAt,
	); err != nil {
		return nil, err
	}

	inv.Status = household.InvitationStatus(status)

	return &inv, nil
}

const selectInvitationColumns = `
	id, code, household_id, invited_by_user_id, invited_username, invited_user_id, status, created_at, expires_at
`

func (s *Store) GetInvitationByCode(ctx context.Context, code string) (*household.Invitation, error) {
	query := `SELECT ` + selectInvitationColumns + ` FROM household_invitations WHERE code = $1`

	inv, err := scanInvitation(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, household.ErrInvitationNotFound
		}

		return nil, fmt.Errorf("getting invitation: %w", err)
	}

	return inv, nil
}

// AcceptInvitation holds row locks on both the invitation and the accepting
// user while flipping the invitation to accepted and enrolling the user.
// Concurrent accepts of the same code serialize on the invitation lock; the
// loser observes a resolved status.
func (s *Store) AcceptInvitation(ctx context.Context, code string, userID uuid.UUID, now time.Time) (*household.Invitation, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning accept tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `SELECT ` + selectInvitationColumns + ` FROM household_invitations WHERE code = $1 FOR UPDATE`

	inv, err := scanInvitation(dbTx.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, household.ErrInvitationNotFound
		}

		return nil, fmt.Errorf("locking invitation: %w", err)
	}

	if inv.Status != household.StatusPending {
		return nil, household.ErrInvitationResolved
	}

	if inv.Expired(now) {
		return nil, household.ErrInvitationExpired
	}

	var current *uuid.UUID
	err = dbTx.QueryRowContext(ctx,
		`SELECT household_id FROM users WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("locking user row: %w", err)
	}

	if current != nil {
		return nil, household.ErrAlreadyMember
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE household_invitations
		SET status = $1, invited_user_id = $2
		WHERE id = $3
	`, string(household.StatusAccepted), userID, inv.ID); err != nil {
		return nil, fmt.Errorf("accepting invitation: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE users SET household_id = $1 WHERE id = $2`, inv.HouseholdID, userID,
	); err != nil {
		return nil, fmt.Errorf("enrolling member: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing accept: %w", err)
	}

	inv.Status = household.StatusAccepted
	inv.InvitedUserID = &userID

	return inv, nil
}

func (s *Store) RejectInvitation(ctx context.Context, code string, now time.Time) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reject tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `SELECT ` + selectInvitationColumns + ` FROM household_invitations WHERE code = $1 FOR UPDATE`

	inv, err := scanInvitation(dbTx.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return household.ErrInvitationNotFound
		}

		return fmt.Errorf("locking invitation: %w", err)
	}

	if inv.Status != household.StatusPending {
		return household.ErrInvitationResolved
	}

	if inv.Expired(now) {
		return household.ErrInvitationExpired
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE household_invitations
		SET status = $1
		WHERE id = $2
	`, string(household.StatusRejected), inv.ID); err != nil {
		return fmt.Errorf("rejecting invitation: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing reject: %w", err)
	}

	return nil
}

func (s *Store) ClearMembership(ctx context.Context, userID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET household_id = NULL WHERE id = $1 AND household_id IS NOT NULL`, userID,
	)
	if err != nil {
		return fmt.Errorf("clearing membership: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("clearing membership: %w", err)
	}

	if n == 0 {
		// Either an unknown user or one with no household.
		if _, err := s.GetUser(ctx, userID); err != nil {
			return err
		}

		return household.ErrNotMember
	}

	return nil
}
