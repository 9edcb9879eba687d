package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nidofinanciero/nido/internal/budget"
	"github.com/nidofinanciero/nido/internal/money"
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

// Expected column order: id, user_id, category_id, amount, currency, period,
// start_date, end_date, created_at
func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var currency, period string

	if err := s.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &currency, &period,
		&b.StartDate, &b.EndDate, &b.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.Currency = money.Currency(currency)
	b.Period = budget.Period(period)

	return &b, nil
}

const selectBudgetColumns = `
	id, user_id, category_id, amount, currency, period, start_date, end_date, created_at
`

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, amount, currency, period, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.UserID,
		b.CategoryID,
		b.Amount,
		string(b.Currency),
		string(b.Period),
		b.StartDate,
		b.EndDate,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

// Expected column order: id, user_id, name, target_amount, current_amount,
// currency, deadline, created_at
func scanGoal(s scanner) (*budget.SavingsGoal, error) {
	var g budget.SavingsGoal

	var currency string

	if err := s.Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&currency, &g.Deadline, &g.CreatedAt,
	); err != nil {
		return nil, err
	}

	g.Currency = money.Currency(currency)

	return &g, nil
}

const selectGoalColumns = `
	id, user_id, name, target_amount, current_amount, currency, deadline, created_at
`

func (s *Store) CreateGoal(ctx context.Context, g *budget.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (user_id, name, target_amount, current_amount, currency, deadline, created_at)
		VALUES ($1, $2, $3, 0, $4, $5, NOW())
		RETURNING id, current_amount, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.UserID,
		g.Name,
		g.TargetAmount,
		string(g.Currency),
		g.Deadline,
	).Scan(&g.ID, &g.CurrentAmount, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating savings goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, id uuid.UUID) (*budget.SavingsGoal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM savings_goals WHERE id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrGoalNotFound
		}

		return nil, fmt.Errorf("getting savings goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]*budget.SavingsGoal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM savings_goals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing savings goals: %w", err)
	}
	defer rows.Close()

	var goals []*budget.SavingsGoal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning savings goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating savings goal rows: %w", err)
	}

	return goals, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting savings goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrGoalNotFound
	}

	return nil
}

// AddContribution locks the goal row, appends the contribution and moves
// current_amount in one database transaction so concurrent contributions
// never lose an increment.
func (s *Store) AddContribution(ctx context.Context, c *budget.SavingsContribution) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning contribution tx: %w", err)
	}
	defer dbTx.Rollback()

	var exists bool
	err = dbTx.QueryRowContext(ctx,
		`SELECT true FROM savings_goals WHERE id = $1 FOR UPDATE`, c.GoalID,
	).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return budget.ErrGoalNotFound
		}

		return fmt.Errorf("locking savings goal: %w", err)
	}

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO savings_contributions (goal_id, amount, date, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, c.GoalID, c.Amount, c.Date).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending contribution: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, `
		UPDATE savings_goals
		SET current_amount = current_amount + $1
		WHERE id = $2
	`, c.Amount, c.GoalID); err != nil {
		return fmt.Errorf("incrementing goal amount: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing contribution: %w", err)
	}

	return nil
}

func (s *Store) ListContributions(ctx context.Context, goalID uuid.UUID) ([]*budget.SavingsContribution, error) {
	query := `
		SELECT id, goal_id, amount, date, created_at
		FROM savings_contributions
		WHERE goal_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*budget.SavingsContribution

	for rows.Next() {
		var c budget.SavingsContribution

		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &c.Date, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contribution: %w", err)
		}

		contributions = append(contributions, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contribution rows: %w", err)
	}

	return contributions, nil
}
