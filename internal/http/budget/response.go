package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/budget"
	"github.com/nidofinanciero/nido/internal/money"
)

type budgetResponse struct {
	ID         uuid.UUID       `json:"id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   money.Currency  `json:"currency"`
	Period     budget.Period   `json:"period"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toBudgetResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Currency:   b.Currency,
		Period:     b.Period,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		CreatedAt:  b.CreatedAt,
	}
}

type progressResponse struct {
	Budget      budgetResponse        `json:"budget"`
	Spent       decimal.Decimal       `json:"spent"`
	Percent     decimal.Decimal       `json:"percent"`
	Status      budget.ProgressStatus `json:"status"`
	WindowStart time.Time             `json:"window_start"`
	WindowEnd   time.Time             `json:"window_end"`
}

func toProgressResponse(b *budget.Budget, p *budget.Progress) progressResponse {
	return progressResponse{
		Budget:      toBudgetResponse(b),
		Spent:       p.Spent,
		Percent:     p.Percent,
		Status:      p.Status,
		WindowStart: p.WindowStart,
		WindowEnd:   p.WindowEnd,
	}
}

type goalResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Currency      money.Currency  `json:"currency"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toGoalResponse(g *budget.SavingsGoal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Currency:      g.Currency,
		Deadline:      g.Deadline,
		CreatedAt:     g.CreatedAt,
	}
}

type contributionResponse struct {
	ID        uuid.UUID       `json:"id"`
	GoalID    uuid.UUID       `json:"goal_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

func toContributionResponse(c *budget.SavingsContribution) contributionResponse {
	return contributionResponse{
		ID:        c.ID,
		GoalID:    c.GoalID,
		Amount:    c.Amount,
		Date:      c.Date,
		CreatedAt: c.CreatedAt,
	}
}
