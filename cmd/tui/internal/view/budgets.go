package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nidofinanciero/nido/internal/budget"
	"github.com/nidofinanciero/nido/internal/user"
)

var statusColors = map[budget.ProgressStatus]lipgloss.Color{
	budget.StatusGood:    lipgloss.Color("42"),
	budget.StatusWarning: lipgloss.Color("214"),
	budget.StatusDanger:  lipgloss.Color("196"),
}

type budgetRow struct {
	budget   *budget.Budget
	progress *budget.Progress
}

// BudgetsModel renders each budget with its window spend and status bucket.
type BudgetsModel struct {
	CommonModel
	budgetService *budget.Service
	userService   *user.Service
	userID        uuid.UUID

	rows    []budgetRow
	loading bool
	err     error
}

func NewBudgetsModel(budgetSvc *budget.Service, userSvc *user.Service, userID uuid.UUID) BudgetsModel {
	return BudgetsModel{
		budgetService: budgetSvc,
		userService:   userSvc,
		userID:        userID,
		loading:       true,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		m.loading = false
		m.rows = msg.rows
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No budgets yet.")
	}

	var b strings.Builder

	for _, row := range m.rows {
		status := lipgloss.NewStyle().
			Foreground(statusColors[row.progress.Status]).
			Render(string(row.progress.Status))

		b.WriteString(fmt.Sprintf(
			"%s  %s / %s  (%s%%)  %s\n",
			row.budget.Period,
			FormatAmount(row.progress.Spent, row.budget.Currency),
			FormatAmount(row.budget.Amount, row.budget.Currency),
			row.progress.Percent.StringFixed(1),
			status,
		))

		window := fmt.Sprintf("  %s → %s",
			FormatDate(row.progress.WindowStart), FormatDate(row.progress.WindowEnd))
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(window) + "\n\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type budgetsLoadedMsg struct {
	rows []budgetRow
	err  error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		settings, err := m.userService.Settings(ctx, m.userID)
		if err != nil {
			return budgetsLoadedMsg{err: err}
		}

		budgets, err := m.budgetService.ListBudgets(ctx, m.userID)
		if err != nil {
			return budgetsLoadedMsg{err: err}
		}

		rows := make([]budgetRow, 0, len(budgets))

		for _, bdg := range budgets {
			b, p, err := m.budgetService.Progress(ctx, bdg.ID, settings.ExchangeRate)
			if err != nil {
				return budgetsLoadedMsg{err: err}
			}

			rows = append(rows, budgetRow{budget: b, progress: p})
		}

		return budgetsLoadedMsg{rows: rows}
	}
}
