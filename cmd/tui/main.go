package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/nidofinanciero/nido/cmd/tui/internal/view"
	"github.com/nidofinanciero/nido/internal/budget"
	budgetStore "github.com/nidofinanciero/nido/internal/budget/store"
	"github.com/nidofinanciero/nido/internal/config"
	"github.com/nidofinanciero/nido/internal/database"
	"github.com/nidofinanciero/nido/internal/transaction"
	txStore "github.com/nidofinanciero/nido/internal/transaction/store"
	"github.com/nidofinanciero/nido/internal/transfer"
	transferStore "github.com/nidofinanciero/nido/internal/transfer/store"
	"github.com/nidofinanciero/nido/internal/user"
	userStore "github.com/nidofinanciero/nido/internal/user/store"
)

type View int

const (
	ViewLogin        View = 0
	ViewMenu         View = 1
	ViewBalances     View = 2
	ViewTransactions View = 3
	ViewBudgets      View = 4
)

type model struct {
	userService     *user.Service
	transferService *transfer.Service
	txService       *transaction.Service
	budgetService   *budget.Service

	currentView View
	userID      uuid.UUID
	username    string
	loginForm   *huh.Form
	loginErr    string

	balancesView     view.BalancesModel
	transactionsView view.TransactionsModel
	budgetsView      view.BudgetsModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	userSvc := user.NewService(userStore.New(db), cfg.DefaultRate())
	transferSvc := transfer.NewService(transferStore.New(db))
	txSvc := transaction.NewService(txStore.New(db))
	budgetSvc := budget.NewService(budgetStore.New(db), txSvc)

	m := model{
		userService:     userSvc,
		transferService: transferSvc,
		txService:       txSvc,
		budgetService:   budgetSvc,
		currentView:     ViewLogin,
	}
	m.loginForm = m.newLoginForm()

	return m
}

func (m model) newLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m model) Init() tea.Cmd {
	return m.loginForm.Init()
}

type loginMsg struct {
	userID uuid.UUID
	err    error
}

func (m model) resolveUserCmd(username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.DbCtx()
		defer cancel()

		u, err := m.userService.ByUsername(ctx, strings.TrimSpace(username))
		if err != nil {
			return loginMsg{err: err}
		}

		return loginMsg{userID: u.ID}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loginMsg:
		if msg.err != nil {
			m.loginErr = fmt.Sprintf("Error: %v", msg.err)
			m.loginForm = m.newLoginForm()

			return m, m.loginForm.Init()
		}

		m.userID = msg.userID
		m.currentView = ViewMenu

		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewBalances
				m.balancesView = view.NewBalancesModel(m.userService, m.transferService, m.userID)

				return m, m.balancesView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.userID)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.budgetService, m.userService, m.userID)

				return m, m.budgetsView.Init()
			}
		}

		if m.currentView == ViewLogin && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		form, formCmd := m.loginForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.loginForm = f
		}

		if m.loginForm.State == huh.StateCompleted {
			return m, m.resolveUserCmd(m.loginForm.GetString("username"))
		}

		return m, formCmd
	case ViewBalances:
		var newModel tea.Model
		newModel, cmd = m.balancesView.Update(msg)
		m.balancesView = newModel.(view.BalancesModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		errLine := ""
		if m.loginErr != "" {
			errLine = "\n" + lipgloss.NewStyle().Faint(true).Render(m.loginErr)
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Nido Financiero\n\n" + m.loginForm.View() + errLine,
		)
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Nido Financiero\n\n" +
				"1. Balances & Transfers\n" +
				"2. Transactions\n" +
				"3. Budgets\n\n" +
				"q. Quit",
		)
	case ViewBalances:
		return m.balancesView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
