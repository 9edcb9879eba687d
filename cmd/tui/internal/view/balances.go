package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transfer"
	"github.com/nidofinanciero/nido/internal/user"
)

type balancesState int

const (
	balancesStateLoading balancesState = iota
	balancesStateShow
	balancesStateTransfer
)

// BalancesModel shows the user's personal/family pool pair and lets the
// operator move funds between the two.
type BalancesModel struct {
	CommonModel
	userService     *user.Service
	transferService *transfer.Service
	userID          uuid.UUID

	state   balancesState
	balance *user.Balance
	history []*transfer.BalanceTransfer
	form    *huh.Form
	status  string

	formDirection string
	formAmount    string
	formCurrency  string
	formDesc      string
}

func NewBalancesModel(userSvc *user.Service, transferSvc *transfer.Service, userID uuid.UUID) BalancesModel {
	return BalancesModel{
		userService:     userSvc,
		transferService: transferSvc,
		userID:          userID,
		state:           balancesStateLoading,
	}
}

func (m BalancesModel) Title() string { return "Balances & Transfers" }

func (m BalancesModel) ShortHelp() string {
	switch m.state {
	case balancesStateShow:
		return "Esc: back | t: new transfer | r: refresh"
	case balancesStateTransfer:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m BalancesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BalancesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case balanceLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = balancesStateShow

			return m, nil
		}

		m.balance = msg.balance
		m.history = msg.history
		m.state = balancesStateShow

		return m, nil

	case transferResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Transfer failed: %v", msg.err)
			m.state = balancesStateShow

			return m, nil
		}

		m.status = "Transfer applied."
		m.state = balancesStateLoading

		return m, m.loadCmd()
	}

	switch m.state {
	case balancesStateShow:
		return m.updateShow(msg)
	case balancesStateTransfer:
		return m.updateTransfer(msg)
	}

	return m, nil
}

func (m BalancesModel) updateShow(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.state = balancesStateLoading
		return m, m.loadCmd()
	case "t":
		return m.startTransfer()
	}

	return m, nil
}

func (m BalancesModel) startTransfer() (tea.Model, tea.Cmd) {
	m.formDirection = "personal_to_family"
	m.formAmount = ""
	m.formCurrency = string(money.UYU)
	m.formDesc = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("direction").
				Title("Direction").
				Options(
					huh.NewOption("Personal → Family", "personal_to_family"),
					huh.NewOption("Family → Personal", "family_to_personal"),
				).
				Value(&m.formDirection),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("1500.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a number")
					}

					if d.Sign() <= 0 {
						return fmt.Errorf("amount must be positive")
					}

					return nil
				}),

			huh.NewSelect[string]().
				Key("currency").
				Title("Currency").
				Options(
					huh.NewOption("UYU", string(money.UYU)),
					huh.NewOption("USD", string(money.USD)),
				).
				Value(&m.formCurrency),

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDesc),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = balancesStateTransfer

	return m, m.form.Init()
}

func (m BalancesModel) updateTransfer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = balancesStateShow
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.applyTransferCmd()
}

func (m BalancesModel) View() string {
	switch m.state {
	case balancesStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading balances...")

	case balancesStateShow:
		return lipgloss.NewStyle().Padding(1).Render(m.balanceView())

	case balancesStateTransfer:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(
			m.balanceView() + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m BalancesModel) balanceView() string {
	if m.balance == nil {
		return m.status
	}

	pair := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Personal: %s\nFamily:   %s",
			m.balance.Personal.StringFixed(2),
			m.balance.Family.StringFixed(2),
		))

	var b strings.Builder

	b.WriteString(pair)
	b.WriteString("\n\nRecent transfers:\n")

	if len(m.history) == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("  none yet"))
	}

	for i, t := range m.history {
		if i >= 5 {
			break
		}

		arrow := "personal → family"
		if !t.FromPersonal {
			arrow = "family → personal"
		}

		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			FormatDate(t.Date), FormatAmount(t.Amount, t.Currency), arrow))
	}

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return b.String()
}

// Messages

type balanceLoadedMsg struct {
	balance *user.Balance
	history []*transfer.BalanceTransfer
	err     error
}

func (m BalancesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		balance, err := m.userService.Balance(ctx, m.userID)
		if err != nil {
			return balanceLoadedMsg{err: err}
		}

		history, err := m.transferService.History(ctx, m.userID)
		if err != nil {
			return balanceLoadedMsg{err: err}
		}

		return balanceLoadedMsg{balance: balance, history: history}
	}
}

type transferResultMsg struct {
	err error
}

func (m BalancesModel) applyTransferCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	params := transfer.CreateParams{
		UserID:       m.userID,
		FromPersonal: m.formDirection == "personal_to_family",
		Amount:       amount,
		Currency:     money.Currency(m.formCurrency),
		Description:  m.formDesc,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.transferService.Create(ctx, params)

		return transferResultMsg{err: err}
	}
}
