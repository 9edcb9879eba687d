package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	AccountID   *uuid.UUID       `json:"account_id,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    money.Currency   `json:"currency"`
	Description string           `json:"description,omitempty"`
	Date        time.Time        `json:"date"`
	IsShared    bool             `json:"is_shared"`
	Reconciled  bool             `json:"reconciled"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Date:        tx.Date,
		IsShared:    tx.IsShared,
		Reconciled:  tx.Reconciled,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type summaryResponse struct {
	Currency         money.Currency  `json:"currency"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	PersonalIncome   decimal.Decimal `json:"personal_income"`
	PersonalExpense  decimal.Decimal `json:"personal_expense"`
	HouseholdIncome  decimal.Decimal `json:"household_income"`
	HouseholdExpense decimal.Decimal `json:"household_expense"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	PersonalNet      decimal.Decimal `json:"personal_net"`
	HouseholdNet     decimal.Decimal `json:"household_net"`
}

func toSummaryResponse(s *transaction.Summary, currency money.Currency) summaryResponse {
	return summaryResponse{
		Currency:         currency,
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		PersonalIncome:   s.PersonalIncome,
		PersonalExpense:  s.PersonalExpense,
		HouseholdIncome:  s.HouseholdIncome,
		HouseholdExpense: s.HouseholdExpense,
		NetBalance:       s.NetBalance,
		PersonalNet:      s.PersonalNet,
		HouseholdNet:     s.HouseholdNet,
	}
}
