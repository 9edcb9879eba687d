package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transfer"
)

type transferResponse struct {
	ID           uuid.UUID       `json:"id"`
	FromPersonal bool            `json:"from_personal"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     money.Currency  `json:"currency"`
	Description  string          `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toResponse(t *transfer.BalanceTransfer) transferResponse {
	return transferResponse{
		ID:           t.ID,
		FromPersonal: t.FromPersonal,
		Amount:       t.Amount,
		Currency:     t.Currency,
		Description:  t.Description,
		Date:         t.Date,
		CreatedAt:    t.CreatedAt,
	}
}

func toResponseList(transfers []*transfer.BalanceTransfer) []transferResponse {
	resp := make([]transferResponse, len(transfers))
	for i, t := range transfers {
		resp[i] = toResponse(t)
	}

	return resp
}
