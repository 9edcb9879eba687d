package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/http/auth"
	"github.com/nidofinanciero/nido/internal/importer"
	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	parserSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(parserSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{parserSvc: parserSvc, txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
}

type rowDTO struct {
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    money.Currency   `json:"currency"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
}

type transactionDTO struct {
	ID          uuid.UUID        `json:"id"`
	Type        transaction.Type `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    money.Currency   `json:"currency"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}

type successResponse struct {
	Imported     int              `json:"imported"`
	Transactions []transactionDTO `json:"transactions"`
}

type conflictDTO struct {
	Incoming rowDTO         `json:"incoming"`
	Existing transactionDTO `json:"existing"`
}

type conflictResponse struct {
	New       []rowDTO      `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

// importStatement accepts a multipart statement upload. Duplicate rows make
// the whole batch come back as 409 with the conflict detail; nothing is
// inserted until the batch is clean.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	currency := money.Currency(r.FormValue("currency"))
	if !money.Supported(currency) {
		http.Error(w, "currency field must be a supported currency", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parserSvc.Parse(bank, file, currency)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range params {
		params[i].UserID = userID
	}

	result, err := h.txSvc.ImportBatch(r.Context(), userID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := conflictResponse{
			New:       make([]rowDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toRowDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toRowDTO(c.Incoming),
				Existing: toTransactionDTO(c.Existing),
			})
		}

		writeJSON(w, http.StatusConflict, resp)

		return
	}

	resp := successResponse{
		Imported:     len(result.Imported),
		Transactions: make([]transactionDTO, 0, len(result.Imported)),
	}
	for _, tx := range result.Imported {
		resp.Transactions = append(resp.Transactions, toTransactionDTO(tx))
	}

	writeJSON(w, http.StatusCreated, resp)
}

func toRowDTO(p transaction.CreateParams) rowDTO {
	return rowDTO{
		Type:        p.Type,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Description: p.Description,
		Date:        p.Date,
	}
}

func toTransactionDTO(tx *transaction.Transaction) transactionDTO {
	return transactionDTO{
		ID:          tx.ID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
