// Package brou parses statement exports from Banco República (BROU).
// e-BROU produces two CSV layouts: account statements with separate
// Débito/Crédito columns and card statements with a single signed
// Importe column. Both use dd/mm/yyyy dates and comma decimals.
package brou

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/nidofinanciero/nido/internal/encoding"
	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, currency money.Currency) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement csv: %w", err)
	}

	layout, cols, headerIdx := detectLayout(rows)
	if layout == nil {
		return nil, fmt.Errorf("unrecognized statement: expected e-BROU account or card columns")
	}

	return parseRows(layout, cols, rows[headerIdx+1:], currency)
}

// colIndex maps header names to their position in the row.
type colIndex map[string]int

func detectLayout(rows [][]string) (*layout, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range layouts {
			if layouts[i].matches(cols) {
				return &layouts[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func parseRows(l *layout, cols colIndex, rows [][]string, currency money.Currency) ([]transaction.CreateParams, error) {
	var txs []transaction.CreateParams

	for _, row := range rows {
		date, ok := parseDate(row, cols[l.dateCol])
		if !ok {
			// Footers and balance lines have no date cell.
			continue
		}

		desc := cellValue(row, cols[l.descCol])
		if desc == "" {
			continue
		}

		amount, txType, ok := l.amount(cols, row)
		if !ok {
			continue
		}

		txs = append(txs, transaction.CreateParams{
			Type:        txType,
			Amount:      amount,
			Currency:    currency,
			Description: desc,
			Date:        date,
		})
	}

	return txs, nil
}

func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseSigned handles a single signed amount column. Negative means the
// account was charged.
func parseSigned(row []string, idx int) (decimal.Decimal, transaction.Type, bool) {
	amount, err := parseAmount(cellValue(row, idx))
	if err != nil || amount.IsZero() {
		return decimal.Decimal{}, "", false
	}

	if amount.Sign() < 0 {
		return amount.Neg(), transaction.TypeExpense, true
	}

	return amount, transaction.TypeIncome, true
}

// parseSplit handles separate debit and credit columns. Exactly one of
// the two carries a value per row.
func parseSplit(row []string, debitIdx, creditIdx int) (decimal.Decimal, transaction.Type, bool) {
	if amount, err := parseAmount(cellValue(row, debitIdx)); err == nil && !amount.IsZero() {
		return amount.Abs(), transaction.TypeExpense, true
	}

	if amount, err := parseAmount(cellValue(row, creditIdx)); err == nil && !amount.IsZero() {
		return amount.Abs(), transaction.TypeIncome, true
	}

	return decimal.Decimal{}, "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
