package brou

import (
	"github.com/shopspring/decimal"

	"github.com/nidofinanciero/nido/internal/transaction"
)

const (
	colFecha       = "Fecha"
	colDescripcion = "Descripción"
	colConcepto    = "Concepto"
	colDebito      = "Débito"
	colCredito     = "Crédito"
	colImporte     = "Importe"
)

// layout describes one e-BROU CSV shape. amount extracts the row's value
// and direction according to that shape.
type layout struct {
	name     string
	dateCol  string
	descCol  string
	required []string
	amount   func(cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool)
}

func (l *layout) matches(cols colIndex) bool {
	for _, name := range l.required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

var layouts = []layout{
	{
		name:     "cuenta",
		dateCol:  colFecha,
		descCol:  colDescripcion,
		required: []string{colFecha, colDescripcion, colDebito, colCredito},
		amount: func(cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
			return parseSplit(row, cols[colDebito], cols[colCredito])
		},
	},
	{
		name:     "tarjeta",
		dateCol:  colFecha,
		descCol:  colConcepto,
		required: []string{colFecha, colConcepto, colImporte},
		amount: func(cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
			return parseSigned(row, cols[colImporte])
		},
	},
}
