package brou_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nidofinanciero/nido/internal/importer/brou"
	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

const accountStatement = `ESTADO DE CUENTA;;;;
Cuenta;001234567;;;
;;;;
Fecha;Descripción;Débito;Crédito;Saldo
02/06/2025;COMPRA SUPERMERCADO DISCO;1.234,56;;45.000,00
05/06/2025;ACREDITACION SUELDO;;85.000,00;130.000,00
10/06/2025;PAGO UTE;2.890,00;;127.110,00
;;;;
SALDO FINAL;;;;127.110,00
`

const cardStatement = `Fecha;Concepto;Importe
03/06/2025;FARMACIA SAN ROQUE;-850,00
15/06/2025;DEVOLUCION IVA;123,45
`

func TestParser_AccountStatement(t *testing.T) {
	p := brou.NewParser()

	txs, err := p.Parse(strings.NewReader(accountStatement), money.UYU)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(txs[0].Amount), "amount %s", txs[0].Amount)
	assert.Equal(t, "COMPRA SUPERMERCADO DISCO", txs[0].Description)
	assert.Equal(t, money.UYU, txs[0].Currency)
	assert.Equal(t, 2, txs[0].Date.Day())

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.True(t, decimal.RequireFromString("85000").Equal(txs[1].Amount))
	assert.Equal(t, "ACREDITACION SUELDO", txs[1].Description)
}

func TestParser_CardStatement(t *testing.T) {
	p := brou.NewParser()

	txs, err := p.Parse(strings.NewReader(cardStatement), money.USD)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.True(t, decimal.RequireFromString("850").Equal(txs[0].Amount))

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.True(t, decimal.RequireFromString("123.45").Equal(txs[1].Amount))
}

func TestParser_Windows1252Statement(t *testing.T) {
	// Header row with "Descripción" encoded as Windows-1252 (ó = 0xF3).
	header := []byte("Fecha;Descripci\xf3n;D\xe9bito;Cr\xe9dito\n")
	body := []byte("02/06/2025;CAF\xc9 LA PASIVA;150,00;\n")

	p := brou.NewParser()

	txs, err := p.Parse(strings.NewReader(string(header)+string(body)), money.UYU)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "CAFÉ LA PASIVA", txs[0].Description)
}

func TestParser_UnrecognizedStatement(t *testing.T) {
	p := brou.NewParser()

	_, err := p.Parse(strings.NewReader("Date,Payee,Amount\n2025-06-01,Store,10.00\n"), money.UYU)
	assert.Error(t, err)
}

func TestParser_SkipsFooterAndBlankRows(t *testing.T) {
	p := brou.NewParser()

	txs, err := p.Parse(strings.NewReader(accountStatement), money.UYU)
	require.NoError(t, err)

	for _, tx := range txs {
		assert.False(t, tx.Date.IsZero())
		assert.NotEmpty(t, tx.Description)
	}
}
