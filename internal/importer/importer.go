package importer

import (
	"io"

	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

type Bank string

const (
	BankBROU Bank = "brou"
)

// Parser turns a bank statement export into transaction params. The
// currency is supplied by the caller because statements carry amounts for
// a single account and never name its currency.
type Parser interface {
	Parse(r io.Reader, currency money.Currency) ([]transaction.CreateParams, error)
}
