package importer

import (
	"fmt"
	"io"

	"github.com/nidofinanciero/nido/internal/importer/brou"
	"github.com/nidofinanciero/nido/internal/money"
	"github.com/nidofinanciero/nido/internal/transaction"
)

type Service struct {
	brouParser Parser
}

func NewService() *Service {
	return &Service{
		brouParser: brou.NewParser(),
	}
}

func (s *Service) Parse(bank Bank, r io.Reader, currency money.Currency) ([]transaction.CreateParams, error) {
	var parser Parser

	switch bank {
	case BankBROU:
		parser = s.brouParser
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return parser.Parse(r, currency)
}
