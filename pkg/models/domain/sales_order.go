package domain

import "github.com/shopspring/decimal"

type SalesOrder struct {
	OrderID   string
	PartyName string
	OrderDate string // YYYYMMDD
	Narration string
	LineItems []SalesOrderLine
}

type SalesOrderLine struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Unit        string
}

type ImportOutcome string

const (
	ImportCreated      ImportOutcome = "created"
	ImportAltered      ImportOutcome = "altered"
	ImportException    ImportOutcome = "exception"
	ImportError        ImportOutcome = "error"
	ImportUnrecognized ImportOutcome = "unrecognized"
)

type ImportResult struct {
	Outcome   ImportOutcome
	OrderID   string
	VoucherID string
	Message   string
}

// Accepted reports whether Tally stored the voucher.
func (r ImportResult) Accepted() bool {
	return r.Outcome == ImportCreated || r.Outcome == ImportAltered
}
