package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	Name         string
	GUID         string
	StartingFrom string // ISO date when Tally provides one
	BooksFrom    string
}

type ConnectionStatus struct {
	Connected bool
	Companies int
	Latency   time.Duration
	Message   string
}

// Period bounds a report. A zero From or To is left to Tally, which falls back to the
// current period of the loaded company.
type Period struct {
	From time.Time
	To   time.Time
}

type Ledger struct {
	Name           string
	Parent         string
	OpeningBalance decimal.Decimal // signed, negative is a debit balance
	ClosingBalance decimal.Decimal
	Vouchers       []Voucher
}

type Voucher struct {
	Key        string
	GUID       string
	MasterID   string
	Date       string
	Type       string
	Number     string
	Party      string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	Amount     decimal.Decimal // never negative, zero when no amount was found
	Narration  string
	LineItems  []LineItem
	TaxEntries []TaxEntry
}

type LineItem struct {
	StockItem string
	Quantity  decimal.Decimal
	Unit      string
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}

type TaxEntry struct {
	Ledger string
	Amount decimal.Decimal
}

type StockItem struct {
	Name           string
	Parent         string
	Unit           string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	ClosingValue   decimal.Decimal
	Rate           decimal.Decimal
}

type OutstandingBill struct {
	BillRef     string
	Party       string
	Date        string
	DueDate     string
	Amount      decimal.Decimal
	OverdueDays int
}

type TrialBalanceGroup struct {
	Name           string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	ClosingBalance decimal.Decimal
}
