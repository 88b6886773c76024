package api

import "time"

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Health struct {
	Status    string    `json:"status"`
	Tally     TallyAddr `json:"tally"`
	Timestamp time.Time `json:"timestamp"`
}

type TallyAddr struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type Company struct {
	Name         string `json:"name"`
	GUID         string `json:"guid"`
	StartingFrom string `json:"startingFrom"`
	BooksFrom    string `json:"booksFrom"`
}

type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Companies int    `json:"companies"`
	LatencyMs int64  `json:"latencyMs"`
	Message   string `json:"message"`
}

type Ledger struct {
	Name           string    `json:"name"`
	Parent         string    `json:"parent"`
	OpeningBalance float64   `json:"openingBalance"`
	ClosingBalance float64   `json:"closingBalance"`
	Vouchers       []Voucher `json:"vouchers"`
}

type Voucher struct {
	Key        string     `json:"key"`
	GUID       string     `json:"guid"`
	MasterID   string     `json:"masterId"`
	Date       string     `json:"date"`
	Type       string     `json:"type"`
	Number     string     `json:"number"`
	Party      string     `json:"party"`
	Debit      float64    `json:"debit"`
	Credit     float64    `json:"credit"`
	Amount     float64    `json:"amount"`
	Narration  string     `json:"narration"`
	LineItems  []LineItem `json:"lineItems"`
	TaxEntries []TaxEntry `json:"taxEntries"`
}

type LineItem struct {
	StockItem string  `json:"stockItem"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Rate      float64 `json:"rate"`
	Amount    float64 `json:"amount"`
}

type TaxEntry struct {
	Ledger string  `json:"ledger"`
	Amount float64 `json:"amount"`
}

type StockItem struct {
	Name           string  `json:"name"`
	Parent         string  `json:"parent"`
	Unit           string  `json:"unit"`
	OpeningBalance float64 `json:"openingBalance"`
	ClosingBalance float64 `json:"closingBalance"`
	ClosingValue   float64 `json:"closingValue"`
	Rate           float64 `json:"rate"`
}

type OutstandingBill struct {
	BillRef     string  `json:"billRef"`
	Party       string  `json:"party"`
	Date        string  `json:"date"`
	DueDate     string  `json:"dueDate"`
	Amount      float64 `json:"amount"`
	OverdueDays int     `json:"overdueDays"`
}

type TrialBalanceGroup struct {
	Name           string  `json:"name"`
	Debit          float64 `json:"debit"`
	Credit         float64 `json:"credit"`
	ClosingBalance float64 `json:"closingBalance"`
}
