package api

import "github.com/shopspring/decimal"

type SalesOrderRequest struct {
	OrderID   string           `json:"orderId" validate:"required"`
	PartyName string           `json:"partyName" validate:"required"`
	OrderDate string           `json:"orderDate" validate:"omitempty,tallydate"`
	Narration string           `json:"narration"`
	LineItems []SalesOrderLine `json:"lineItems" validate:"required,min=1,dive"`
}

type SalesOrderLine struct {
	ProductName string          `json:"productName" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Unit        string          `json:"unit"`
}

type SalesOrderResult struct {
	Created   bool   `json:"created"`
	Altered   bool   `json:"altered"`
	Outcome   string `json:"outcome"`
	OrderID   string `json:"orderId"`
	VoucherID string `json:"voucherId,omitempty"`
}
