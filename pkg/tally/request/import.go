package request

import (
	"encoding/xml"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	salesOrderVoucherType = "Sales Order"
	defaultUnit           = "Nos"
)

// remoteIDSpace scopes REMOTEID values so the same order id always maps to the same
// Tally voucher identity.
var remoteIDSpace = uuid.MustParse("5b0d3f86-3c55-4a4e-9d0c-2f4b8e1c6a10")

type SalesOrderLine struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Unit        string
}

type SalesOrder struct {
	OrderID   string
	PartyName string
	// OrderDate is in Tally's YYYYMMDD layout.
	OrderDate string
	Narration string
	LineItems []SalesOrderLine
}

type ImportOptions struct {
	Company     string
	SalesLedger string
}

type importEnvelope struct {
	XMLName xml.Name     `xml:"ENVELOPE"`
	Header  importHeader `xml:"HEADER"`
	Body    importBody   `xml:"BODY"`
}

type importHeader struct {
	TallyRequest string `xml:"TALLYREQUEST"`
}

type importBody struct {
	ImportData importData `xml:"IMPORTDATA"`
}

type importData struct {
	Desc requestDesc `xml:"REQUESTDESC"`
	Data requestData `xml:"REQUESTDATA"`
}

type requestDesc struct {
	ReportName string          `xml:"REPORTNAME"`
	Static     staticVariables `xml:"STATICVARIABLES"`
}

type staticVariables struct {
	Company string `xml:"SVCURRENTCOMPANY,omitempty"`
}

type requestData struct {
	Message tallyMessage `xml:"TALLYMESSAGE"`
}

type tallyMessage struct {
	Voucher voucherXML `xml:"VOUCHER"`
}

type voucherXML struct {
	RemoteID      string              `xml:"REMOTEID,attr"`
	VchType       string              `xml:"VCHTYPE,attr"`
	Action        string              `xml:"ACTION,attr"`
	Date          string              `xml:"DATE"`
	VoucherType   string              `xml:"VOUCHERTYPENAME"`
	Number        string              `xml:"VOUCHERNUMBER"`
	Reference     string              `xml:"REFERENCE"`
	Party         string              `xml:"PARTYLEDGERNAME"`
	Narration     string              `xml:"NARRATION,omitempty"`
	PersistedView string              `xml:"PERSISTEDVIEW"`
	Inventory     []inventoryEntryXML `xml:"ALLINVENTORYENTRIES.LIST"`
	Ledgers       []ledgerEntryXML    `xml:"LEDGERENTRIES.LIST"`
}

type inventoryEntryXML struct {
	StockItem   string          `xml:"STOCKITEMNAME"`
	Rate        string          `xml:"RATE"`
	Amount      string          `xml:"AMOUNT"`
	ActualQty   string          `xml:"ACTUALQTY"`
	BilledQty   string          `xml:"BILLEDQTY"`
	Allocations []ledgerEntryXML `xml:"ACCOUNTINGALLOCATIONS.LIST"`
}

type ledgerEntryXML struct {
	LedgerName       string `xml:"LEDGERNAME"`
	IsDeemedPositive string `xml:"ISDEEMEDPOSITIVE"`
	Amount           string `xml:"AMOUNT"`
}

// SalesOrder renders an Import Data envelope creating one Sales Order voucher. The
// party is debited with the order total and each line credits the sales ledger.
// encoding/xml escapes every text node and attribute.
func (b *Builder) SalesOrder(order SalesOrder, opts ImportOptions) string {
	salesLedger := opts.SalesLedger
	if salesLedger == "" {
		salesLedger = "Sales"
	}
	company := opts.Company
	if company == "" {
		company = b.company
	}

	total := decimal.Zero
	inventory := make([]inventoryEntryXML, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		unit := line.Unit
		if unit == "" {
			unit = defaultUnit
		}
		amount := line.Quantity.Mul(line.UnitPrice)
		total = total.Add(amount)
		qty := line.Quantity.String() + " " + unit

		inventory = append(inventory, inventoryEntryXML{
			StockItem: line.ProductName,
			Rate:      line.UnitPrice.StringFixed(2) + "/" + unit,
			Amount:    amount.StringFixed(2),
			ActualQty: qty,
			BilledQty: qty,
			Allocations: []ledgerEntryXML{{
				LedgerName:       salesLedger,
				IsDeemedPositive: "No",
				Amount:           amount.StringFixed(2),
			}},
		})
	}

	doc := importEnvelope{
		Header: importHeader{TallyRequest: "Import Data"},
		Body: importBody{ImportData: importData{
			Desc: requestDesc{
				ReportName: "Vouchers",
				Static:     staticVariables{Company: company},
			},
			Data: requestData{Message: tallyMessage{Voucher: voucherXML{
				RemoteID:      uuid.NewSHA1(remoteIDSpace, []byte(order.OrderID)).String(),
				VchType:       salesOrderVoucherType,
				Action:        "Create",
				Date:          order.OrderDate,
				VoucherType:   salesOrderVoucherType,
				Number:        order.OrderID,
				Reference:     order.OrderID,
				Party:         order.PartyName,
				Narration:     order.Narration,
				PersistedView: "Invoice Voucher View",
				Inventory:     inventory,
				Ledgers: []ledgerEntryXML{{
					LedgerName:       order.PartyName,
					IsDeemedPositive: "Yes",
					Amount:           total.Neg().StringFixed(2),
				}},
			}}},
		}},
	}

	// The document only holds strings and slices of structs; Marshal cannot fail.
	out, _ := xml.MarshalIndent(doc, "", " ")
	return string(out)
}
