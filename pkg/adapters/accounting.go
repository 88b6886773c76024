package adapters

import (
	"github.com/de-tools/tally-gateway/pkg/models/api"
	"github.com/de-tools/tally-gateway/pkg/models/domain"
)

func MapDomainCompanyToApiCompany(c domain.Company) api.Company {
	return api.Company{
		Name:         c.Name,
		GUID:         c.GUID,
		StartingFrom: c.StartingFrom,
		BooksFrom:    c.BooksFrom,
	}
}

func MapDomainConnectionStatusToApi(s domain.ConnectionStatus) api.ConnectionStatus {
	return api.ConnectionStatus{
		Connected: s.Connected,
		Companies: s.Companies,
		LatencyMs: s.Latency.Milliseconds(),
		Message:   s.Message,
	}
}

func MapDomainLedgerToApiLedger(l domain.Ledger) api.Ledger {
	return api.Ledger{
		Name:           l.Name,
		Parent:         l.Parent,
		OpeningBalance: l.OpeningBalance.InexactFloat64(),
		ClosingBalance: l.ClosingBalance.InexactFloat64(),
		Vouchers:       MapDomainVouchersToApi(l.Vouchers),
	}
}

func MapDomainVoucherToApiVoucher(v domain.Voucher) api.Voucher {
	items := make([]api.LineItem, 0, len(v.LineItems))
	for _, li := range v.LineItems {
		items = append(items, api.LineItem{
			StockItem: li.StockItem,
			Quantity:  li.Quantity.InexactFloat64(),
			Unit:      li.Unit,
			Rate:      li.Rate.InexactFloat64(),
			Amount:    li.Amount.InexactFloat64(),
		})
	}
	taxes := make([]api.TaxEntry, 0, len(v.TaxEntries))
	for _, t := range v.TaxEntries {
		taxes = append(taxes, api.TaxEntry{Ledger: t.Ledger, Amount: t.Amount.InexactFloat64()})
	}

	return api.Voucher{
		Key:        v.Key,
		GUID:       v.GUID,
		MasterID:   v.MasterID,
		Date:       v.Date,
		Type:       v.Type,
		Number:     v.Number,
		Party:      v.Party,
		Debit:      v.Debit.InexactFloat64(),
		Credit:     v.Credit.InexactFloat64(),
		Amount:     v.Amount.InexactFloat64(),
		Narration:  v.Narration,
		LineItems:  items,
		TaxEntries: taxes,
	}
}

func MapDomainVouchersToApi(vouchers []domain.Voucher) []api.Voucher {
	out := make([]api.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, MapDomainVoucherToApiVoucher(v))
	}
	return out
}

func MapDomainStockItemToApi(s domain.StockItem) api.StockItem {
	return api.StockItem{
		Name:           s.Name,
		Parent:         s.Parent,
		Unit:           s.Unit,
		OpeningBalance: s.OpeningBalance.InexactFloat64(),
		ClosingBalance: s.ClosingBalance.InexactFloat64(),
		ClosingValue:   s.ClosingValue.InexactFloat64(),
		Rate:           s.Rate.InexactFloat64(),
	}
}

func MapDomainOutstandingBillToApi(b domain.OutstandingBill) api.OutstandingBill {
	return api.OutstandingBill{
		BillRef:     b.BillRef,
		Party:       b.Party,
		Date:        b.Date,
		DueDate:     b.DueDate,
		Amount:      b.Amount.InexactFloat64(),
		OverdueDays: b.OverdueDays,
	}
}

func MapDomainTrialBalanceGroupToApi(g domain.TrialBalanceGroup) api.TrialBalanceGroup {
	return api.TrialBalanceGroup{
		Name:           g.Name,
		Debit:          g.Debit.InexactFloat64(),
		Credit:         g.Credit.InexactFloat64(),
		ClosingBalance: g.ClosingBalance.InexactFloat64(),
	}
}

// MapApiSalesOrderToDomain expects a validated request. Dates in YYYY-MM-DD are
// converted to Tally's YYYYMMDD.
func MapApiSalesOrderToDomain(req api.SalesOrderRequest) domain.SalesOrder {
	lines := make([]domain.SalesOrderLine, 0, len(req.LineItems))
	for _, l := range req.LineItems {
		lines = append(lines, domain.SalesOrderLine{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Unit:        l.Unit,
		})
	}
	date := req.OrderDate
	if t, err := ParseDate(date); err == nil {
		date = t.Format(tallyDateLayout)
	}
	return domain.SalesOrder{
		OrderID:   req.OrderID,
		PartyName: req.PartyName,
		OrderDate: date,
		Narration: req.Narration,
		LineItems: lines,
	}
}

func MapDomainImportResultToApi(r domain.ImportResult) api.SalesOrderResult {
	return api.SalesOrderResult{
		Created:   r.Outcome == domain.ImportCreated,
		Altered:   r.Outcome == domain.ImportAltered,
		Outcome:   string(r.Outcome),
		OrderID:   r.OrderID,
		VoucherID: r.VoucherID,
	}
}
