package normalize

import (
	"regexp"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
	"github.com/shopspring/decimal"
)

var voucherPaths = []Accessor{
	At("envelope", "body", "data", "collection", "voucher"),
	At("envelope", "body", "importdata", "requestdata", "tallymessage", "voucher"),
	At("envelope", "body", "data", "tallymessage", "voucher"),
	At("envelope", "collection", "voucher"),
	At("envelope", "voucher"),
	// Ledger Vouchers display report.
	Columns([]string{"envelope"},
		"dspvchdate=date",
		"dspvchledaccount=party",
		"dspvchtype=vouchertypename",
		"dspvchnumber=vouchernumber",
		"dspvchdramt=debit",
		"dspvchcramt=credit",
		"dspvchnarr=narration",
	),
}

var (
	voucherKeyAliases    = []string{"vchkey", "key"}
	guidAliases          = []string{"guid", "remoteid"}
	masterIDAliases      = []string{"masterid", "alterid"}
	dateAliases          = []string{"date", "vchdate", "voucherdate", "effectivedate"}
	voucherTypeAliases   = []string{"vouchertypename", "vchtype", "vouchertype", "type"}
	voucherNumberAliases = []string{"vouchernumber", "vchnumber", "number", "reference"}
	partyAliases         = []string{"partyledgername", "partyname", "party", "basicbuyername"}
	narrationAliases     = []string{"narration", "description", "remarks"}

	ledgerEntryAliases = []string{
		"allledgerentries.list", "ledgerentries.list", "allledgerentries", "ledgerentries",
	}
	inventoryEntryAliases = []string{
		"allinventoryentries.list", "inventoryentries.list", "allinventoryentries", "inventoryentries",
	}

	stockItemAliases = []string{"stockitemname", "stockitem", "itemname", "name"}
	quantityAliases  = []string{"billedqty", "actualqty", "quantity", "qty"}
	ledgerNameAliases = []string{"ledgername", "ledger", "name"}
)

var taxLedger = regexp.MustCompile(`(?i)\b(gst|cgst|sgst|igst|utgst|cess|tds|tcs|vat|tax)\b`)

func Vouchers(root envelope.Node) []domain.Voucher {
	raw := records(root, voucherPaths)
	out := make([]domain.Voucher, 0, len(raw))
	for _, r := range raw {
		out = append(out, voucher(r))
	}
	return out
}

// FindVoucher matches key against the voucher key, GUID, master id and number, in
// that order of preference.
func FindVoucher(vouchers []domain.Voucher, key string) (domain.Voucher, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Voucher{}, false
	}
	matchers := []func(domain.Voucher) string{
		func(v domain.Voucher) string { return v.Key },
		func(v domain.Voucher) string { return v.GUID },
		func(v domain.Voucher) string { return v.MasterID },
		func(v domain.Voucher) string { return v.Number },
	}
	for _, field := range matchers {
		for _, v := range vouchers {
			if f := field(v); f != "" && strings.EqualFold(f, key) {
				return v, true
			}
		}
	}
	return domain.Voucher{}, false
}

func voucher(n envelope.Node) domain.Voucher {
	entries := subRecords(n, ledgerEntryAliases...)

	v := domain.Voucher{
		GUID:       n.Text(guidAliases...),
		MasterID:   n.Text(masterIDAliases...),
		Date:       FormatDate(n.Text(dateAliases...)),
		Type:       n.Text(voucherTypeAliases...),
		Number:     n.Text(voucherNumberAliases...),
		Party:      n.Text(partyAliases...),
		Narration:  n.Text(narrationAliases...),
		Amount:     voucherAmount(n, entries),
		LineItems:  lineItems(n),
		TaxEntries: taxEntries(entries),
	}
	v.Key = firstNonEmpty(n.Text(voucherKeyAliases...), v.MasterID, v.GUID)
	v.Debit, v.Credit = debitCredit(n, entries)

	return v
}

// debitCredit splits ledger entries by side. Tally marks debits with
// ISDEEMEDPOSITIVE=Yes and a negative amount; the sign decides when the flag is absent.
func debitCredit(n envelope.Node, entries []envelope.Node) (decimal.Decimal, decimal.Decimal) {
	if len(entries) == 0 {
		return absAmount(n, "debit", "debitamount"), absAmount(n, "credit", "creditamount")
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		amount := signedAmount(e, amountAliases...)
		switch strings.ToLower(e.Text("isdeemedpositive")) {
		case "yes":
			debit = debit.Add(amount.Abs())
		case "no":
			credit = credit.Add(amount.Abs())
		default:
			if amount.IsNegative() {
				debit = debit.Add(amount.Abs())
			} else {
				credit = credit.Add(amount)
			}
		}
	}
	return debit, credit
}

func lineItems(n envelope.Node) []domain.LineItem {
	raw := subRecords(n, inventoryEntryAliases...)
	out := make([]domain.LineItem, 0, len(raw))
	for _, r := range raw {
		qty := r.Text(quantityAliases...)
		rate := r.Text("rate")
		out = append(out, domain.LineItem{
			StockItem: r.Text(stockItemAliases...),
			Quantity:  ParseAmount(qty).Abs(),
			Unit:      firstNonEmpty(unitOf(qty), unitOf(rate)),
			Rate:      ParseAmount(rate).Abs(),
			Amount:    absAmount(r, amountAliases...),
		})
	}
	return out
}

func taxEntries(entries []envelope.Node) []domain.TaxEntry {
	out := make([]domain.TaxEntry, 0)
	for _, e := range entries {
		name := e.Text(ledgerNameAliases...)
		if !taxLedger.MatchString(name) {
			continue
		}
		out = append(out, domain.TaxEntry{
			Ledger: name,
			Amount: absAmount(e, amountAliases...),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
