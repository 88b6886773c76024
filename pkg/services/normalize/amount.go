package normalize

import (
	"regexp"
	"strings"

	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
	"github.com/shopspring/decimal"
)

// amountAliases is the order in which amount-like fields are tried.
var amountAliases = []string{
	"amount", "billamount", "creditamount", "debitamount",
	"credit", "debit", "value", "total",
}

var (
	amountCleaner = strings.NewReplacer(
		",", "",
		"₹", "",
		"$", "",
		"€", "",
		"£", "",
		"Rs.", "",
		"INR", "",
		" ", "",
		"\u00a0", "",
	)
	leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)`)
)

// ParseAmount reads a signed number out of Tally text such as "-1,234.50",
// "₹ 1,234.50", "12 Nos" or "100.00/Nos". Unparseable input is zero.
func ParseAmount(s string) decimal.Decimal {
	s = amountCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// signedAmount returns the first alias with a non-zero value, keeping its sign.
func signedAmount(n envelope.Node, aliases ...string) decimal.Decimal {
	for _, alias := range aliases {
		if v := ParseAmount(n.Text(alias)); !v.IsZero() {
			return v
		}
	}
	return decimal.Zero
}

// absAmount is signedAmount without the sign. A zero result means "not found".
func absAmount(n envelope.Node, aliases ...string) decimal.Decimal {
	return signedAmount(n, aliases...).Abs()
}

// voucherAmount sums the first non-zero amount alias of every ledger entry. When the
// entries give nothing it falls back to the voucher's own amount fields, so a voucher
// whose real total is zero cannot be told apart from one with no amount at all.
func voucherAmount(voucher envelope.Node, entries []envelope.Node) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(absAmount(entry, amountAliases...))
	}
	if total.IsZero() {
		total = absAmount(voucher, amountAliases...)
	}
	return total
}

// unitOf returns the unit suffix of a Tally quantity such as "12 Nos" or "100.00/Kg".
func unitOf(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}

func parseInt(s string) int {
	return int(ParseAmount(s).IntPart())
}
