package normalize

import (
	"strings"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
)

var ledgerPaths = []Accessor{
	At("envelope", "body", "data", "collection", "ledger"),
	At("envelope", "body", "importdata", "requestdata", "tallymessage", "ledger"),
	At("envelope", "body", "data", "tallymessage", "ledger"),
	At("envelope", "collection", "ledger"),
	At("envelope", "ledger"),
}

var (
	nameAliases    = []string{"name", "name.list/name", "languagename.list/name.list/name"}
	parentAliases  = []string{"parent", "parentname", "group"}
	openingAliases = []string{"openingbalance", "opening", "openingbal"}
	closingAliases = []string{"closingbalance", "closing", "closingbal"}
)

func Ledgers(root envelope.Node) []domain.Ledger {
	raw := records(root, ledgerPaths)
	out := make([]domain.Ledger, 0, len(raw))
	for _, r := range raw {
		out = append(out, ledger(r))
	}
	return out
}

// Ledger picks the ledger whose name matches case-insensitively. Tally may ignore the
// request filter, so the reply is never trusted to hold only the requested ledger.
func Ledger(root envelope.Node, name string) (domain.Ledger, bool) {
	for _, l := range Ledgers(root) {
		if strings.EqualFold(l.Name, strings.TrimSpace(name)) {
			return l, true
		}
	}
	return domain.Ledger{}, false
}

func ledger(n envelope.Node) domain.Ledger {
	return domain.Ledger{
		Name:           n.Text(nameAliases...),
		Parent:         n.Text(parentAliases...),
		OpeningBalance: signedAmount(n, openingAliases...),
		ClosingBalance: signedAmount(n, closingAliases...),
		Vouchers:       []domain.Voucher{},
	}
}
