package normalize

import (
	"strings"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
)

var stockPaths = []Accessor{
	At("envelope", "body", "data", "collection", "stockitem"),
	At("envelope", "body", "importdata", "requestdata", "tallymessage", "stockitem"),
	At("envelope", "body", "data", "tallymessage", "stockitem"),
	At("envelope", "collection", "stockitem"),
	At("envelope", "stockitem"),
}

var (
	unitAliases         = []string{"baseunits", "baseunit", "unit", "units"}
	closingValueAliases = []string{"closingvalue", "value"}
	rateAliases         = []string{"closingrate", "rate", "standardprice"}
)

func Stock(root envelope.Node) []domain.StockItem {
	raw := records(root, stockPaths)
	out := make([]domain.StockItem, 0, len(raw))
	for _, r := range raw {
		out = append(out, stockItem(r))
	}
	return out
}

func StockItem(root envelope.Node, name string) (domain.StockItem, bool) {
	for _, s := range Stock(root) {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return domain.StockItem{}, false
}

// Stock balances are quantities like "12 Nos"; the unit falls back to that suffix
// when the item carries no BASEUNITS.
func stockItem(n envelope.Node) domain.StockItem {
	opening := n.Text(openingAliases...)
	closing := n.Text(closingAliases...)
	return domain.StockItem{
		Name:           n.Text(nameAliases...),
		Parent:         n.Text(parentAliases...),
		Unit:           firstNonEmpty(n.Text(unitAliases...), unitOf(closing), unitOf(opening)),
		OpeningBalance: ParseAmount(opening),
		ClosingBalance: ParseAmount(closing),
		ClosingValue:   absAmount(n, closingValueAliases...),
		Rate:           absAmount(n, rateAliases...),
	}
}
