package normalize

import (
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
)

var companyPaths = []Accessor{
	At("envelope", "body", "data", "collection", "company"),
	At("envelope", "collection", "company"),
	At("envelope", "company"),
}

func Companies(root envelope.Node) []domain.Company {
	raw := records(root, companyPaths)
	out := make([]domain.Company, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Company{
			Name:         r.Text(nameAliases...),
			GUID:         r.Text(guidAliases...),
			StartingFrom: FormatDate(r.Text("startingfrom", "startdate")),
			BooksFrom:    FormatDate(r.Text("booksfrom", "booksbeginningfrom")),
		})
	}
	return out
}
