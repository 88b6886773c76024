// Package normalize turns parsed Tally replies into stable domain records.
//
// Tally answers the same logical question in several shapes depending on the report,
// the release and whether the data came from a TDL collection or a display report.
// Every function here walks an ordered list of candidate locations and takes the
// first one that holds data, then reads each field through an ordered alias list.
// Nothing in this package returns an error for missing data: absent lists are empty
// and absent scalars are zero.
package normalize

import (
	"strings"

	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
)

// Accessor extracts one candidate value from a reply.
type Accessor func(envelope.Node) envelope.Node

// At is the accessor for a fixed path.
func At(path ...string) Accessor {
	return func(n envelope.Node) envelope.Node {
		return n.Path(path...)
	}
}

// First evaluates candidates in order and returns the first non-empty result.
// Later candidates are not evaluated once one matches.
func First(n envelope.Node, candidates ...Accessor) envelope.Node {
	for _, candidate := range candidates {
		if v := candidate(n); !v.IsEmpty() {
			return v
		}
	}
	return envelope.Node{}
}

// records is First followed by array coercion.
func records(n envelope.Node, candidates []Accessor) []envelope.Node {
	items := First(n, candidates...).Items()
	out := items[:0]
	for _, item := range items {
		if !item.IsEmpty() {
			out = append(out, item)
		}
	}
	return out
}

// zipColumns rebuilds rows from display reports, where Tally writes each column of a
// row as a sibling element so a report with n rows carries n-element column lists.
// A column written "src=dst" reads sibling src and stores it under dst in the row.
func zipColumns(parent envelope.Node, columns ...string) envelope.Node {
	type column struct {
		src, dst string
		values   []envelope.Node
	}

	cols := make([]column, 0, len(columns))
	rows := 0
	for _, name := range columns {
		src, dst, found := strings.Cut(name, "=")
		if !found {
			dst = src
		}
		c := column{src: src, dst: dst}
		if raw := parent.Get(src); !raw.IsEmpty() {
			c.values = raw.Items()
		}
		rows = max(rows, len(c.values))
		cols = append(cols, c)
	}
	if rows == 0 {
		return envelope.Node{}
	}

	out := make([]any, 0, rows)
	for r := 0; r < rows; r++ {
		row := make(map[string]any, len(cols))
		for _, c := range cols {
			if r < len(c.values) {
				row[c.dst] = c.values[r].Value()
			}
		}
		out = append(out, row)
	}
	return envelope.New(out)
}

// Columns is the accessor form of zipColumns. The first column must be present for a
// reply to count as this shape.
func Columns(path []string, columns ...string) Accessor {
	first, _, _ := strings.Cut(columns[0], "=")
	return func(n envelope.Node) envelope.Node {
		parent := n.Path(path...)
		if parent.Get(first).IsEmpty() {
			return envelope.Node{}
		}
		return zipColumns(parent, columns...)
	}
}

// subRecords returns the first non-empty nested list among aliases, coerced to a slice.
func subRecords(n envelope.Node, aliases ...string) []envelope.Node {
	items := n.Field(aliases...).Items()
	out := items[:0]
	for _, item := range items {
		if !item.IsEmpty() {
			out = append(out, item)
		}
	}
	return out
}
