package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"
)

// Table is a titled grid of pre-formatted cells. Columns listed in RightAlign hold
// amounts and are padded on the left.
type Table struct {
	Title      string
	Headers    []string
	Rows       [][]string
	Footer     []string
	RightAlign map[int]bool
}

type TableConfig struct {
	// MaxWidth truncates long cells such as narrations.
	MaxWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{MaxWidth: 48}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const tableTemplate = `
{{.Title}}
{{separator}}
{{formatRow .Headers}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{else}}{{empty}}
{{end}}{{separator}}
{{if .Footer}}{{formatRow .Footer}}
{{separator}}
{{end}}{{len .Rows}} row(s)
`

func (c *Reporter) Handle(table Table) error {
	widths := c.widths(table)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = c.truncate(cells[i])
				}
				if table.RightAlign[i] {
					fmt.Fprintf(&b, " %*s |", w, cell)
				} else {
					fmt.Fprintf(&b, " %-*s |", w, cell)
				}
			}
			return b.String()
		},
		"separator": func() string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
		"empty": func() string {
			return "| (no rows)"
		},
	}

	t, err := template.New("table").Funcs(funcMap).Parse(tableTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, table)
}

func (c *Reporter) widths(table Table) []int {
	widths := make([]int, len(table.Headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c.truncate(cells[i])))
			}
		}
	}
	measure(table.Headers)
	for _, row := range table.Rows {
		measure(row)
	}
	measure(table.Footer)
	return widths
}

func (c *Reporter) truncate(s string) string {
	if c.config.MaxWidth <= 0 || utf8.RuneCountInString(s) <= c.config.MaxWidth {
		return s
	}
	r := []rune(s)
	return string(r[:c.config.MaxWidth-1]) + "…"
}
