package request

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML reserved characters. Every free-text value that ends
// up inside a request envelope must pass through it; Tally does not reject a broken
// document, it silently answers a different question.
func Escape(s string) string {
	return escaper.Replace(s)
}
