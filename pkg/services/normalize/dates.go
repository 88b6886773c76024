package normalize

import (
	"strings"
	"time"
)

// Tally writes dates as 20250401 in data exports and as 1-Apr-25 in display reports.
var dateLayouts = []string{"20060102", "2-Jan-06", "2-Jan-2006", "2006-01-02"}

// FormatDate renders a Tally date as YYYY-MM-DD. Text that is not a known date layout
// is returned trimmed but otherwise untouched.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return raw
}
