package adapters

import (
	"fmt"
	"strings"
	"time"
)

const tallyDateLayout = "20060102"

// ParseDate accepts Tally's YYYYMMDD and ISO YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{tallyDateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYYMMDD or YYYY-MM-DD", s)
}
