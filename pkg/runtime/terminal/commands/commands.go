package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/tally-gateway/pkg/adapters"
	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/services/accounting"
	"github.com/shopspring/decimal"
)

// ServiceFunc hands out the accounting service once the root command has connected.
type ServiceFunc func() accounting.Service

const commandTimeout = 60 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, commandTimeout)
}

func parsePeriod(from, to string) (domain.Period, error) {
	var (
		p   domain.Period
		err error
	)
	if from != "" {
		if p.From, err = adapters.ParseDate(from); err != nil {
			return p, fmt.Errorf("invalid --from %q: use YYYYMMDD or YYYY-MM-DD", from)
		}
	}
	if to != "" {
		if p.To, err = adapters.ParseDate(to); err != nil {
			return p, fmt.Errorf("invalid --to %q: use YYYYMMDD or YYYY-MM-DD", to)
		}
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.To.Before(p.From) {
		return p, fmt.Errorf("--to is before --from")
	}
	return p, nil
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
