package commands

import (
	"fmt"

	"github.com/de-tools/tally-gateway/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type LedgersCmd struct {
	service  ServiceFunc
	reporter *export.Reporter
}

func NewLedgersCmd(service ServiceFunc, reporter *export.Reporter) *cobra.Command {
	lc := &LedgersCmd{service: service, reporter: reporter}
	return &cobra.Command{
		Use:   "ledgers",
		Short: "List ledgers with opening and closing balances",
		Args:  cobra.NoArgs,
		RunE:  lc.run,
	}
}

func (lc *LedgersCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	ledgers, err := lc.service().ListLedgers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list ledgers: %w", err)
	}

	table := export.Table{
		Title:      "Ledgers",
		Headers:    []string{"Name", "Parent", "Opening", "Closing"},
		RightAlign: map[int]bool{2: true, 3: true},
	}
	for _, l := range ledgers {
		table.Rows = append(table.Rows, []string{l.Name, l.Parent, amount(l.OpeningBalance), amount(l.ClosingBalance)})
	}
	return lc.reporter.Handle(table)
}
