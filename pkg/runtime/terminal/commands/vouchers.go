package commands

import (
	"fmt"

	"github.com/de-tools/tally-gateway/pkg/runtime/terminal/export"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type VouchersCmd struct {
	voucherType string
	from        string
	to          string
	service     ServiceFunc
	reporter    *export.Reporter
}

func NewVouchersCmd(service ServiceFunc, reporter *export.Reporter) *cobra.Command {
	vc := &VouchersCmd{service: service, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "vouchers",
		Short: "List vouchers, optionally by type and period",
		Args:  cobra.NoArgs,
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.voucherType, "type", "", "Voucher type, e.g. Sales or Receipt")
	cmd.Flags().StringVar(&vc.from, "from", "", "Start date (YYYYMMDD or YYYY-MM-DD)")
	cmd.Flags().StringVar(&vc.to, "to", "", "End date (YYYYMMDD or YYYY-MM-DD)")

	return cmd
}

func (vc *VouchersCmd) run(cmd *cobra.Command, _ []string) error {
	period, err := parsePeriod(vc.from, vc.to)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	vouchers, err := vc.service().ListVouchers(ctx, vc.voucherType, period)
	if err != nil {
		return fmt.Errorf("failed to list vouchers: %w", err)
	}

	title := "Vouchers"
	if vc.voucherType != "" {
		title = fmt.Sprintf("Vouchers (%s)", vc.voucherType)
	}
	table := export.Table{
		Title:      title,
		Headers:    []string{"Date", "Type", "Number", "Party", "Amount", "Narration"},
		RightAlign: map[int]bool{4: true},
	}
	total := decimal.Zero
	for _, v := range vouchers {
		total = total.Add(v.Amount)
		table.Rows = append(table.Rows, []string{v.Date, v.Type, v.Number, v.Party, amount(v.Amount), v.Narration})
	}
	if len(vouchers) > 0 {
		table.Footer = []string{"", "", "", "Total", amount(total), ""}
	}
	return vc.reporter.Handle(table)
}
