package commands

import (
	"fmt"

	"github.com/de-tools/tally-gateway/pkg/runtime/terminal/export"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type TrialBalanceCmd struct {
	from     string
	to       string
	service  ServiceFunc
	reporter *export.Reporter
}

func NewTrialBalanceCmd(service ServiceFunc, reporter *export.Reporter) *cobra.Command {
	tc := &TrialBalanceCmd{service: service, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance by account group",
		Args:  cobra.NoArgs,
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.from, "from", "", "Start date (YYYYMMDD or YYYY-MM-DD)")
	cmd.Flags().StringVar(&tc.to, "to", "", "End date (YYYYMMDD or YYYY-MM-DD)")

	return cmd
}

func (tc *TrialBalanceCmd) run(cmd *cobra.Command, _ []string) error {
	period, err := parsePeriod(tc.from, tc.to)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	groups, err := tc.service().TrialBalance(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to fetch trial balance: %w", err)
	}

	table := export.Table{
		Title:      "Trial Balance",
		Headers:    []string{"Group", "Debit", "Credit", "Closing"},
		RightAlign: map[int]bool{1: true, 2: true, 3: true},
	}
	debit, credit := decimal.Zero, decimal.Zero
	for _, g := range groups {
		debit = debit.Add(g.Debit)
		credit = credit.Add(g.Credit)
		table.Rows = append(table.Rows, []string{g.Name, amount(g.Debit), amount(g.Credit), amount(g.ClosingBalance)})
	}
	if len(groups) > 0 {
		table.Footer = []string{"Total", amount(debit), amount(credit), ""}
	}
	return tc.reporter.Handle(table)
}

type CompaniesCmd struct {
	service  ServiceFunc
	reporter *export.Reporter
}

func NewCompaniesCmd(service ServiceFunc, reporter *export.Reporter) *cobra.Command {
	cc := &CompaniesCmd{service: service, reporter: reporter}
	return &cobra.Command{
		Use:   "companies",
		Short: "List companies loaded in Tally",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}
}

func (cc *CompaniesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	companies, err := cc.service().ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	table := export.Table{
		Title:   "Companies",
		Headers: []string{"Name", "Books From", "Starting From"},
	}
	for _, c := range companies {
		table.Rows = append(table.Rows, []string{c.Name, c.BooksFrom, c.StartingFrom})
	}
	return cc.reporter.Handle(table)
}
