package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/tally-gateway/pkg/runtime/terminal/commands"
	"github.com/de-tools/tally-gateway/pkg/runtime/terminal/export"
	"github.com/de-tools/tally-gateway/pkg/services/accounting"

	"github.com/spf13/cobra"
)

// ConnectFunc builds the accounting service from the config file named by --config.
type ConnectFunc func(cfgPath string) (accounting.Service, error)

// CLI represents the command-line interface
type CLI struct {
	connect  ConnectFunc
	service  accounting.Service
	cfgPath  string
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Connect ConnectFunc
	Output  io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		connect:  opts.Connect,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "Read ledgers, vouchers and reports from Tally",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			svc, err := cli.connect(cli.cfgPath)
			if err != nil {
				return fmt.Errorf("failed to connect to tally: %w", err)
			}
			cli.service = svc
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a YAML config file")

	service := func() accounting.Service { return cli.service }
	cmd.AddCommand(commands.NewLedgersCmd(service, cli.reporter))
	cmd.AddCommand(commands.NewVouchersCmd(service, cli.reporter))
	cmd.AddCommand(commands.NewTrialBalanceCmd(service, cli.reporter))
	cmd.AddCommand(commands.NewCompaniesCmd(service, cli.reporter))

	return cmd
}
