package main

import (
	"fmt"
	"os"

	"github.com/de-tools/tally-gateway/pkg/runtime/terminal"
	"github.com/de-tools/tally-gateway/pkg/services/accounting"
	"github.com/de-tools/tally-gateway/pkg/services/config"
	"github.com/de-tools/tally-gateway/pkg/tally/client"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Connect: connect,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func connect(cfgPath string) (accounting.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	tally := client.New(client.Config{
		BaseURL:    cfg.Tally.BaseURL(),
		Timeout:    cfg.Tally.Timeout,
		RetryCount: cfg.Tally.RetryCount,
	}, nil)

	return accounting.NewService(tally, accounting.Options{
		Company:     cfg.Tally.Company,
		SalesLedger: cfg.Tally.SalesLedger,
	}), nil
}
