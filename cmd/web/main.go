package main

import (
	"fmt"
	"os"

	"github.com/de-tools/tally-gateway/pkg/metrics"
	"github.com/de-tools/tally-gateway/pkg/server"
	"github.com/de-tools/tally-gateway/pkg/services/accounting"
	"github.com/de-tools/tally-gateway/pkg/services/config"
	"github.com/de-tools/tally-gateway/pkg/tally/client"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Tally REST gateway",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (optional; environment variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger = logger.Level(level)

	m := metrics.New()
	tally := client.New(client.Config{
		BaseURL:    cfg.Tally.BaseURL(),
		Timeout:    cfg.Tally.Timeout,
		RetryCount: cfg.Tally.RetryCount,
	}, m)
	defer tally.Close()

	svc := accounting.NewService(tally, accounting.Options{
		Company:     cfg.Tally.Company,
		SalesLedger: cfg.Tally.SalesLedger,
	})

	logger.Info().
		Str("tally", tally.Addr()).
		Str("company", cfg.Tally.Company).
		Dur("timeout", cfg.Tally.Timeout).
		Msg("configuration loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		AllowedOrigin:   cfg.Server.AllowedOrigin,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		TallyHost:       cfg.Tally.Host,
		TallyPort:       cfg.Tally.Port,
		Company:         cfg.Tally.Company,
		Dependencies: server.Dependencies{
			Accounting: svc,
			Metrics:    m,
			Logger:     logger,
		},
	})

	return api.Start()
}
