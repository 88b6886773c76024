// Package config loads gateway settings from an optional YAML file, the environment
// and built-in defaults, in increasing order of precedence: defaults, file, env.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Tally    Tally  `mapstructure:"tally"`
	Server   Server `mapstructure:"server"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
}

type Tally struct {
	Host        string        `mapstructure:"host" validate:"required"`
	Port        int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	Company     string        `mapstructure:"company"`
	SalesLedger string        `mapstructure:"sales_ledger"`
	RetryCount  int           `mapstructure:"retry_count" validate:"gte=0,lte=10"`
	Timeout     time.Duration `mapstructure:"-" validate:"gt=0"`
}

type Server struct {
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	AllowedOrigin   string        `mapstructure:"allowed_origin" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BaseURL is the address Tally's HTTP server listens on.
func (t Tally) BaseURL() string {
	return "http://" + net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (s Server) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

var envBindings = map[string]string{
	"tally.host":            "TALLY_HOST",
	"tally.port":            "TALLY_PORT",
	"tally.company":         "TALLY_COMPANY",
	"tally.sales_ledger":    "TALLY_SALES_LEDGER",
	"tally.timeout":         "TALLY_TIMEOUT",
	"tally.retry_count":     "TALLY_RETRY_COUNT",
	"server.port":           "PORT",
	"server.allowed_origin": "ALLOWED_ORIGIN",
	"log_level":             "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tally.host", "localhost")
	v.SetDefault("tally.port", 9000)
	v.SetDefault("tally.company", "")
	v.SetDefault("tally.sales_ledger", "")
	v.SetDefault("tally.timeout", "30s")
	v.SetDefault("tally.retry_count", 0)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allowed_origin", "http://localhost:4200")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log_level", "info")
}

// Load reads the file at path when one is given. A missing path is not an error; the
// gateway runs on defaults and environment variables alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	timeout, err := parseTimeout(v.GetString("tally.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid tally timeout: %w", err)
	}
	cfg.Tally.Timeout = timeout
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// parseTimeout takes a Go duration, or a bare number of milliseconds as older
// deployments set TALLY_TIMEOUT=30000.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}
