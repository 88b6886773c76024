package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Tally.Host)
	assert.Equal(t, 9000, cfg.Tally.Port)
	assert.Equal(t, 30*time.Second, cfg.Tally.Timeout)
	assert.Equal(t, 0, cfg.Tally.RetryCount)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:4200", cfg.Server.AllowedOrigin)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:9000", cfg.Tally.BaseURL())
	assert.Equal(t, ":3000", cfg.Server.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TALLY_HOST", "10.0.0.5")
	t.Setenv("TALLY_PORT", "9100")
	t.Setenv("TALLY_COMPANY", "Acme Traders")
	t.Setenv("TALLY_TIMEOUT", "5000")
	t.Setenv("TALLY_RETRY_COUNT", "2")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGIN", "https://erp.example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:9100", cfg.Tally.BaseURL())
	assert.Equal(t, "Acme Traders", cfg.Tally.Company)
	assert.Equal(t, 5*time.Second, cfg.Tally.Timeout)
	assert.Equal(t, 2, cfg.Tally.RetryCount)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "https://erp.example.com", cfg.Server.AllowedOrigin)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tally:
  host: tally.local
  company: Demo
  sales_ledger: Sales Account
  timeout: 45s
server:
  port: 4000
`), 0o600))
	t.Setenv("TALLY_HOST", "override.local")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override.local", cfg.Tally.Host)
	assert.Equal(t, "Demo", cfg.Tally.Company)
	assert.Equal(t, "Sales Account", cfg.Tally.SalesLedger)
	assert.Equal(t, 45*time.Second, cfg.Tally.Timeout)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 9000, cfg.Tally.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{name: "port out of range", env: map[string]string{"TALLY_PORT": "70000"}},
		{name: "bad timeout", env: map[string]string{"TALLY_TIMEOUT": "soon"}},
		{name: "zero timeout", env: map[string]string{"TALLY_TIMEOUT": "0"}},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "missing file", path: "/nonexistent/gateway.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}
