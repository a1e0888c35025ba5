package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "TWD", cfg.Currency)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "stockkeeper_positions_v2", cfg.Keys().Positions)
	assert.Equal(t, ".TW", cfg.Quote.Suffix)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sk.toml")
	content := `
currency = "twd"

[storage]
backend = "badger"
path = "/tmp/sk"
namespace = "demo"
version = ""

[quote]
proxy = "https://proxy.example/?u=%s"
timeout = "5s"

[policy]
pledge_ratio = "0.5"
warning_line = "oops"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SK_STORAGE_PATH", "/var/sk")
	t.Setenv("SK_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TWD", cfg.Currency)
	assert.Equal(t, "badger", cfg.Storage.Backend)
	assert.Equal(t, "/var/sk", cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "demo_loan", cfg.Keys().Loan)
	assert.Equal(t, "https://proxy.example/?u=%s", cfg.Quote.Proxy)
	assert.Equal(t, 5.0, cfg.QuoteTimeout().Seconds())

	p := cfg.MarketPolicy()
	assert.True(t, p.PledgeRatio.Equal(decimal.RequireFromString("0.5")))
	// malformed values keep the default
	assert.True(t, p.WarningLine.Equal(decimal.NewFromInt(166)))
	assert.True(t, p.MarginCallLine.Equal(decimal.NewFromInt(130)))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("currency = ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestQuoteTimeout_Default(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Quote.Timeout = "soon"
	assert.Equal(t, 30.0, cfg.QuoteTimeout().Seconds())
}
