// Package config loads the stockkeeper settings.
//
// Settings come from built-in defaults, then TOML files, then a .env file
// and finally SK_* environment variables, each layer overriding the previous
// one.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/stockkeeper"
	"github.com/etnz/stockkeeper/reference"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Config holds all the settings.
type Config struct {
	Currency  string          `toml:"currency"`
	Storage   StorageConfig   `toml:"storage"`
	Quote     QuoteConfig     `toml:"quote"`
	Reference ReferenceConfig `toml:"reference"`
	Policy    PolicyConfig    `toml:"policy"`
	Logging   LoggingConfig   `toml:"logging"`
}

// StorageConfig selects where the portfolio is persisted.
type StorageConfig struct {
	Backend   string `toml:"backend"` // file, badger or memory
	Path      string `toml:"path"`
	Namespace string `toml:"namespace"`
	Version   string `toml:"version"` // bump to start from a fresh dataset
}

// QuoteConfig holds the quote API settings.
type QuoteConfig struct {
	BaseURL string `toml:"base_url"`
	Suffix  string `toml:"suffix"`
	Proxy   string `toml:"proxy"` // fmt template receiving the escaped target URL
	Timeout string `toml:"timeout"`
}

// ReferenceConfig points to files replacing the embedded reference datasets.
type ReferenceConfig struct {
	EPS     string `toml:"eps"`
	Listing string `toml:"listing"`
	Seed    string `toml:"seed"`
}

// PolicyConfig overrides the market conventions. Values are decimal strings,
// empty ones keep the default.
type PolicyConfig struct {
	EPSFloor       string `toml:"eps_floor"`
	ParValueShares string `toml:"par_value_shares"`
	PledgeRatio    string `toml:"pledge_ratio"`
	MarginCallLine string `toml:"margin_call_line"`
	WarningLine    string `toml:"warning_line"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with the default settings.
func NewDefaultConfig() *Config {
	return &Config{
		Currency: stockkeeper.DefaultCurrency,
		Storage: StorageConfig{
			Backend:   "file",
			Path:      ".stockkeeper",
			Namespace: "stockkeeper",
			Version:   "v2",
		},
		Quote: QuoteConfig{
			BaseURL: "https://query1.finance.yahoo.com",
			Suffix:  ".TW",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from files with environment overrides.
//
// Missing files are skipped. Later files override earlier ones.
func Load(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
		}
	}

	// a missing .env is the common case
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("cannot load .env")
	}
	applyEnvOverrides(config)
	config.Currency = strings.ToUpper(strings.TrimSpace(config.Currency))
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SK_CURRENCY"); v != "" {
		config.Currency = v
	}
	if v := os.Getenv("SK_STORAGE_BACKEND"); v != "" {
		config.Storage.Backend = v
	}
	if v := os.Getenv("SK_STORAGE_PATH"); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv("SK_STORAGE_NAMESPACE"); v != "" {
		config.Storage.Namespace = v
	}
	if v := os.Getenv("SK_STORAGE_VERSION"); v != "" {
		config.Storage.Version = v
	}
	if v := os.Getenv("SK_QUOTE_BASE_URL"); v != "" {
		config.Quote.BaseURL = v
	}
	if v := os.Getenv("SK_QUOTE_PROXY"); v != "" {
		config.Quote.Proxy = v
	}
	if v := os.Getenv("SK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// MarketPolicy returns the default policy with the configured overrides.
// Malformed values are ignored.
func (c *Config) MarketPolicy() stockkeeper.Policy {
	p := stockkeeper.DefaultPolicy()
	override := func(dst *decimal.Decimal, name, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			log.Warn().Err(err).Str("setting", name).Msg("ignoring malformed policy value")
			return
		}
		*dst = d
	}
	override(&p.EPSFloor, "eps_floor", c.Policy.EPSFloor)
	override(&p.ParValueShares, "par_value_shares", c.Policy.ParValueShares)
	override(&p.PledgeRatio, "pledge_ratio", c.Policy.PledgeRatio)
	override(&p.MarginCallLine, "margin_call_line", c.Policy.MarginCallLine)
	override(&p.WarningLine, "warning_line", c.Policy.WarningLine)
	if c.Currency != "" {
		p.Currency = c.Currency
	}
	return p
}

// QuoteTimeout parses and returns the quote request timeout.
func (c *Config) QuoteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Quote.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Keys returns the storage keys of the configured namespace and version.
func (c *Config) Keys() stockkeeper.Keys {
	return stockkeeper.NewKeys(c.Storage.Namespace, c.Storage.Version)
}

// ReferencePaths returns the replacement files for the reference datasets.
func (c *Config) ReferencePaths() reference.Paths {
	return reference.Paths{
		EPS:     c.Reference.EPS,
		Listing: c.Reference.Listing,
		Seed:    c.Reference.Seed,
	}
}
