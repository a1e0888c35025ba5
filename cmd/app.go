// Package cmd implements the CLI application to keep a dividend portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stockkeeper"
	"github.com/etnz/stockkeeper/config"
	"github.com/etnz/stockkeeper/reference"
	"github.com/etnz/stockkeeper/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&showCmd{}, "dashboard")
	c.Register(&htmlCmd{}, "dashboard")
	c.Register(&chartCmd{}, "dashboard")

	c.Register(&lsCmd{}, "positions")
	c.Register(&addCmd{}, "positions")
	c.Register(&editCmd{}, "positions")
	c.Register(&rmCmd{}, "positions")
	c.Register(&loanCmd{}, "positions")
	c.Register(&refreshCmd{}, "positions")

	c.Register(&importCmd{}, "spreadsheet")
	c.Register(&exportCmd{}, "spreadsheet")

	c.Register(&searchCmd{}, "reference")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "stockkeeper.toml", "Path to the configuration file (TOML), skipped if missing")
var Verbose = flag.Bool("v", false, "verbose logging")

// session is everything a command needs: the settings, the reference data
// and the portfolio, saved on every change.
type session struct {
	cfg       *config.Config
	policy    stockkeeper.Policy
	ref       *reference.Data
	store     store.Store
	portfolio *stockkeeper.Portfolio
}

// loadConfig reads the configuration and sets up logging accordingly.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	SetupLogging(cfg.Logging.Level, *Verbose)
	return cfg, nil
}

// openSession opens the configured store and loads the portfolio from it.
// The caller must Close the session.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ref, err := reference.Load(cfg.ReferencePaths())
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	keys := cfg.Keys()
	p := stockkeeper.Load(ctx, kv, keys, ref.Seed)
	p.Observe(stockkeeper.Persister(ctx, kv, keys))
	log.Debug().Str("backend", cfg.Storage.Backend).Str("path", cfg.Storage.Path).Int("positions", p.Len()).Msg("portfolio loaded")

	return &session{
		cfg:       cfg,
		policy:    cfg.MarketPolicy(),
		ref:       ref,
		store:     kv,
		portfolio: p,
	}, nil
}

// Close releases the store.
func (s *session) Close() error { return s.store.Close() }

// resolve finds the position designated by ref, either its ID or its code.
// A code held by several positions is ambiguous.
func (s *session) resolve(ref string) (stockkeeper.Position, error) {
	if pos, ok := s.portfolio.Find(stockkeeper.ID(ref)); ok {
		return pos, nil
	}
	found := s.portfolio.ByCode(ref)
	switch len(found) {
	case 0:
		return stockkeeper.Position{}, fmt.Errorf("no position %q", ref)
	case 1:
		return found[0], nil
	default:
		return stockkeeper.Position{}, fmt.Errorf("%d positions for code %q, use the ID (see 'sk ls')", len(found), ref)
	}
}
