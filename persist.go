package stockkeeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by a KeyValueStore for a missing key.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is the external storage the portfolio persists into.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Keys are the storage keys of the three persisted entries.
type Keys struct {
	Positions string
	Loan      string
	Updated   string
}

// NewKeys derives the storage keys from a namespace and a version suffix.
// Changing the version starts from a fresh dataset, there is no migration.
func NewKeys(namespace, version string) Keys {
	key := func(name string) string {
		parts := []string{namespace, name}
		if version != "" {
			parts = append(parts, version)
		}
		return strings.Join(parts, "_")
	}
	return Keys{
		Positions: key("positions"),
		Loan:      key("loan"),
		Updated:   key("updated"),
	}
}

// Load reads the portfolio from kv.
//
// Load never fails: a missing or malformed positions entry yields the seed
// positions, a missing or malformed loan yields zero and a missing or
// malformed timestamp yields the zero time.
func Load(ctx context.Context, kv KeyValueStore, keys Keys, seed []Position) *Portfolio {
	positions := seed
	if raw, err := kv.Get(ctx, keys.Positions); err == nil {
		if list, err := DecodePositions(strings.NewReader(raw)); err == nil {
			positions = list
		} else {
			log.Warn().Err(err).Str("key", keys.Positions).Msg("malformed positions, using the default dataset")
		}
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Str("key", keys.Positions).Msg("cannot read positions, using the default dataset")
	}

	loan := decimal.Zero
	if raw, err := kv.Get(ctx, keys.Loan); err == nil {
		loan = ParseDecimal(raw)
	}

	var updated time.Time
	if raw, err := kv.Get(ctx, keys.Updated); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw)); err == nil {
			updated = t
		}
	}
	return NewPortfolio(positions, loan, updated)
}

// Save writes the entries of p selected by c into kv.
func Save(ctx context.Context, kv KeyValueStore, keys Keys, p *Portfolio, c Change) error {
	var errs error
	if c.Has(ChangePositions) {
		data, err := json.Marshal(p.positions)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot encode positions: %w", err))
		} else if err := kv.Set(ctx, keys.Positions, string(data)); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot write %q: %w", keys.Positions, err))
		}
	}
	if c.Has(ChangeLoan) {
		if err := kv.Set(ctx, keys.Loan, p.loan.String()); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot write %q: %w", keys.Loan, err))
		}
	}
	// the timestamp is only written once there is one
	if c.Has(ChangeUpdated) && !p.lastUpdated.IsZero() {
		if err := kv.Set(ctx, keys.Updated, p.lastUpdated.UTC().Format(time.RFC3339Nano)); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot write %q: %w", keys.Updated, err))
		}
	}
	return errs
}

// Persister returns an Observer that saves every change into kv.
//
// Writes are fire and forget: failures are logged, the last successful write
// wins.
func Persister(ctx context.Context, kv KeyValueStore, keys Keys) Observer {
	return func(p *Portfolio, c Change) {
		if err := Save(ctx, kv, keys, p, c); err != nil {
			log.Warn().Err(err).Msg("portfolio not saved")
			return
		}
		log.Debug().Uint8("change", uint8(c)).Msg("portfolio saved")
	}
}
