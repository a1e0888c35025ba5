package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper"
	"github.com/rs/zerolog/log"
	"github.com/timshannon/badgerhold/v4"
)

// KVEntry represents a key-value pair stored in BadgerDB.
type KVEntry struct {
	Key   string `badgerhold:"key"`
	Value string
}

// Badger stores keys in an embedded BadgerDB database.
type Badger struct {
	db *badgerhold.Store
}

// NewBadger opens (and creates if needed) a Badger database in dir.
func NewBadger(dir string) (*Badger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create badger folder %q: %w", dir, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil // badger is too chatty

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("cannot open badger database %q: %w", dir, err)
	}
	log.Debug().Str("path", dir).Msg("badger store opened")
	return &Badger{db: db}, nil
}

func (s *Badger) Get(_ context.Context, key string) (string, error) {
	var e KVEntry
	err := s.db.Get(key, &e)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return "", fmt.Errorf("%q: %w", key, stockkeeper.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("cannot read %q: %w", key, err)
	}
	return e.Value, nil
}

func (s *Badger) Set(_ context.Context, key, value string) error {
	if err := s.db.Upsert(key, &KVEntry{Key: key, Value: value}); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

// Delete removes key, deleting a missing key is not an error.
func (s *Badger) Delete(_ context.Context, key string) error {
	err := s.db.Delete(key, KVEntry{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("cannot delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *Badger) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
