// Package store provides the key/value backends a portfolio persists into.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/stockkeeper"
	"github.com/rs/zerolog/log"
)

// entry is the document stored for a key.
type entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// File stores each key as a small JSON document in a folder.
//
// The folder stays human readable and friendly to version control.
type File struct {
	dir string
}

// NewFile opens (and creates if needed) a file store in dir.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store folder %q: %w", dir, err)
	}
	log.Debug().Str("path", dir).Msg("file store opened")
	return &File{dir: dir}, nil
}

// path returns the file holding key. The key is percent-encoded: separators
// never reach the file system and two keys never share a file.
func (s *File) path(key string) string {
	name := strings.ReplaceAll(url.PathEscape(key), ":", "%3A")
	return filepath.Join(s.dir, name+".json")
}

func (s *File) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%q: %w", key, stockkeeper.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("cannot read %q: %w", key, err)
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("cannot parse %q: %w", key, err)
	}
	return e.Value, nil
}

// Set writes the value atomically: readers see either the old or the new value.
func (s *File) Set(_ context.Context, key, value string) error {
	data, err := json.MarshalIndent(entry{Key: key, Value: value}, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

// Delete removes key, deleting a missing key is not an error.
func (s *File) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot delete %q: %w", key, err)
	}
	return nil
}

// Close is a no-op, it makes File a Store.
func (s *File) Close() error { return nil }
