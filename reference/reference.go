// Package reference provides the static datasets the tracker ships with: the
// reported EPS table, the ticker listing and the seed portfolio.
//
// They are snapshots of public filings at a given date. Each one can be
// replaced by a file with the same format.
package reference

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockkeeper"
)

//go:embed *.json
var files embed.FS

// Data bundles all the reference datasets.
type Data struct {
	EPS     stockkeeper.ReferenceData
	Listing stockkeeper.Listing
	Seed    []stockkeeper.Position
}

// Paths of replacement files, an empty path selects the embedded dataset.
type Paths struct {
	EPS     string
	Listing string
	Seed    string
}

// Load reads the datasets, replacing the embedded ones by the files in paths.
func Load(paths Paths) (*Data, error) {
	var d Data
	var err error
	if err = decode(paths.EPS, "eps.json", func(r io.Reader) error {
		d.EPS, err = stockkeeper.DecodeReference(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err = decode(paths.Listing, "listing.json", func(r io.Reader) error {
		d.Listing, err = stockkeeper.DecodeListing(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err = decode(paths.Seed, "seed.json", func(r io.Reader) error {
		d.Seed, err = stockkeeper.DecodePositions(r)
		return err
	}); err != nil {
		return nil, err
	}
	return &d, nil
}

// Default returns the embedded datasets.
func Default() *Data {
	d, err := Load(Paths{})
	if err != nil {
		// embedded files are checked by tests
		panic(err)
	}
	return d
}

// decode opens path, or the embedded file name when path is empty, and
// passes it to fn.
func decode(path, name string, fn func(io.Reader) error) error {
	var data []byte
	var err error
	if path == "" {
		data, err = files.ReadFile(name)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("cannot read reference %q: %w", name, err)
	}
	if err := fn(bytes.NewReader(data)); err != nil {
		if path != "" {
			return fmt.Errorf("%s: %w", path, err)
		}
		return err
	}
	return nil
}
