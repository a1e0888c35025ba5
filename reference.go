package stockkeeper

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// EPSRecord is the reported cumulative EPS of a company for the current
// fiscal year.
type EPSRecord struct {
	CumulativeEPS decimal.Decimal `json:"cumulativeEPS"`
	AsOfMonth     int             `json:"month"`
	Note          string          `json:"note,omitempty"` // source of the figure, e.g. "Q3 report"
}

// ReferenceData maps ticker codes to trusted EPS figures.
type ReferenceData map[string]EPSRecord

// Lookup returns the record for code.
func (r ReferenceData) Lookup(code string) (EPSRecord, bool) {
	rec, ok := r[code]
	return rec, ok
}

// apply overwrites the EPS fields of p when its code is known. It returns
// true if p has been modified.
func (r ReferenceData) apply(p *Position) bool {
	rec, ok := r.Lookup(p.Code)
	if !ok {
		return false
	}
	p.CumulativeEPS = rec.CumulativeEPS
	p.EPSAsOfMonth = normalizeMonth(rec.AsOfMonth)
	p.Verified = true
	return true
}

// DecodeReference reads reference data as a JSON object keyed by ticker code.
func DecodeReference(r io.Reader) (ReferenceData, error) {
	ref := make(ReferenceData)
	if err := json.NewDecoder(r).Decode(&ref); err != nil {
		return nil, fmt.Errorf("cannot decode reference data: %w", err)
	}
	return ref, nil
}

// Stock is a listed company.
type Stock struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Listing is the list of known tickers.
type Listing []Stock

// Search returns the stocks whose code or name contains term. An empty term
// matches nothing.
func (l Listing) Search(term string) []Stock {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	var found []Stock
	for _, s := range l {
		if strings.Contains(s.Code, term) || strings.Contains(s.Name, term) {
			found = append(found, s)
		}
	}
	return found
}

// Lookup returns the stock with exactly this code.
func (l Listing) Lookup(code string) (Stock, bool) {
	for _, s := range l {
		if s.Code == code {
			return s, true
		}
	}
	return Stock{}, false
}

// Codes returns all the codes in listing order.
func (l Listing) Codes() []string {
	codes := make([]string, 0, len(l))
	for _, s := range l {
		codes = append(codes, s.Code)
	}
	return codes
}

// DecodeListing reads a listing as a JSON array of {code, name}.
func DecodeListing(r io.Reader) (Listing, error) {
	var l Listing
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("cannot decode listing: %w", err)
	}
	return l, nil
}

// DecodePositions reads a JSON array of positions.
func DecodePositions(r io.Reader) ([]Position, error) {
	var list []Position
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("cannot decode positions: %w", err)
	}
	for i := range list {
		list[i] = list[i].Sanitize()
	}
	return list, nil
}
