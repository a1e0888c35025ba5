package stockkeeper

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ID identifies a Position. It is assigned at creation and never changes.
type ID string

// NewID returns a fresh unique ID.
func NewID() ID { return ID(uuid.NewString()) }

// UnmarshalJSON accepts both a JSON string and a JSON number, older
// datasets used timestamps as identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Position is a single equity holding.
type Position struct {
	ID       ID     `json:"id"`
	Code     string `json:"code"`     // exchange ticker symbol
	Name     string `json:"name"`     // display name
	Category string `json:"category"` // free text, e.g. a sector

	Price     decimal.Decimal `json:"price"`     // current unit price
	Quantity  int64           `json:"quantity"`  // shares held
	CostBasis decimal.Decimal `json:"costBasis"` // average acquisition unit price

	// CumulativeEPS is the earnings per share reported for the current fiscal
	// year up to and including EPSAsOfMonth.
	CumulativeEPS decimal.Decimal `json:"cumulativeEPS"`
	EPSAsOfMonth  int             `json:"epsAsOfMonth"`

	CashPayoutRatio  decimal.Decimal `json:"cashPayoutRatio"`  // in percent
	StockPayoutRatio decimal.Decimal `json:"stockPayoutRatio"` // in percent

	// Verified is true when the EPS fields come from the reference data.
	Verified bool `json:"verified"`
}

// Sanitize enforces the position invariants: amounts are never negative and
// the EPS month is within [1,12] (12 otherwise).
func (p Position) Sanitize() Position {
	p.Price = nonNegative(p.Price)
	p.CostBasis = nonNegative(p.CostBasis)
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.EPSAsOfMonth = normalizeMonth(p.EPSAsOfMonth)
	return p
}

// MarketValue returns price × quantity.
func (p Position) MarketValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

// CostValue returns cost basis × quantity.
func (p Position) CostValue() decimal.Decimal {
	return p.CostBasis.Mul(decimal.NewFromInt(p.Quantity))
}

// normalizeMonth maps an unset or out of range month to a full year.
func normalizeMonth(m int) int {
	if m < 1 || m > 12 {
		return 12
	}
	return m
}

var numericCode = regexp.MustCompile(`^\d+$`)

// IsListedCode reports whether code looks like a listed ticker (digits only),
// the only ones a quote can be fetched for.
func IsListedCode(code string) bool { return numericCode.MatchString(code) }

// Field names a numeric field of a Position that can be edited in place.
type Field string

const (
	FieldPrice            Field = "price"
	FieldQuantity         Field = "quantity"
	FieldCostBasis        Field = "costBasis"
	FieldCumulativeEPS    Field = "cumulativeEPS"
	FieldEPSAsOfMonth     Field = "epsAsOfMonth"
	FieldCashPayoutRatio  Field = "cashPayoutRatio"
	FieldStockPayoutRatio Field = "stockPayoutRatio"
)

// Fields lists the editable fields.
var Fields = []Field{
	FieldPrice,
	FieldQuantity,
	FieldCostBasis,
	FieldCumulativeEPS,
	FieldEPSAsOfMonth,
	FieldCashPayoutRatio,
	FieldStockPayoutRatio,
}

// set writes value into field. It returns false if the field is unknown.
func (p *Position) set(field Field, value decimal.Decimal) bool {
	switch field {
	case FieldPrice:
		p.Price = nonNegative(value)
	case FieldQuantity:
		p.Quantity = nonNegative(value).IntPart()
	case FieldCostBasis:
		p.CostBasis = nonNegative(value)
	case FieldCumulativeEPS:
		p.CumulativeEPS = value
		// manual edits are never trusted over the reference data
		p.Verified = false
	case FieldEPSAsOfMonth:
		p.EPSAsOfMonth = normalizeMonth(int(value.IntPart()))
	case FieldCashPayoutRatio:
		p.CashPayoutRatio = value
	case FieldStockPayoutRatio:
		p.StockPayoutRatio = value
	default:
		return false
	}
	return true
}
