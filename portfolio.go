package stockkeeper

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Change tells observers which part of the portfolio has been modified.
type Change uint8

const (
	ChangePositions Change = 1 << iota
	ChangeLoan
	ChangeUpdated

	ChangeAll = ChangePositions | ChangeLoan | ChangeUpdated
)

// Has reports whether c includes all the bits of x.
func (c Change) Has(x Change) bool { return c&x == x }

// Observer is called after every mutation of a Portfolio.
type Observer func(p *Portfolio, c Change)

// Portfolio is the ordered list of positions and the outstanding margin loan.
//
// A Portfolio has a single owner and is not safe for concurrent use.
// Every mutating method notifies the registered observers once done.
type Portfolio struct {
	positions   []Position
	loan        decimal.Decimal
	lastUpdated time.Time

	observers []Observer
}

// NewPortfolio returns a portfolio made of positions and loan.
func NewPortfolio(positions []Position, loan decimal.Decimal, lastUpdated time.Time) *Portfolio {
	p := &Portfolio{
		positions:   make([]Position, 0, len(positions)),
		loan:        nonNegative(loan),
		lastUpdated: lastUpdated,
	}
	for _, pos := range positions {
		p.positions = append(p.positions, pos.Sanitize())
	}
	return p
}

// Observe registers o to be called after every mutation.
func (p *Portfolio) Observe(o Observer) { p.observers = append(p.observers, o) }

func (p *Portfolio) notify(c Change) {
	for _, o := range p.observers {
		o(p, c)
	}
}

// Positions returns a copy of the positions.
func (p *Portfolio) Positions() []Position { return slices.Clone(p.positions) }

// Len returns the number of positions.
func (p *Portfolio) Len() int { return len(p.positions) }

// Loan returns the outstanding loan balance.
func (p *Portfolio) Loan() decimal.Decimal { return p.loan }

// LastUpdated returns the time of the last refresh, zero if never refreshed.
func (p *Portfolio) LastUpdated() time.Time { return p.lastUpdated }

// Find returns the position with id.
func (p *Portfolio) Find(id ID) (Position, bool) {
	i := p.index(id)
	if i < 0 {
		return Position{}, false
	}
	return p.positions[i], true
}

// ByCode returns the positions for code, in order.
func (p *Portfolio) ByCode(code string) []Position {
	var found []Position
	for _, pos := range p.positions {
		if pos.Code == code {
			found = append(found, pos)
		}
	}
	return found
}

func (p *Portfolio) index(id ID) int {
	return slices.IndexFunc(p.positions, func(pos Position) bool { return pos.ID == id })
}

// Summary valuates the portfolio.
func (p *Portfolio) Summary(policy Policy) *Summary {
	return policy.Valuate(p.positions, p.loan)
}

// Add appends a new position built from draft.
//
// A draft without code or name is silently ignored (false is returned).
// The new position gets a fresh ID, and when its code is in the reference
// data the reported EPS replaces the one in the draft.
func (p *Portfolio) Add(draft Position, ref ReferenceData) (Position, bool) {
	if draft.Code == "" || draft.Name == "" {
		return Position{}, false
	}
	pos := draft.Sanitize()
	pos.ID = NewID()
	pos.Verified = false
	ref.apply(&pos)

	p.positions = append(p.positions, pos)
	p.notify(ChangePositions)
	return pos, true
}

// Edit writes value into field of the position id.
//
// Editing the cumulative EPS always clears Verified. An unknown id or field
// leaves the portfolio unchanged and returns false.
func (p *Portfolio) Edit(id ID, field Field, value decimal.Decimal) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	if !p.positions[i].set(field, value) {
		return false
	}
	p.notify(ChangePositions)
	return true
}

// Remove deletes the position id. Confirmation is up to the caller.
func (p *Portfolio) Remove(id ID) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	p.positions = slices.Delete(p.positions, i, i+1)
	p.notify(ChangePositions)
	return true
}

// Replace swaps the whole collection for positions, typically an import.
//
// Every position gets a fresh ID and is marked unverified whatever its
// source says.
func (p *Portfolio) Replace(positions []Position) {
	list := make([]Position, 0, len(positions))
	for _, pos := range positions {
		pos = pos.Sanitize()
		pos.ID = NewID()
		pos.Verified = false
		list = append(list, pos)
	}
	p.positions = list
	p.notify(ChangePositions)
}

// SetLoan sets the outstanding loan balance. Negative amounts are read as zero.
func (p *Portfolio) SetLoan(amount decimal.Decimal) {
	p.loan = nonNegative(amount)
	p.notify(ChangeLoan)
}
