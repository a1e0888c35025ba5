package stockkeeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuotes serves fixed prices and records the requested codes.
type fakeQuotes struct {
	mu     sync.Mutex
	prices map[string]string
	asked  []string
}

func (f *fakeQuotes) Quote(_ context.Context, code string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, code)
	price, ok := f.prices[code]
	if !ok {
		return decimal.Zero, errors.New("no quote")
	}
	return dec(price), nil
}

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}

func TestRefresh(t *testing.T) {
	at := time.Date(2025, 11, 20, 9, 30, 0, 0, time.UTC)
	fixedNow(t, at)

	p := NewPortfolio([]Position{
		{ID: "a", Code: "2317", Name: "Hon Hai", Price: dec("100"), CumulativeEPS: dec("1"), EPSAsOfMonth: 3},
		{ID: "b", Code: "2892", Name: "First", Price: dec("27")},
		{ID: "c", Code: "FUND", Name: "Private fund", Price: dec("11")},
		{ID: "d", Code: "1101", Name: "Cement", Price: dec("40")},
		{ID: "e", Code: "2880", Name: "Hua Nan", Price: dec("30")},
	}, decimal.Zero, time.Time{})
	r := &recorder{}
	p.Observe(r.observe)

	quotes := &fakeQuotes{prices: map[string]string{
		"2317": "210.5",
		"2892": "28.1",
		"1101": "0",  // invalid
		"FUND": "99", // never asked
	}}
	p.Refresh(context.Background(), quotes, testRef)

	assert.ElementsMatch(t, []string{"2317", "2892", "1101", "2880"}, quotes.asked)

	got := p.Positions()
	assert.True(t, got[0].Price.Equal(dec("210.5")))
	assert.True(t, got[1].Price.Equal(dec("28.1")))
	assert.True(t, got[2].Price.Equal(dec("11")), "non listed codes are not quoted")
	assert.True(t, got[3].Price.Equal(dec("40")), "invalid quotes are ignored")
	assert.True(t, got[4].Price.Equal(dec("30")), "failed quotes keep the price")

	// reference EPS applied after the prices
	assert.True(t, got[0].Verified)
	assert.True(t, got[0].CumulativeEPS.Equal(dec("10.38")))
	assert.Equal(t, 9, got[0].EPSAsOfMonth)
	assert.False(t, got[1].Verified)

	assert.Equal(t, at, p.LastUpdated())
	assert.Equal(t, []Change{ChangePositions | ChangeUpdated}, r.changes)
}

func TestRefresh_NoProvider(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	fixedNow(t, at)

	p := NewPortfolio([]Position{{ID: "a", Code: "2317", Name: "Hon Hai", Price: dec("100")}}, decimal.Zero, time.Time{})
	p.Refresh(context.Background(), nil, testRef)

	pos, _ := p.Find("a")
	assert.True(t, pos.Price.Equal(dec("100")))
	assert.True(t, pos.Verified)
	assert.Equal(t, at, p.LastUpdated())
}

func TestRefresh_Concurrent(t *testing.T) {
	const n = 20
	var positions []Position
	for range n {
		positions = append(positions, Position{ID: NewID(), Code: "1000", Name: "Same", Price: dec("1")})
	}
	p := NewPortfolio(positions, decimal.Zero, time.Time{})

	// every request waits for all the others: they must run concurrently
	var started sync.WaitGroup
	started.Add(n)
	quotes := QuoteFunc(func(context.Context, string) (decimal.Decimal, error) {
		started.Done()
		started.Wait()
		return dec("2"), nil
	})

	done := make(chan struct{})
	go func() {
		p.Refresh(context.Background(), quotes, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("quotes are not requested concurrently")
	}
	for _, pos := range p.Positions() {
		require.True(t, pos.Price.Equal(dec("2")))
	}
}

func TestIsListedCode(t *testing.T) {
	assert.True(t, IsListedCode("2330"))
	assert.True(t, IsListedCode("00878"))
	assert.False(t, IsListedCode(""))
	assert.False(t, IsListedCode("2330.TW"))
	assert.False(t, IsListedCode("FUND"))
}
