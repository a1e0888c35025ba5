package stockkeeper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore is an in-memory KeyValueStore that can be made to fail.
type mapStore struct {
	entries map[string]string
	fail    error
	sets    int
}

func newMapStore() *mapStore { return &mapStore{entries: make(map[string]string)} }

func (m *mapStore) Get(_ context.Context, key string) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	v, ok := m.entries[key]
	if !ok {
		return "", fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (m *mapStore) Set(_ context.Context, key, value string) error {
	m.sets++
	if m.fail != nil {
		return m.fail
	}
	m.entries[key] = value
	return nil
}

var testKeys = NewKeys("stockkeeper", "v2")

var seed = []Position{
	{ID: "seed-1", Code: "2892", Name: "First", Price: dec("27.8"), Quantity: 15000, EPSAsOfMonth: 9, Verified: true},
}

func TestNewKeys(t *testing.T) {
	assert.Equal(t, Keys{
		Positions: "stockkeeper_positions_v2",
		Loan:      "stockkeeper_loan_v2",
		Updated:   "stockkeeper_updated_v2",
	}, testKeys)
	assert.Equal(t, "demo_loan", NewKeys("demo", "").Loan)
}

func TestLoad_Empty(t *testing.T) {
	p := Load(context.Background(), newMapStore(), testKeys, seed)

	assert.Equal(t, seed, p.Positions())
	assert.True(t, p.Loan().IsZero())
	assert.True(t, p.LastUpdated().IsZero())
}

func TestLoad_Malformed(t *testing.T) {
	kv := newMapStore()
	kv.entries[testKeys.Positions] = `{"not": "a list"`
	kv.entries[testKeys.Loan] = "lots"
	kv.entries[testKeys.Updated] = "yesterday"

	p := Load(context.Background(), kv, testKeys, seed)
	assert.Equal(t, seed, p.Positions())
	assert.True(t, p.Loan().IsZero())
	assert.True(t, p.LastUpdated().IsZero())
}

func TestLoad_Unavailable(t *testing.T) {
	kv := newMapStore()
	kv.fail = errors.New("disk on fire")

	p := Load(context.Background(), kv, testKeys, seed)
	assert.Equal(t, seed, p.Positions())
}

func TestLoad_LegacyData(t *testing.T) {
	kv := newMapStore()
	// numeric ids, numbers instead of strings and no month
	kv.entries[testKeys.Positions] = `[{"id": 1731234567890, "code": "2880", "name": "Hua Nan", "price": 30.75, "quantity": 12000, "costBasis": 20, "cumulativeEPS": 1.43, "cashPayoutRatio": 50, "stockPayoutRatio": 20}]`
	kv.entries[testKeys.Loan] = "120000"

	p := Load(context.Background(), kv, testKeys, seed)
	require.Equal(t, 1, p.Len())
	pos := p.Positions()[0]
	assert.Equal(t, ID("1731234567890"), pos.ID)
	assert.True(t, pos.Price.Equal(dec("30.75")))
	assert.Equal(t, 12, pos.EPSAsOfMonth)
	assert.False(t, pos.Verified)
	assert.True(t, p.Loan().Equal(dec("120000")))
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	kv := newMapStore()
	at := time.Date(2025, 11, 20, 9, 30, 15, 123000000, time.FixedZone("CST", 8*3600))

	p := NewPortfolio([]Position{
		{ID: "a", Code: "2330", Name: "TSMC", Category: "tech", Price: dec("1025.5"), Quantity: 1000, CostBasis: dec("600.25"), CumulativeEPS: dec("32.5"), EPSAsOfMonth: 9, CashPayoutRatio: dec("40"), StockPayoutRatio: dec("0"), Verified: true},
		{ID: "b", Code: "FUND", Name: "Fund", Price: dec("10.0001"), Quantity: 3},
	}, dec("300000.5"), at)
	require.NoError(t, Save(ctx, kv, testKeys, p, ChangeAll))

	got := Load(ctx, kv, testKeys, seed)
	want := p.Positions()
	require.Equal(t, len(want), got.Len())
	for i, pos := range got.Positions() {
		assert.Equal(t, want[i].ID, pos.ID)
		assert.Equal(t, want[i].Code, pos.Code)
		assert.Equal(t, want[i].Name, pos.Name)
		assert.Equal(t, want[i].Category, pos.Category)
		assert.True(t, want[i].Price.Equal(pos.Price))
		assert.Equal(t, want[i].Quantity, pos.Quantity)
		assert.True(t, want[i].CostBasis.Equal(pos.CostBasis))
		assert.True(t, want[i].CumulativeEPS.Equal(pos.CumulativeEPS))
		assert.Equal(t, want[i].EPSAsOfMonth, pos.EPSAsOfMonth)
		assert.True(t, want[i].CashPayoutRatio.Equal(pos.CashPayoutRatio))
		assert.Equal(t, want[i].Verified, pos.Verified)
	}
	assert.True(t, got.Loan().Equal(dec("300000.5")))
	assert.True(t, got.LastUpdated().Equal(at))
}

func TestSave_Selective(t *testing.T) {
	ctx := context.Background()
	kv := newMapStore()
	p := NewPortfolio(seed, dec("10"), time.Time{})

	require.NoError(t, Save(ctx, kv, testKeys, p, ChangeLoan))
	assert.Equal(t, map[string]string{testKeys.Loan: "10"}, kv.entries)

	// a zero timestamp is never written
	require.NoError(t, Save(ctx, kv, testKeys, p, ChangeUpdated))
	assert.Len(t, kv.entries, 1)
}

func TestSave_Errors(t *testing.T) {
	kv := newMapStore()
	kv.fail = errors.New("read only")
	p := NewPortfolio(seed, decimal.Zero, time.Now())

	err := Save(context.Background(), kv, testKeys, p, ChangeAll)
	require.Error(t, err)
	assert.ErrorIs(t, err, kv.fail)
	assert.Equal(t, 3, kv.sets)
}

func TestPersister(t *testing.T) {
	ctx := context.Background()
	kv := newMapStore()
	p := Load(ctx, kv, testKeys, seed)
	p.Observe(Persister(ctx, kv, testKeys))

	p.SetLoan(dec("5000"))
	assert.Equal(t, "5000", kv.entries[testKeys.Loan])
	_, ok := kv.entries[testKeys.Positions]
	assert.False(t, ok, "positions are untouched by a loan change")

	_, added := p.Add(Position{Code: "2317", Name: "Hon Hai"}, nil)
	require.True(t, added)

	reloaded := Load(ctx, kv, testKeys, nil)
	assert.Equal(t, 2, reloaded.Len())
	assert.True(t, reloaded.Loan().Equal(dec("5000")))
}

func TestPersister_SwallowsErrors(t *testing.T) {
	ctx := context.Background()
	kv := newMapStore()
	p := NewPortfolio(seed, decimal.Zero, time.Time{})
	p.Observe(Persister(ctx, kv, testKeys))

	kv.fail = errors.New("quota exceeded")
	p.SetLoan(dec("1"))
	// the in-memory state is still updated
	assert.True(t, p.Loan().Equal(dec("1")))

	// and the last successful write wins
	kv.fail = nil
	p.SetLoan(dec("2"))
	assert.Equal(t, "2", kv.entries[testKeys.Loan])
}
