package stockkeeper

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// QuoteProvider returns the current price of a ticker.
//
// It is best effort: any error means no price is available right now.
type QuoteProvider interface {
	Quote(ctx context.Context, code string) (decimal.Decimal, error)
}

// QuoteFunc adapts a function to a QuoteProvider.
type QuoteFunc func(ctx context.Context, code string) (decimal.Decimal, error)

func (f QuoteFunc) Quote(ctx context.Context, code string) (decimal.Decimal, error) {
	return f(ctx, code)
}

// now is replaced in tests.
var now = time.Now

// Refresh updates prices from quotes and EPS figures from ref.
//
// A quote is requested concurrently for every position with a listed code;
// positive prices replace the current ones, failures leave the price as is.
// Then every position whose code is in ref gets the reported EPS and is
// marked verified. Nothing in a refresh can fail: it only updates what it can.
func (p *Portfolio) Refresh(ctx context.Context, quotes QuoteProvider, ref ReferenceData) {
	prices := p.fetchPrices(ctx, quotes)

	updated := 0
	for i := range p.positions {
		pos := &p.positions[i]
		if price, ok := prices[i]; ok {
			pos.Price = price
			updated++
		}
		ref.apply(pos)
	}
	log.Debug().Int("positions", len(p.positions)).Int("prices", updated).Msg("portfolio refreshed")

	p.lastUpdated = now()
	p.notify(ChangePositions | ChangeUpdated)
}

// fetchPrices requests one quote per listed position and returns the valid
// prices by position index.
func (p *Portfolio) fetchPrices(ctx context.Context, quotes QuoteProvider) map[int]decimal.Decimal {
	prices := make(map[int]decimal.Decimal)
	if quotes == nil {
		return prices
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i, pos := range p.positions {
		if !IsListedCode(pos.Code) {
			continue
		}
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			price, err := quotes.Quote(ctx, code)
			if err != nil {
				log.Warn().Err(err).Str("code", code).Msg("quote unavailable, price unchanged")
				return
			}
			if !price.IsPositive() {
				log.Warn().Str("code", code).Str("price", price.String()).Msg("invalid quote ignored")
				return
			}
			mu.Lock()
			prices[i] = price
			mu.Unlock()
		}(i, pos.Code)
	}
	wg.Wait()
	return prices
}
