// Package yahoo fetches current stock prices from the Yahoo Finance chart API.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the Yahoo Finance query host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultSuffix is appended to ticker codes to select the Taiwan stock exchange.
	DefaultSuffix = ".TW"
)

// pricePath locates the latest traded price in a chart response.
const pricePath = "$.chart.result[0].meta.regularMarketPrice"

// Client fetches quotes. Its zero value is ready to use.
type Client struct {
	HTTP    *http.Client // http.DefaultClient if nil
	BaseURL string       // DefaultBaseURL if empty
	Suffix  string       // exchange suffix, DefaultSuffix if empty
	// Proxy is an optional fmt template receiving the escaped target URL, e.g.
	// "https://api.allorigins.win/raw?url=%s".
	Proxy string
}

// Quote returns the current price of code.
func (c *Client) Quote(ctx context.Context, code string) (decimal.Decimal, error) {
	addr := c.chartURL(code)
	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot get quote for %q: %w", code, err)
	}

	jval, err := jsonpath.Get(pricePath, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no price for %q in %q: %w", code, pricePath, err)
	}
	// jsonpath sometimes wraps a single answer in a list
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case json.Number:
		price, err = decimal.NewFromString(v.String())
	case float64:
		price = decimal.NewFromFloat(v)
	default:
		err = fmt.Errorf("not a number: %v", jval)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot read price for %q: %w", code, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("no price for %q: got %s", code, price)
	}
	return price, nil
}

// chartURL returns the chart API address for code, through the proxy if any.
func (c *Client) chartURL(code string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	suffix := c.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	target := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d", strings.TrimRight(base, "/"), url.PathEscape(code+suffix))
	if c.Proxy == "" {
		return target
	}
	return fmt.Sprintf(c.Proxy, url.QueryEscape(target))
}

// jwget performs an HTTP GET request to addr and decodes the JSON response
// body into data. Numbers are kept as json.Number to avoid float noise.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// the API rejects requests without a user agent
	req.Header.Set("User-Agent", "stockkeeper/1")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("quote request")
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	return dec.Decode(data)
}
