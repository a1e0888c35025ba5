package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chart = `{"chart":{"result":[{"meta":{"currency":"TWD","symbol":"2330.TW","regularMarketPrice":1025.5}}],"error":null}}`

func TestQuote(t *testing.T) {
	var gotPath, gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery, gotAgent = r.URL.Path, r.URL.RawQuery, r.UserAgent()
		w.Write([]byte(chart))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	price, err := c.Quote(context.Background(), "2330")
	require.NoError(t, err)
	assert.Equal(t, "1025.5", price.String())
	assert.Equal(t, "/v8/finance/chart/2330.TW", gotPath)
	assert.Equal(t, "interval=1d", gotQuery)
	assert.NotEmpty(t, gotAgent)
}

func TestQuote_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, chart},
		{"not found", http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found"}}}`},
		{"no result", http.StatusOK, `{"chart":{"result":null,"error":null}}`},
		{"no price", http.StatusOK, `{"chart":{"result":[{"meta":{}}]}}`},
		{"zero price", http.StatusOK, `{"chart":{"result":[{"meta":{"regularMarketPrice":0}}]}}`},
		{"text price", http.StatusOK, `{"chart":{"result":[{"meta":{"regularMarketPrice":"n/a"}}]}}`},
		{"not json", http.StatusOK, `<html>rate limited</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := &Client{BaseURL: srv.URL}
			_, err := c.Quote(context.Background(), "2330")
			assert.Error(t, err)
		})
	}
}

func TestQuote_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chart))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Client{BaseURL: srv.URL}).Quote(ctx, "2330")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuote_Proxy(t *testing.T) {
	var target string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target = r.URL.Query().Get("url")
		w.Write([]byte(chart))
	}))
	defer srv.Close()

	c := &Client{Proxy: srv.URL + "/raw?url=%s", Suffix: ".TWO"}
	price, err := c.Quote(context.Background(), "6488")
	require.NoError(t, err)
	assert.Equal(t, "1025.5", price.String())
	assert.Equal(t, DefaultBaseURL+"/v8/finance/chart/6488.TWO?interval=1d", target)
}

func TestChartURL(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "https://query1.finance.yahoo.com/v8/finance/chart/2892.TW?interval=1d", c.chartURL("2892"))

	c = &Client{BaseURL: "http://local/", Proxy: "https://api.allorigins.win/raw?url=%s"}
	want := "https://api.allorigins.win/raw?url=" + url.QueryEscape("http://local/v8/finance/chart/2892.TW?interval=1d")
	assert.Equal(t, want, c.chartURL("2892"))
}
