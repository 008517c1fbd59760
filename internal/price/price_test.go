package price_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cryptovektor-telegram-bot/internal/gateway"
	"cryptovektor-telegram-bot/internal/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T, handler http.HandlerFunc) (*price.Source, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := gateway.New(8)
	require.NoError(t, err)

	src := price.NewSource(gw)
	src.BaseURL = srv.URL
	return src, srv
}

func TestSimplePrice(t *testing.T) {
	src, _ := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		fmt.Fprint(w, `{"bitcoin":{"usd":50000.0}}`)
	})

	value, ok := src.SimplePrice(context.Background(), "bitcoin")
	require.True(t, ok)
	assert.Equal(t, 50000.0, value)
}

func TestSimplePriceAbsentCoin(t *testing.T) {
	src, _ := newSource(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, ok := src.SimplePrice(context.Background(), "no-such-coin")
	assert.False(t, ok)
}

func TestSimplePriceMissingUSDField(t *testing.T) {
	src, _ := newSource(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"bitcoin":{}}`)
	})

	_, ok := src.SimplePrice(context.Background(), "bitcoin")
	assert.False(t, ok)
}

func TestSimplePriceUpstreamDown(t *testing.T) {
	src, _ := newSource(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, ok := src.SimplePrice(context.Background(), "bitcoin")
	assert.False(t, ok)
}

func TestSimplePriceUsesGatewayCache(t *testing.T) {
	var calls int32
	src, _ := newSource(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"bitcoin":{"usd":42.0}}`)
	})

	for i := 0; i < 3; i++ {
		value, ok := src.SimplePrice(context.Background(), "bitcoin")
		require.True(t, ok)
		assert.Equal(t, 42.0, value)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
