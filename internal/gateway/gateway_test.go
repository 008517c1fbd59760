package gateway_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cryptovektor-telegram-bot/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJSONServesFromCacheWithinTTL(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"value":1}`)
	}))
	defer srv.Close()

	g, err := gateway.New(8)
	require.NoError(t, err)

	first, err := g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.NoError(t, err)

	second, err := g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchJSONRefetchesAfterTTL(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		fmt.Fprintf(w, `{"value":%d}`, n)
	}))
	defer srv.Close()

	g, err := gateway.New(8)
	require.NoError(t, err)

	first, err := g.FetchJSON(context.Background(), srv.URL, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, `{"value":1}`, string(first))

	time.Sleep(20 * time.Millisecond)

	second, err := g.FetchJSON(context.Background(), srv.URL, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, `{"value":2}`, string(second))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchJSONHonorsPerCallTTL(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"value":1}`)
	}))
	defer srv.Close()

	g, err := gateway.New(8)
	require.NoError(t, err)

	_, err = g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// The same URL is stale for a zero TTL caller but fresh for a long one.
	_, err = g.FetchJSON(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	_, err = g.FetchJSON(context.Background(), srv.URL, gateway.LongTTL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchJSONErrorKeepsCachedEntry(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"value":"original"}`)
	}))
	defer srv.Close()

	g, err := gateway.New(8)
	require.NoError(t, err)

	original, err := g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.NoError(t, err)

	fail.Store(true)

	_, err = g.FetchJSON(context.Background(), srv.URL, 0)
	require.Error(t, err)

	cached, err := g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(cached))
}

func TestFetchJSONRejectsInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "definitely not json")
	}))
	defer srv.Close()

	g, err := gateway.New(8)
	require.NoError(t, err)

	_, err = g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.Error(t, err)

	// Nothing was cached, so the next call goes upstream again and fails again.
	_, err = g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.Error(t, err)
}

func TestFetchJSONNonOKStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	g, err := gateway.New(8)
	require.NoError(t, err)

	_, err = g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.Error(t, err)

	_, err = g.FetchJSON(context.Background(), srv.URL, time.Minute)
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	g, err := gateway.New(2)
	require.NoError(t, err)

	for _, path := range []string{"/a", "/b", "/c"} {
		_, err = g.FetchJSON(context.Background(), srv.URL+path, time.Minute)
		require.NoError(t, err)
	}

	// "/a" was evicted by "/c", so fetching it again goes upstream.
	_, err = g.FetchJSON(context.Background(), srv.URL+"/a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}
