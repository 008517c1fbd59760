// Package gateway is the single road to the upstream market APIs: a TTL-aware,
// size-bounded cache in front of plain HTTP GET requests. Callers pick the TTL
// per call, so one URL can be fresh for a price lookup and stale-but-fine for
// a catalog listing.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultTTL suits most market endpoints.
	DefaultTTL = 120 * time.Second
	// LongTTL is for near-static catalogs such as the full coins list.
	LongTTL = 3600 * time.Second

	// DefaultCacheSize bounds the URL cache; least recently used entries
	// are evicted once the bot has touched more distinct URLs than this.
	DefaultCacheSize = 256

	fetchTimeout = 15 * time.Second
)

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptovektor",
		Subsystem: "gateway",
		Name:      "cache_hits_total",
		Help:      "The total number of fetches served from the cache",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptovektor",
		Subsystem: "gateway",
		Name:      "cache_misses_total",
		Help:      "The total number of fetches that went upstream",
	})
	fetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cryptovektor",
		Subsystem: "gateway",
		Name:      "fetch_errors_total",
		Help:      "The total number of upstream fetches that failed",
	})
)

func init() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
	prometheus.MustRegister(fetchErrors)
}

type entry struct {
	fetchedAt time.Time
	data      json.RawMessage
}

// Gateway fetches JSON documents over HTTP and caches them by exact URL.
type Gateway struct {
	client *http.Client
	cache  *lru.Cache[string, entry]
}

// New creates a gateway with an LRU cache of the given size.
func New(cacheSize int) (*Gateway, error) {
	cache, err := lru.New[string, entry](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create gateway cache")
	}

	return &Gateway{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  cache,
	}, nil
}

// FetchJSON returns the body of a GET request to url, served from cache when
// the cached copy is at most ttl old. Errors leave the cache untouched, so a
// stale-but-valid entry survives an upstream outage until it ages out.
func (g *Gateway) FetchJSON(ctx context.Context, url string, ttl time.Duration) (json.RawMessage, error) {
	if cached, ok := g.cache.Get(url); ok && time.Since(cached.fetchedAt) <= ttl {
		cacheHits.Inc()
		log.Debugf("gateway cache hit: %s", url)
		return cached.data, nil
	}
	cacheMisses.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fetchErrors.Inc()
		return nil, errors.Wrapf(err, "could not build request for %s", url)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		fetchErrors.Inc()
		return nil, errors.Wrapf(err, "could not fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fetchErrors.Inc()
		log.Warnf("gateway got %d from %s", resp.StatusCode, url)
		return nil, errors.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchErrors.Inc()
		return nil, errors.Wrapf(err, "could not read response from %s", url)
	}

	if !json.Valid(body) {
		fetchErrors.Inc()
		return nil, errors.Errorf("response from %s is not valid JSON", url)
	}

	g.cache.Add(url, entry{fetchedAt: time.Now(), data: body})
	return body, nil
}
