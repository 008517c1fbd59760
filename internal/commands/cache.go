package commands

import (
	"sync"
	"time"
)

type CacheItem struct {
	ChartData  []byte
	Caption    string
	Expiration time.Time
}

var (
	chartCache   = make(map[string]*CacheItem)
	chartCacheMu sync.Mutex
)

func cacheGet(coinID string) (*CacheItem, bool) {
	chartCacheMu.Lock()
	defer chartCacheMu.Unlock()

	if item, found := chartCache[coinID]; found && time.Now().Before(item.Expiration) {
		return item, true
	}
	return nil, false
}

func cacheSet(coinID string, chartData []byte, caption string, duration time.Duration) {
	chartCacheMu.Lock()
	defer chartCacheMu.Unlock()

	chartCache[coinID] = &CacheItem{
		ChartData:  chartData,
		Caption:    caption,
		Expiration: time.Now().Add(duration),
	}
}
