package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"cryptovektor-telegram-bot/internal/gateway"
	"cryptovektor-telegram-bot/internal/types"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultCoinGeckoBase = "https://api.coingecko.com/api/v3"
	defaultFearGreedURL  = "https://api.alternative.me/fng/"
	defaultDefiLlamaURL  = "https://api.llama.fi/chains"

	topCoinsCount  = 10
	topPairsCount  = 10
	topChainsCount = 5
)

// Client reads market data through the cached gateway. The URL fields are
// exported so tests can point it at a local server.
type Client struct {
	Gateway       *gateway.Gateway
	CoinGeckoBase string
	FearGreedURL  string
	DefiLlamaURL  string
}

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{
		Gateway:       gw,
		CoinGeckoBase: defaultCoinGeckoBase,
		FearGreedURL:  defaultFearGreedURL,
		DefiLlamaURL:  defaultDefiLlamaURL,
	}
}

func debugDump(label string, v interface{}) {
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("%s: %s", label, spew.Sdump(v))
	}
}

// GlobalMetrics returns the market-wide overview.
func (c *Client) GlobalMetrics(ctx context.Context) (*types.GlobalMetrics, error) {
	raw, err := c.Gateway.FetchJSON(ctx, c.CoinGeckoBase+"/global", gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrap(err, "global metrics")
	}

	var payload struct {
		Data struct {
			ActiveCryptocurrencies int64              `json:"active_cryptocurrencies"`
			Markets                int64              `json:"markets"`
			TotalMarketCap         map[string]float64 `json:"total_market_cap"`
			TotalVolume            map[string]float64 `json:"total_volume"`
			MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "could not parse global metrics")
	}
	debugDump("global metrics", payload.Data)

	return &types.GlobalMetrics{
		ActiveCryptocurrencies: payload.Data.ActiveCryptocurrencies,
		Markets:                payload.Data.Markets,
		TotalMarketCapUSD:      payload.Data.TotalMarketCap["usd"],
		TotalVolumeUSD:         payload.Data.TotalVolume["usd"],
		BTCDominancePct:        payload.Data.MarketCapPercentage["btc"],
		ETHDominancePct:        payload.Data.MarketCapPercentage["eth"],
	}, nil
}

// TopCoins returns the top coins by market cap.
func (c *Client) TopCoins(ctx context.Context) ([]types.MarketCoin, error) {
	endpoint := fmt.Sprintf(
		"%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1",
		c.CoinGeckoBase, topCoinsCount,
	)

	raw, err := c.Gateway.FetchJSON(ctx, endpoint, gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrap(err, "top coins")
	}

	var coins []types.MarketCoin
	if err := json.Unmarshal(raw, &coins); err != nil {
		return nil, errors.Wrap(err, "could not parse top coins")
	}
	debugDump("top coins", coins)

	return coins, nil
}

// Trending returns the currently trending coins.
func (c *Client) Trending(ctx context.Context) ([]types.TrendingCoin, error) {
	raw, err := c.Gateway.FetchJSON(ctx, c.CoinGeckoBase+"/search/trending", gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrap(err, "trending coins")
	}

	var payload struct {
		Coins []struct {
			Item struct {
				ID            string `json:"id"`
				Name          string `json:"name"`
				Symbol        string `json:"symbol"`
				MarketCapRank int    `json:"market_cap_rank"`
			} `json:"item"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "could not parse trending coins")
	}

	trending := make([]types.TrendingCoin, 0, len(payload.Coins))
	for _, coin := range payload.Coins {
		trending = append(trending, types.TrendingCoin{
			ID:            coin.Item.ID,
			Name:          coin.Item.Name,
			Symbol:        coin.Item.Symbol,
			MarketCapRank: coin.Item.MarketCapRank,
		})
	}

	return trending, nil
}

// TopPairs aggregates exchange tickers of the top coins and returns the
// highest-volume pairs. Coins whose tickers cannot be fetched are skipped.
func (c *Client) TopPairs(ctx context.Context) ([]types.Pair, error) {
	coins, err := c.TopCoins(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "top pairs")
	}

	var pairs []types.Pair
	for _, coin := range coins {
		endpoint := fmt.Sprintf("%s/coins/%s/tickers", c.CoinGeckoBase, url.PathEscape(coin.ID))
		raw, err := c.Gateway.FetchJSON(ctx, endpoint, gateway.DefaultTTL)
		if err != nil {
			log.Warnf("skipping tickers for %s: %v", coin.ID, err)
			continue
		}

		var payload struct {
			Tickers []struct {
				Base   string  `json:"base"`
				Target string  `json:"target"`
				Last   float64 `json:"last"`
				Volume float64 `json:"volume"`
				Market struct {
					Name string `json:"name"`
				} `json:"market"`
			} `json:"tickers"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			log.Warnf("skipping malformed tickers for %s: %v", coin.ID, err)
			continue
		}

		for _, t := range payload.Tickers {
			if t.Volume == 0 || t.Last == 0 || t.Base == "" || t.Target == "" || t.Market.Name == "" {
				continue
			}
			pairs = append(pairs, types.Pair{
				Base:     t.Base,
				Target:   t.Target,
				Exchange: t.Market.Name,
				Price:    t.Last,
				Volume:   t.Volume,
			})
		}
	}

	if len(pairs) == 0 {
		return nil, errors.New("no pair data available")
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Volume > pairs[j].Volume })
	if len(pairs) > topPairsCount {
		pairs = pairs[:topPairsCount]
	}

	return pairs, nil
}

// CoinCard returns the card data for a single coin.
func (c *Client) CoinCard(ctx context.Context, coinID string) (*types.CoinDetail, error) {
	endpoint := fmt.Sprintf(
		"%s/coins/%s?localization=false&tickers=false&market_data=true",
		c.CoinGeckoBase, url.PathEscape(coinID),
	)

	raw, err := c.Gateway.FetchJSON(ctx, endpoint, gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrapf(err, "coin card for %s", coinID)
	}

	var payload struct {
		ID         string `json:"id"`
		Symbol     string `json:"symbol"`
		Name       string `json:"name"`
		MarketData struct {
			CurrentPrice map[string]float64 `json:"current_price"`
			MarketCap    map[string]float64 `json:"market_cap"`
			TotalVolume  map[string]float64 `json:"total_volume"`
			Change24hPct *float64           `json:"price_change_percentage_24h"`
		} `json:"market_data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrapf(err, "could not parse coin card for %s", coinID)
	}
	debugDump("coin card", payload)

	return &types.CoinDetail{
		ID:           payload.ID,
		Name:         payload.Name,
		Symbol:       payload.Symbol,
		PriceUSD:     payload.MarketData.CurrentPrice["usd"],
		MarketCapUSD: payload.MarketData.MarketCap["usd"],
		Volume24hUSD: payload.MarketData.TotalVolume["usd"],
		Change24hPct: payload.MarketData.Change24hPct,
	}, nil
}

// MarketChart returns the 24h USD price series of a coin.
func (c *Client) MarketChart(ctx context.Context, coinID string) ([]types.PricePoint, error) {
	endpoint := fmt.Sprintf(
		"%s/coins/%s/market_chart?vs_currency=usd&days=1",
		c.CoinGeckoBase, url.PathEscape(coinID),
	)

	raw, err := c.Gateway.FetchJSON(ctx, endpoint, gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrapf(err, "market chart for %s", coinID)
	}

	var payload struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrapf(err, "could not parse market chart for %s", coinID)
	}
	if len(payload.Prices) == 0 {
		return nil, errors.Errorf("empty market chart for %s", coinID)
	}

	points := make([]types.PricePoint, 0, len(payload.Prices))
	for _, sample := range payload.Prices {
		if len(sample) < 2 {
			continue
		}
		points = append(points, types.PricePoint{
			Time:  time.UnixMilli(int64(sample[0])),
			Price: sample[1],
		})
	}

	return points, nil
}

// FearGreed returns the current fear and greed index reading.
func (c *Client) FearGreed(ctx context.Context) (*types.FearGreedIndex, error) {
	raw, err := c.Gateway.FetchJSON(ctx, c.FearGreedURL, gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrap(err, "fear and greed index")
	}

	// The index API reports numbers as strings.
	var payload struct {
		Data []struct {
			Value               string `json:"value"`
			ValueClassification string `json:"value_classification"`
			Timestamp           string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Wrap(err, "could not parse fear and greed index")
	}
	if len(payload.Data) == 0 {
		return nil, errors.New("fear and greed index has no data")
	}

	latest := payload.Data[0]
	value, err := strconv.Atoi(latest.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "bad fear and greed value %q", latest.Value)
	}
	unix, err := strconv.ParseInt(latest.Timestamp, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "bad fear and greed timestamp %q", latest.Timestamp)
	}

	return &types.FearGreedIndex{
		Value:          value,
		Classification: latest.ValueClassification,
		UpdatedAt:      time.Unix(unix, 0).UTC(),
	}, nil
}

// DefiChains returns the top chains by total value locked.
func (c *Client) DefiChains(ctx context.Context) ([]types.DefiChain, error) {
	raw, err := c.Gateway.FetchJSON(ctx, c.DefiLlamaURL, gateway.DefaultTTL)
	if err != nil {
		return nil, errors.Wrap(err, "defi chains")
	}

	var chains []types.DefiChain
	if err := json.Unmarshal(raw, &chains); err != nil {
		return nil, errors.Wrap(err, "could not parse defi chains")
	}

	sort.Slice(chains, func(i, j int) bool { return chains[i].TVL > chains[j].TVL })
	if len(chains) > topChainsCount {
		chains = chains[:topChainsCount]
	}

	return chains, nil
}
