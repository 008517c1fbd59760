package types

import "time"

// GlobalMetrics is the market-wide overview.
type GlobalMetrics struct {
	ActiveCryptocurrencies int64
	Markets                int64
	TotalMarketCapUSD      float64
	TotalVolumeUSD         float64
	BTCDominancePct        float64
	ETHDominancePct        float64
}

// MarketCoin is one row of the market-cap ranked listing. The 24h change is
// a pointer because the upstream reports null for thinly traded coins.
type MarketCoin struct {
	ID            string   `json:"id"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	CurrentPrice  float64  `json:"current_price"`
	MarketCap     float64  `json:"market_cap"`
	MarketCapRank int      `json:"market_cap_rank"`
	Change24hPct  *float64 `json:"price_change_percentage_24h"`
}

// TrendingCoin is one entry of the trending search listing.
type TrendingCoin struct {
	ID            string
	Name          string
	Symbol        string
	MarketCapRank int
}

// Pair is one exchange trading pair with its reported volume.
type Pair struct {
	Base     string
	Target   string
	Exchange string
	Price    float64
	Volume   float64
}

// CoinDetail is the data behind a single coin card.
type CoinDetail struct {
	ID           string
	Name         string
	Symbol       string
	PriceUSD     float64
	MarketCapUSD float64
	Volume24hUSD float64
	Change24hPct *float64
}

// PricePoint is one sample of a price series.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// FearGreedIndex is the market sentiment reading.
type FearGreedIndex struct {
	Value          int
	Classification string
	UpdatedAt      time.Time
}

// DefiChain is one chain's total value locked entry.
type DefiChain struct {
	Name        string   `json:"name"`
	TVL         float64  `json:"tvl"`
	Change1dPct *float64 `json:"change_1d"`
}
