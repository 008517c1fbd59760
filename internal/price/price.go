package price

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"cryptovektor-telegram-bot/internal/gateway"

	log "github.com/sirupsen/logrus"
)

// TTL keeps repeated lookups within an alert burst off the upstream API
// while staying much shorter than any alert interval.
const TTL = 30 * time.Second

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Source resolves current USD prices through the cached gateway.
type Source struct {
	Gateway *gateway.Gateway
	BaseURL string
}

func NewSource(gw *gateway.Gateway) *Source {
	return &Source{Gateway: gw, BaseURL: defaultBaseURL}
}

// SimplePrice returns the current USD price of a coin. The bool is false when
// the upstream is unavailable, the coin is missing from the response, or the
// response carries no usd quote; none of these are errors to the caller.
func (s *Source) SimplePrice(ctx context.Context, coinID string) (float64, bool) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", s.BaseURL, url.QueryEscape(coinID))

	raw, err := s.Gateway.FetchJSON(ctx, endpoint, TTL)
	if err != nil {
		log.Warnf("price lookup for %s failed: %v", coinID, err)
		return 0, false
	}

	var quotes map[string]struct {
		USD *float64 `json:"usd"`
	}
	if err := json.Unmarshal(raw, &quotes); err != nil {
		log.Warnf("price lookup for %s returned malformed data: %v", coinID, err)
		return 0, false
	}

	quote, ok := quotes[coinID]
	if !ok || quote.USD == nil {
		return 0, false
	}

	return *quote.USD, true
}
