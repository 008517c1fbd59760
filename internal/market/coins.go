package market

import (
	"context"
	"encoding/json"
	"strings"

	"cryptovektor-telegram-bot/internal/gateway"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type listedCoin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// coinsList fetches the full coin catalog; the gateway keeps it for an hour.
func (c *Client) coinsList(ctx context.Context) ([]listedCoin, error) {
	raw, err := c.Gateway.FetchJSON(ctx, c.CoinGeckoBase+"/coins/list", gateway.LongTTL)
	if err != nil {
		return nil, errors.Wrap(err, "coins list")
	}

	var coins []listedCoin
	if err := json.Unmarshal(raw, &coins); err != nil {
		return nil, errors.Wrap(err, "could not parse coins list")
	}

	return coins, nil
}

// FindCoinID resolves free-form user input to a canonical coin id. Exact
// matches on id, symbol or name win; partial symbol matches beat partial
// name matches.
func (c *Client) FindCoinID(ctx context.Context, query string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return "", false
	}

	coins, err := c.coinsList(ctx)
	if err != nil {
		log.Warnf("coin lookup for %q failed: %v", query, err)
		return "", false
	}

	for _, coin := range coins {
		if query == strings.ToLower(coin.ID) ||
			query == strings.ToLower(coin.Symbol) ||
			query == strings.ToLower(coin.Name) {
			return coin.ID, true
		}
	}

	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Symbol), query) {
			return coin.ID, true
		}
	}

	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Name), query) {
			return coin.ID, true
		}
	}

	return "", false
}
