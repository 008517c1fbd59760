package commands

import (
	"context"
	"html"
	"strings"

	"cryptovektor-telegram-bot/lib/helpers"
	"cryptovektor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrCoinNotFound is returned when a query matches no listed coin.
var ErrCoinNotFound = errors.New("coin not found")

// CommandCoin resolves the query to a listed coin and returns its card
// together with the resolved id.
func (h *Handler) CommandCoin(ctx context.Context, query string) (string, string, error) {
	log.Debugf("processing command /coin with argument :%s", query)

	coinID, found := h.market.FindCoinID(ctx, query)
	if !found {
		return "", "", ErrCoinNotFound
	}

	text, err := h.CommandCoinByID(ctx, coinID)
	if err != nil {
		return "", "", errors.Wrap(err, "command /coin")
	}
	return text, coinID, nil
}

// CommandCoinByID renders the coin card for a known coin id.
func (h *Handler) CommandCoinByID(ctx context.Context, coinID string) (string, error) {
	card, err := h.market.CoinCard(ctx, coinID)
	if err != nil {
		return "", errors.Wrap(err, "coin card")
	}

	return translation.Translate(
		"<b>%s (%s)</b>\n\nPrice: %s\nMarket cap: %s\n24h volume: %s\n24h change: %s\n",
		html.EscapeString(card.Name),
		strings.ToUpper(card.Symbol),
		helpers.FormatMoneyUS(card.PriceUSD, 2),
		helpers.FormatMoneyUS(card.MarketCapUSD, 0),
		helpers.FormatMoneyUS(card.Volume24hUSD, 0),
		pctOrNA(card.Change24hPct),
	), nil
}
