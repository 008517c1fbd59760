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

// CommandTop10 renders the top-10 coins by market cap.
func (h *Handler) CommandTop10(ctx context.Context) (string, error) {
	log.Debug("processing section top10")

	coins, err := h.market.TopCoins(ctx)
	if err != nil {
		return "", errors.Wrap(err, "section top10")
	}

	lines := []string{translation.Translate("<b>🏆 Top-10 cryptocurrencies</b>") + "\n"}
	for _, coin := range coins {
		lines = append(lines, translation.Translate(
			"%d. <b>%s</b> (%s)\n   Price: %s\n   MC: %s\n   24h: %s\n",
			coin.MarketCapRank,
			html.EscapeString(coin.Name),
			strings.ToUpper(coin.Symbol),
			helpers.FormatMoneyUS(coin.CurrentPrice, 2),
			helpers.FormatMoneyUS(coin.MarketCap, 0),
			pctOrNA(coin.Change24hPct),
		))
	}
	lines = append(lines, translation.Translate("<i>Updated: %s</i>", nowString()))

	return strings.Join(lines, "\n"), nil
}
