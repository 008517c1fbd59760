package commands

import (
	"context"
	"html"
	"strings"

	"cryptovektor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandTrending renders the trending search coins section.
func (h *Handler) CommandTrending(ctx context.Context) (string, error) {
	log.Debug("processing section trending")

	trending, err := h.market.Trending(ctx)
	if err != nil {
		return "", errors.Wrap(err, "section trending")
	}

	lines := []string{translation.Translate("<b>🔥 Trending coins</b>") + "\n"}
	for i, coin := range trending {
		lines = append(lines, translation.Translate(
			"%d. <b>%s</b> (%s) - Rank: %s",
			i+1,
			html.EscapeString(coin.Name),
			html.EscapeString(coin.Symbol),
			rankOrUnknown(coin.MarketCapRank),
		))
	}
	lines = append(lines, "\n"+translation.Translate("<i>Updated: %s</i>", nowString()))

	return strings.Join(lines, "\n"), nil
}
