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

// CommandDefi renders the top DeFi chains by total value locked.
func (h *Handler) CommandDefi(ctx context.Context) (string, error) {
	log.Debug("processing section defi")

	chains, err := h.market.DefiChains(ctx)
	if err != nil {
		return "", errors.Wrap(err, "section defi")
	}

	lines := []string{translation.Translate("<b>💎 DeFi metrics (Top-5 chains by TVL)</b>") + "\n"}
	for i, ch := range chains {
		lines = append(lines, translation.Translate(
			"%d. %s\n   TVL: %s\n   1d change: %s\n",
			i+1,
			html.EscapeString(ch.Name),
			helpers.FormatMoneyUS(ch.TVL, 0),
			pctOrNA(ch.Change1dPct),
		))
	}
	lines = append(lines, translation.Translate("<i>Updated: %s</i>", nowString()))

	return strings.Join(lines, "\n"), nil
}
