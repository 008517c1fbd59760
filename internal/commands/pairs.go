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

// CommandPairs renders the top trading pairs by volume.
func (h *Handler) CommandPairs(ctx context.Context) (string, error) {
	log.Debug("processing section pairs")

	pairs, err := h.market.TopPairs(ctx)
	if err != nil {
		return "", errors.Wrap(err, "section pairs")
	}

	lines := []string{translation.Translate("<b>💹 Top 10 trading pairs by volume</b>") + "\n"}
	for i, p := range pairs {
		lines = append(lines, translation.Translate(
			"%d. <b>%s/%s</b> on <i>%s</i>\n   Price: %s\n   Volume: %s\n",
			i+1,
			html.EscapeString(p.Base),
			html.EscapeString(p.Target),
			html.EscapeString(p.Exchange),
			helpers.FormatMoneyUS(p.Price, 6),
			helpers.FormatMoneyUS(p.Volume, 0),
		))
	}
	lines = append(lines, translation.Translate("<i>Updated: %s</i>", nowString()))

	return strings.Join(lines, "\n"), nil
}
