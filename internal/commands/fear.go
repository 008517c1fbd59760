package commands

import (
	"context"
	"html"

	"cryptovektor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandFearGreed renders the Fear and Greed index section.
func (h *Handler) CommandFearGreed(ctx context.Context) (string, error) {
	log.Debug("processing section fear")

	index, err := h.market.FearGreed(ctx)
	if err != nil {
		return "", errors.Wrap(err, "section fear")
	}

	return translation.Translate(
		"<b>😱 Fear and Greed Index</b>\n\nValue: %d\nCategory: %s\nUpdated: %s",
		index.Value,
		html.EscapeString(index.Classification),
		index.UpdatedAt.Format("2006-01-02 15:04 UTC"),
	), nil
}
