package commands

import (
	"context"
	"fmt"

	"cryptovektor-telegram-bot/lib/helpers"
	"cryptovektor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandGlobal renders the global market overview section.
func (h *Handler) CommandGlobal(ctx context.Context) (string, error) {
	log.Debug("processing section global")

	m, err := h.market.GlobalMetrics(ctx)
	if err != nil {
		return "", errors.Wrap(err, "section global")
	}

	return translation.Translate(
		"<b>🌍 Global metrics</b>\n\nActive cryptocurrencies: %s\nExchanges: %s\nTotal market cap: %s\n24h volume: %s\nBTC Dominance: %s\nETH Dominance: %s\n\n<i>Updated: %s</i>",
		helpers.FormatIntUS(m.ActiveCryptocurrencies),
		helpers.FormatIntUS(m.Markets),
		helpers.FormatMoneyUS(m.TotalMarketCapUSD, 0),
		helpers.FormatMoneyUS(m.TotalVolumeUSD, 0),
		fmt.Sprintf("%.2f%%", m.BTCDominancePct),
		fmt.Sprintf("%.2f%%", m.ETHDominancePct),
		nowString(),
	), nil
}
