package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cryptovektor-telegram-bot/internal/chart"
	"cryptovektor-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandChart renders the 24h price chart PNG for a known coin id.
func (h *Handler) CommandChart(ctx context.Context, coinID string) ([]byte, string, error) {
	log.Debugf("processing command chart with argument :%s", coinID)

	if cachedItem, found := cacheGet(coinID); found {
		log.Debugf("returning cached chart for %s", coinID)
		return cachedItem.ChartData, cachedItem.Caption, nil
	}

	card, err := h.market.CoinCard(ctx, coinID)
	if err != nil {
		return nil, "", errors.Wrap(err, "command chart")
	}

	points, err := h.market.MarketChart(ctx, coinID)
	if err != nil {
		return nil, "", errors.Wrap(err, "command chart")
	}

	label := fmt.Sprintf("%s (%s)", card.Name, strings.ToUpper(card.Symbol))
	chartData, err := chart.Render(label, points)
	if err != nil {
		return nil, "", errors.Wrap(err, "command chart")
	}

	caption := translation.Translate("📈 %s 24h chart\n%s", strings.ToUpper(card.Symbol), nowString())
	cacheSet(coinID, chartData, caption, 5*time.Minute)

	return chartData, caption, nil
}
