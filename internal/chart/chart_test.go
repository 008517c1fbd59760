package chart_test

import (
	"testing"
	"time"

	"cryptovektor-telegram-bot/internal/chart"
	"cryptovektor-telegram-bot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlySeries(base float64, step float64, n int) []types.PricePoint {
	start := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	points := make([]types.PricePoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, types.PricePoint{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Price: base + float64(i)*step,
		})
	}
	return points
}

func TestRenderProducesPNG(t *testing.T) {
	png, err := chart.Render("Bitcoin (BTC)", hourlySeries(50000, 37.5, 24))
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRenderFlatSeries(t *testing.T) {
	png, err := chart.Render("Tether (USDT)", hourlySeries(1.0, 0, 24))
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRenderRejectsShortSeries(t *testing.T) {
	_, err := chart.Render("Bitcoin (BTC)", hourlySeries(50000, 0, 1))
	require.Error(t, err)

	_, err = chart.Render("Bitcoin (BTC)", nil)
	require.Error(t, err)
}
