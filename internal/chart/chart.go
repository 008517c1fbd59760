package chart

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"cryptovektor-telegram-bot/internal/types"
	"cryptovektor-telegram-bot/lib/helpers"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	backgroundColor = drawing.Color{R: 55, G: 55, B: 55, A: 255}
	textColor       = drawing.Color{R: 200, G: 200, B: 200, A: 255}
	gridColor       = drawing.Color{R: 100, G: 100, B: 100, A: 128}
	seriesColor     = drawing.Color{R: 0, G: 122, B: 255, A: 255}
)

var (
	fontOnce  sync.Once
	chartFont *truetype.Font
	fontErr   error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		chartFont, fontErr = chart.GetDefaultFont()
	})
	return chartFont, fontErr
}

// Render draws a dark-themed 24h price chart PNG for the given series.
func Render(label string, points []types.PricePoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, errors.New("not enough points to draw a chart")
	}

	font, err := loadFont()
	if err != nil {
		return nil, errors.Wrap(err, "loading chart font")
	}

	times := make([]time.Time, 0, len(points))
	prices := make([]float64, 0, len(points))
	for _, p := range points {
		times = append(times, p.Time)
		prices = append(prices, p.Price)
	}

	minPrice, maxPrice := minMax(prices)
	padding := (maxPrice - minPrice) * 0.1
	if padding <= 0 {
		padding = math.Abs(maxPrice) * 0.05
		if padding == 0 {
			padding = 1
		}
	}

	decimals := priceDecimals(maxPrice)

	graph := chart.Chart{
		Title:      fmt.Sprintf("%s 24h price chart", label),
		TitleStyle: chart.Style{FontColor: textColor, FontSize: 14},
		Width:      1200,
		Height:     400,
		Font:       font,
		Background: chart.Style{FillColor: backgroundColor},
		Canvas:     chart.Style{FillColor: backgroundColor},
		XAxis: chart.XAxis{
			Style:          chart.Style{FontColor: textColor, StrokeColor: textColor},
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1.0},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor, StrokeColor: textColor},
			Range: &chart.ContinuousRange{Min: minPrice - padding, Max: maxPrice + padding},
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return helpers.FormatMoneyUS(f, decimals)
			},
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1.0},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Style: chart.Style{
					StrokeColor: seriesColor,
					StrokeWidth: 2,
					FillColor:   seriesColor.WithAlpha(25),
				},
				XValues: times,
				YValues: prices,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering chart")
	}

	return buf.Bytes(), nil
}

func minMax(prices []float64) (min, max float64) {
	min, max = prices[0], prices[0]
	for _, price := range prices {
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}
	return min, max
}

func priceDecimals(maxPrice float64) int {
	switch {
	case maxPrice >= 1000:
		return 0
	case maxPrice >= 1:
		return 2
	default:
		return 4
	}
}
