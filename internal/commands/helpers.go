package commands

import (
	"strconv"
	"time"

	"cryptovektor-telegram-bot/lib/helpers"
)

func nowString() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func pctOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return helpers.FormatPercent(*v)
}

func rankOrUnknown(rank int) string {
	if rank <= 0 {
		return "?"
	}
	return strconv.Itoa(rank)
}
