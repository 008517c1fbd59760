package helpers

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoneyUS renders a USD amount with comma-grouped thousands. Amounts of
// one dollar and above keep the requested number of decimals; sub-dollar
// amounts get up to eight decimals with trailing zeros trimmed.
func FormatMoneyUS(value float64, decimals int) string {
	if value >= 1 {
		return "$" + printer.Sprintf("%.*f", decimals, value)
	}

	plain := fmt.Sprintf("%.8f", value)
	plain = strings.TrimRight(plain, "0")
	plain = strings.TrimRight(plain, ".")
	return "$" + plain
}

// FormatIntUS renders an integer with comma-grouped thousands.
func FormatIntUS(value int64) string {
	return humanize.Comma(value)
}

// FormatPercent renders a signed percentage with two decimals, e.g. "+1.00%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}
