package alert

import (
	"strings"

	"cryptovektor-telegram-bot/lib/helpers"
	"cryptovektor-telegram-bot/lib/translation"
)

const alertPriceDecimals = 6

func enabledMessage(label string, price float64) string {
	return translation.Translate("🔔 Alerts enabled for %s: %s",
		strings.ToUpper(label), helpers.FormatMoneyUS(price, alertPriceDecimals))
}

func priceMessage(label string, price float64) string {
	return translation.Translate("🔔 %s: %s",
		strings.ToUpper(label), helpers.FormatMoneyUS(price, alertPriceDecimals))
}

func changeMessage(label string, price, changePct float64) string {
	direction := "➡️"
	if changePct > 0 {
		direction = "📈"
	} else if changePct < 0 {
		direction = "📉"
	}

	return translation.Translate("🔔 %s\nPrice: %s\n%s Change: %s",
		strings.ToUpper(label),
		helpers.FormatMoneyUS(price, alertPriceDecimals),
		direction,
		helpers.FormatPercent(changePct))
}

func unavailableMessage(label string) string {
	return translation.Translate("⚠️ Could not fetch the price of %s", strings.ToUpper(label))
}
