package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cryptovektor-telegram-bot/config"
	"cryptovektor-telegram-bot/lib/translation"
)

type alertCoin struct {
	ID    string
	Label string
}

// alertCoins are the coins offered on the alert keyboard.
var alertCoins = []alertCoin{
	{"bitcoin", "BTC"},
	{"ethereum", "ETH"},
	{"tether", "USDT"},
	{"binancecoin", "BNB"},
	{"solana", "SOL"},
	{"ripple", "XRP"},
	{"usd-coin", "USDC"},
	{"dogecoin", "DOGE"},
	{"cardano", "ADA"},
	{"tron", "TRX"},
	{"avalanche-2", "AVAX"},
	{"polkadot", "DOT"},
	{"shiba-inu", "SHIB"},
	{"chainlink", "LINK"},
	{"litecoin", "LTC"},
}

type alertInterval struct {
	Label   string
	Seconds int
}

var alertIntervals = []alertInterval{
	{"15 min", 15 * 60},
	{"30 min", 30 * 60},
	{"1 h", 60 * 60},
	{"2 h", 2 * 60 * 60},
	{"4 h", 4 * 60 * 60},
	{"12 h", 12 * 60 * 60},
	{"24 h", 24 * 60 * 60},
}

func alertCoinLabel(coinID string) string {
	for _, c := range alertCoins {
		if c.ID == coinID {
			return c.Label
		}
	}
	return strings.ToUpper(coinID)
}

func intervalText(seconds int) string {
	if seconds < 3600 {
		return translation.Translate("%d min", seconds/60)
	}
	return translation.Translate("%d h", seconds/3600)
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🌍 Global metrics"), "global")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🏆 Top-10 coins"), "top10")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔥 Trending coins"), "trending")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("💹 Top pairs by volume"), "pairs")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("😱 Fear/Greed index"), "fear")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("💎 DeFi metrics"), "defi")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔔 Alerts"), "alerts_menu")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(translation.Translate("📢 CryptoVektorPro channel"), config.GetString("channel_url"))),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔙 Back"), "main_menu")),
	)
}

func alertsCoinKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, c := range alertCoins {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label, "alert_coin|"+c.ID))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(translation.Translate("❌ Disable all"), "alerts_clear"),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔙 Back"), "main_menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func alertsIntervalKeyboard(coinID string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, iv := range alertIntervals {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			translation.Translate(iv.Label),
			fmt.Sprintf("alert_set|%s|%d", coinID, iv.Seconds),
		))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔙 Back"), "alerts_menu"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func coinCardKeyboard(coinID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("📈 24h chart"), "chart|"+coinID)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔔 Alerts"), "alert_coin|"+coinID)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(translation.Translate("🔙 Back"), "main_menu")),
	)
}
