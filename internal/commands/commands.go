package commands

import (
	"cryptovektor-telegram-bot/config"
	"cryptovektor-telegram-bot/internal/market"
	"cryptovektor-telegram-bot/lib/translation"
)

// Handler builds the message texts served by bot commands and menu sections.
type Handler struct {
	market *market.Client
}

func NewHandler(m *market.Client) *Handler {
	return &Handler{market: m}
}

// CommandStart returns the greeting shown on /start.
func (h *Handler) CommandStart() string {
	return translation.Translate(
		"<b>🚀 CryptoVektorPro</b>\n\nWelcome! Your companion in the world of crypto.\nPick a section below.\n\n<a href=\"%s\">📢 Our channel</a>",
		config.GetString("channel_url"),
	)
}

// CommandHelp returns the command reference shown on /help.
func (h *Handler) CommandHelp() string {
	return translation.Translate(
		"<b>📋 Bot commands:</b>\n\n/start - Main menu\n/coin &lt;name&gt; - Coin details\n/alert - Alert setup\n/help - This message\n\nUse the buttons to navigate!",
	)
}

// MainMenuText returns the body shown above the main menu keyboard.
func (h *Handler) MainMenuText() string {
	return translation.Translate("<b>🚀 CryptoVektorPro</b>\n\nPick a section:")
}

// CoinUsageText returns the hint shown when /coin is called without arguments.
func (h *Handler) CoinUsageText() string {
	return translation.Translate("Usage: /coin &lt;name&gt;\nExample: /coin bitcoin")
}

// NavigationHintText returns the reply to plain text messages.
func (h *Handler) NavigationHintText() string {
	return translation.Translate(
		"Use commands or the menu buttons to navigate!\n\n/start - main menu\n/help - command reference\n/coin &lt;name&gt; - coin details",
	)
}
