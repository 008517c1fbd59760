package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cryptovektor-telegram-bot/internal/alert"
	"cryptovektor-telegram-bot/internal/commands"
)

// BotConfig configuration of the bot
type BotConfig struct {
	Token          string
	Debug          bool
	UpdatesTimeout int
}

// Bot telegram interaction client
type Bot struct {
	Bot      *tgbotapi.BotAPI
	Config   BotConfig
	commands *commands.Handler
	alerts   *alert.Service
}

// Message a telegram message struct
type Message struct {
	ChatID    int
	MessageID int
	Text      string
}
