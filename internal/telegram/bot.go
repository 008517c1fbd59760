package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"cryptovektor-telegram-bot/internal/alert"
	"cryptovektor-telegram-bot/internal/commands"
	"cryptovektor-telegram-bot/lib/helpers"
	"cryptovektor-telegram-bot/lib/translation"
)

const requestTimeout = 30 * time.Second

// NewBot creates new telegram bot
func NewBot(c BotConfig, h *commands.Handler) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:      bot,
		Config:   c,
		commands: h,
	}, nil
}

// AttachAlertService wires the alert scheduler; call it before handling updates.
func (b *Bot) AttachAlertService(s *alert.Service) {
	b.alerts = s
}

// GetUpdatesChannel gets new updates updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(int64(m.ChatID), m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// Notify implements the alert notifier over plain chat messages.
func (b *Bot) Notify(chatID int64, text string) error {
	return b.SendMessage(Message{ChatID: int(chatID), Text: text})
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = keyboard
	if _, err := b.Bot.Send(msg); err != nil {
		log.Errorf("failed to send message: %v", err)
	}
}

func (b *Bot) editWithKeyboard(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := b.Bot.Send(msg); err != nil {
		log.Errorf("failed to edit message: %v", err)
	}
}

func (b *Bot) sendPhoto(chatID int64, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "chart.png",
		Bytes: data,
	})
	photo.Caption = caption
	if _, err := b.Bot.Send(photo); err != nil {
		log.Errorf("error sending chart: %v", err)
	}
}

// HandleUpdate processes Telegram updates
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	log.Debugf("received command: %s", u.Message.Command())

	switch u.Message.Command() {
	case "start":
		b.sendWithKeyboard(u.Message.Chat.ID, b.commands.CommandStart(), mainMenuKeyboard())
		return ""

	case "help":
		return b.commands.CommandHelp()

	case "coin":
		query := strings.TrimSpace(u.Message.CommandArguments())
		if query == "" {
			return b.commands.CoinUsageText()
		}
		text, coinID, err := b.commands.CommandCoin(ctx, query)
		if err != nil {
			log.Error(err)
			if errors.Is(err, commands.ErrCoinNotFound) {
				return translation.Translate("❌ Coin not found.")
			}
			return translation.Translate("❌ Failed to fetch data.")
		}
		b.sendWithKeyboard(u.Message.Chat.ID, text, coinCardKeyboard(coinID))
		return ""

	case "alert":
		b.sendWithKeyboard(u.Message.Chat.ID, b.alertsMenuText(u.Message.Chat.ID), alertsCoinKeyboard())
		return ""
	}

	return b.commands.NavigationHintText()
}

// HandleCallbackQuery routes inline keyboard presses.
func (b *Bot) HandleCallbackQuery(cq *tgbotapi.CallbackQuery) {
	if _, err := b.Bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.Errorf("failed to answer callback: %v", err)
	}
	if cq.Message == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	data := cq.Data

	switch {
	case data == "main_menu":
		b.editWithKeyboard(chatID, messageID, b.commands.MainMenuText(), mainMenuKeyboard())

	case data == "global":
		b.editSection(chatID, messageID, func() (string, error) { return b.commands.CommandGlobal(ctx) })

	case data == "top10":
		b.editSection(chatID, messageID, func() (string, error) { return b.commands.CommandTop10(ctx) })

	case data == "trending":
		b.editSection(chatID, messageID, func() (string, error) { return b.commands.CommandTrending(ctx) })

	case data == "pairs":
		b.editSection(chatID, messageID, func() (string, error) { return b.commands.CommandPairs(ctx) })

	case data == "fear":
		b.editSection(chatID, messageID, func() (string, error) { return b.commands.CommandFearGreed(ctx) })

	case data == "defi":
		b.editSection(chatID, messageID, func() (string, error) { return b.commands.CommandDefi(ctx) })

	case data == "alerts_menu":
		b.editWithKeyboard(chatID, messageID, b.alertsMenuText(chatID), alertsCoinKeyboard())

	case data == "alerts_clear":
		cleared := b.alerts.ClearAll(chatID)
		log.Debugf("cleared %d alerts for chat %d", cleared, chatID)
		b.editWithKeyboard(chatID, messageID, translation.Translate("✅ All alerts disabled."), alertsCoinKeyboard())

	case strings.HasPrefix(data, "alert_coin|"):
		parts := strings.Split(data, "|")
		if len(parts) < 2 {
			return
		}
		coinID := parts[1]
		text := translation.Translate("Selected coin <b>%s</b>.\nPick an alert interval:", alertCoinLabel(coinID))
		b.editWithKeyboard(chatID, messageID, text, alertsIntervalKeyboard(coinID))

	case strings.HasPrefix(data, "alert_set|"):
		parts := strings.Split(data, "|")
		if len(parts) < 3 {
			return
		}
		coinID := parts[1]
		seconds, err := strconv.Atoi(parts[2])
		if err != nil {
			seconds = 3600
		}
		b.alerts.Subscribe(chatID, coinID, alertCoinLabel(coinID), time.Duration(seconds)*time.Second)
		text := translation.Translate(
			"✅ Alerts enabled for <b>%s</b> every %s.",
			alertCoinLabel(coinID), intervalText(seconds),
		)
		b.editWithKeyboard(chatID, messageID, text, alertsCoinKeyboard())

	case strings.HasPrefix(data, "chart|"):
		parts := strings.Split(data, "|")
		if len(parts) < 2 {
			return
		}
		coinID := parts[1]
		chartData, caption, err := b.commands.CommandChart(ctx, coinID)
		if err != nil {
			log.Error(err)
			if err := b.SendMessage(Message{ChatID: int(chatID), Text: translation.Translate("❌ Could not render the chart.")}); err != nil {
				log.Error(err)
			}
			return
		}
		b.sendPhoto(chatID, chartData, caption)

		card, err := b.commands.CommandCoinByID(ctx, coinID)
		if err != nil {
			log.Error(err)
			return
		}
		b.sendWithKeyboard(chatID, card, coinCardKeyboard(coinID))

	default:
		log.Debugf("unknown callback: %s", data)
	}
}

func (b *Bot) editSection(chatID int64, messageID int, build func() (string, error)) {
	text, err := build()
	if err != nil {
		log.Error(err)
		text = translation.Translate("❌ Failed to fetch data.")
	}
	b.editWithKeyboard(chatID, messageID, text, backKeyboard())
}

// alertsMenuText lists the caller's active alerts above the coin picker.
func (b *Bot) alertsMenuText(chatID int64) string {
	text := translation.Translate("Pick a coin for alerts:")

	active := b.alerts.Active(chatID)
	if len(active) == 0 {
		return text
	}

	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n\n")
	sb.WriteString(translation.Translate("🔔 Active alerts:"))
	for _, snap := range active {
		sb.WriteString("\n")
		sb.WriteString(translation.Translate("• %s every %s", snap.Label, intervalText(int(snap.Interval/time.Second))))
		if snap.PriceSet {
			sb.WriteString(" (" + helpers.FormatMoneyUS(snap.LastPrice, 2) + ")")
		}
	}
	return sb.String()
}
