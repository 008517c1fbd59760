package translation_test

import (
	"testing"

	"cryptovektor-telegram-bot/lib/translation"

	"github.com/stretchr/testify/assert"
)

func TestTranslateFallsBackToMessageID(t *testing.T) {
	// Without a locale directory the English message id is the message.
	assert.Equal(t, "🔔 BTC: $1.00", translation.Translate("🔔 %s: %s", "BTC", "$1.00"))
	assert.Equal(t, "plain text", translation.Translate("plain text"))
}

func TestGetLanguageDefaults(t *testing.T) {
	assert.NotEmpty(t, translation.GetLanguage())
}
