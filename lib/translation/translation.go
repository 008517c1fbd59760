package translation

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Configure points gotext at the bundled locale directory. Message IDs are
// plain English strings, so a missing locale still yields readable text.
func Configure(lang string) {
	gotext.Configure("locales", strings.ToLower(lang), "default")
}

func GetLanguage() string {
	lang := gotext.GetLanguage()

	if lang == "und" || lang == "" {
		return "en"
	}

	return lang
}

func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
