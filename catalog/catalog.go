// Package catalog resolves business-error message keys to user-facing text.
// Keys such as "1.01.01.1012" are stable API; the localized wording is not.
// Translations are embedded YAML bundles loaded through go-i18n.
package catalog

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *i18n.Localizer
)

// Init loads the embedded locale bundles and activates lang. It is called
// lazily with "en" on first use when the caller never initializes a language.
func Init(lang string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = bundle.ParseMessageFileBytes(data, f.Name())
	}

	mu.Lock()
	localizer = i18n.NewLocalizer(bundle, lang, "en")
	mu.Unlock()
}

// T translates a message key. Unknown keys fall back to the key itself so a
// missing translation never hides which failure occurred.
func T(messageID string) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()

	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// SetLang switches the active language.
func SetLang(lang string) {
	Init(lang)
}
