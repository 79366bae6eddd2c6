package i18n

import (
	"embed"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Message ids used by the chart and tooltip builders.
const (
	TooltipDay       = "tooltip_day"
	TooltipHours     = "tooltip_hours"
	TooltipMinutes   = "tooltip_minutes"
	TooltipSeconds   = "tooltip_seconds"
	ChartRow         = "chart_row"
	ChartTitle       = "chart_title"
	ChartAxisSeconds = "chart_axis_seconds"
	PageTitle        = "page_title"
)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// NewTranslator builds a Translator from the embedded active.*.toml files,
// falling back to English when defaultLocale does not parse.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("i18n: failed to load %s: %v", file, err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		localizers:      map[string]*i18n.Localizer{},
	}
}

// T renders the message identified by key for the given locale.
// Missing keys fall back to the default locale, then to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("i18n: localize failed (key=%s, locale=%q): %v", key, locale, err)
		return key
	}
	return msg
}

// localizer returns the cached Localizer for locale, whose fallback chain is
// locale, the default language, then English.
func (t *Translator) localizer(locale string) *i18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.localizers[locale]; ok {
		return l
	}
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String(), language.English.String())

	l := i18n.NewLocalizer(t.bundle, languages...)
	t.localizers[locale] = l
	return l
}
