package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is handed to OnMissing when localization runs
// without a translator configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves display text for a locale. Implementations usually
// wrap a message catalog; the text passed in doubles as the lookup key.
type Translator interface {
	Translate(locale, key string) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string) (string, error)

func (fn TranslatorFunc) Translate(locale, key string) (string, error) {
	return fn(locale, key)
}

// MissingTranslationHandler decides what to show when a lookup fails. It
// receives the untranslated text as fallback.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Localize translates text through the options' translator, best-effort:
// lookup failures route through OnMissing and otherwise keep the original
// text, so rendering never breaks on an incomplete catalog.
func (o RenderOptions) Localize(text string) string {
	key := strings.TrimSpace(text)
	if key == "" {
		return text
	}

	if o.Translator == nil {
		if o.OnMissing != nil {
			return o.OnMissing(o.Locale, key, text, ErrMissingTranslator)
		}
		return text
	}

	translated, err := o.Translator.Translate(o.Locale, key)
	if err == nil && strings.TrimSpace(translated) != "" {
		return translated
	}
	if o.OnMissing != nil {
		return o.OnMissing(o.Locale, key, text, err)
	}
	return text
}
