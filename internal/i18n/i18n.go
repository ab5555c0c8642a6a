package i18n

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"

	"weather-chatbot/client/internal/model"
)

// Translator resolves UI strings for the current language. It is the single
// source of localized text for every component.
type Translator struct {
	uni *ut.UniversalTranslator

	mu   sync.RWMutex
	lang model.Language
}

// New builds a Translator with the built-in en/ja catalogue and lang as the
// current language.
func New(lang model.Language) (*Translator, error) {
	english := en.New()
	uni := ut.New(english, english, ja.New())

	for language, entries := range catalog {
		trans, found := uni.GetTranslator(string(language))
		if !found {
			return nil, fmt.Errorf("no locale registered for language %q", language)
		}
		for key, text := range entries {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("failed to register translation %q for %q: %w", key, language, err)
			}
		}
	}

	if _, ok := model.ParseLanguage(string(lang)); !ok {
		lang = model.LanguageEnglish
	}
	return &Translator{uni: uni, lang: lang}, nil
}

// Language returns the current language.
func (t *Translator) Language() model.Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage switches the current language. Unknown languages are ignored.
func (t *Translator) SetLanguage(lang model.Language) {
	if _, ok := model.ParseLanguage(string(lang)); !ok {
		slog.Warn("Ignoring unsupported language", "language", lang)
		return
	}
	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()
}

// T translates key in the current language.
func (t *Translator) T(key string, params ...string) string {
	return t.TFor(t.Language(), key, params...)
}

// TFor translates key in lang. A missing key is logged and the key itself is
// returned so the UI never renders an empty label.
func (t *Translator) TFor(lang model.Language, key string, params ...string) string {
	trans := t.translator(lang)
	text, err := trans.T(key, padParams(params)...)
	if err != nil {
		slog.Warn("Translation missing", "key", key, "language", lang, "error", err)
		return key
	}
	return text
}

// Has reports whether key exists in the catalogue for lang.
func (t *Translator) Has(lang model.Language, key string) bool {
	_, err := t.translator(lang).T(key, padParams(nil)...)
	return err == nil
}

// maxParams bounds the placeholders any catalogue entry uses. universal-translator
// indexes params positionally, so short argument lists are padded with blanks.
const maxParams = 4

func padParams(params []string) []string {
	if len(params) >= maxParams {
		return params
	}
	padded := make([]string, maxParams)
	copy(padded, params)
	return padded
}

func (t *Translator) translator(lang model.Language) ut.Translator {
	trans, found := t.uni.GetTranslator(string(lang))
	if !found {
		trans = t.uni.GetFallback()
	}
	return trans
}
