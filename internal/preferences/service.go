// Package preferences holds the theme and language the user picked.
package preferences

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
)

// Store persists the preferences.
type Store interface {
	Theme(ctx context.Context, fallback model.Theme) model.Theme
	SetTheme(ctx context.Context, theme model.Theme) error
	Language(ctx context.Context, fallback model.Language) model.Language
	SetLanguage(ctx context.Context, lang model.Language) error
}

// LanguageSetter is told about every language change, e.g. the translator
// and the speech input engine.
type LanguageSetter interface {
	SetLanguage(lang model.Language)
}

// Preferences is a snapshot of the service.
type Preferences struct {
	Theme    model.Theme    `json:"theme"`
	Language model.Language `json:"language"`
}

type Service struct {
	store     Store
	listeners []LanguageSetter

	mu    sync.Mutex
	theme model.Theme
	lang  model.Language
}

// NewService restores the stored preferences, using the defaults for
// anything missing, and pushes the language to the listeners.
func NewService(ctx context.Context, store Store, defaultTheme model.Theme, defaultLanguage model.Language, listeners ...LanguageSetter) *Service {
	s := &Service{
		store:     store,
		listeners: listeners,
		theme:     store.Theme(ctx, defaultTheme),
		lang:      store.Language(ctx, defaultLanguage),
	}
	for _, l := range s.listeners {
		l.SetLanguage(s.lang)
	}
	return s
}

func (s *Service) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Preferences{Theme: s.theme, Language: s.lang}
}

func (s *Service) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *Service) Language() model.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetTheme applies and persists theme. The new value is kept for the
// process even if persisting fails.
func (s *Service) SetTheme(ctx context.Context, theme model.Theme) error {
	if _, ok := model.ParseTheme(string(theme)); !ok {
		return fmt.Errorf("unknown theme %q: %w", theme, app_errors.ErrValidation)
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	if err := s.store.SetTheme(ctx, theme); err != nil {
		slog.Error("Failed to persist theme", "theme", theme, "error", err)
		return err
	}
	return nil
}

func (s *Service) ToggleTheme(ctx context.Context) (model.Theme, error) {
	next := model.ThemeDark
	if s.Theme() == model.ThemeDark {
		next = model.ThemeLight
	}
	return next, s.SetTheme(ctx, next)
}

// SetLanguage applies lang to every listener and persists it.
func (s *Service) SetLanguage(ctx context.Context, lang model.Language) error {
	if _, ok := model.ParseLanguage(string(lang)); !ok {
		return fmt.Errorf("unsupported language %q: %w", lang, app_errors.ErrValidation)
	}
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()

	for _, l := range s.listeners {
		l.SetLanguage(lang)
	}
	if err := s.store.SetLanguage(ctx, lang); err != nil {
		slog.Error("Failed to persist language", "language", lang, "error", err)
		return err
	}
	return nil
}

func (s *Service) ToggleLanguage(ctx context.Context) (model.Language, error) {
	next := model.LanguageJapanese
	if s.Language() == model.LanguageJapanese {
		next = model.LanguageEnglish
	}
	return next, s.SetLanguage(ctx, next)
}
