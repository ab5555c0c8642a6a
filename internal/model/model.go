package model

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// UnmarshalText rejects roles other than user and assistant so that a
// corrupted slot never produces a message with an open-ended role.
func (r *Role) UnmarshalText(text []byte) error {
	role := Role(text)
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", string(text))
	}
	*r = role
	return nil
}

// Language is a UI language supported by the application.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
)

// ParseLanguage returns the Language named by s. Only "en" and "ja" are accepted.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, true
	case LanguageJapanese:
		return LanguageJapanese, true
	}
	return "", false
}

// DetectLanguage maps a locale string such as "ja_JP.UTF-8" or "ja-JP" to a
// Language. Anything that is not Japanese falls back to English.
func DetectLanguage(locale string) Language {
	if strings.HasPrefix(strings.ToLower(locale), "ja") {
		return LanguageJapanese
	}
	return LanguageEnglish
}

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the Theme named by s.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// ChatMessage is a single entry of a session transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Location is an immutable place record. Sessions hold it by pointer, but a
// new value is always created when the location changes.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// DisplayName renders "Name, State, Country" skipping empty parts.
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.State, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ChatSession is one persisted conversation thread.
type ChatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	Location  *Location     `json:"location"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Clone returns a deep copy so callers can never mutate registry state.
func (s ChatSession) Clone() ChatSession {
	out := s
	if s.Messages != nil {
		out.Messages = make([]ChatMessage, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	return out
}

// LastMessage returns the most recent message of the session.
func (s ChatSession) LastMessage() (ChatMessage, bool) {
	if len(s.Messages) == 0 {
		return ChatMessage{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// HasUserMessage reports whether the user has written anything in the session.
func (s ChatSession) HasUserMessage() bool {
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// RecentMessages returns up to n of the latest messages, oldest first.
func (s ChatSession) RecentMessages(n int) []ChatMessage {
	if n <= 0 || len(s.Messages) == 0 {
		return []ChatMessage{}
	}
	start := len(s.Messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]ChatMessage, len(s.Messages)-start)
	copy(out, s.Messages[start:])
	return out
}

// WeatherSnapshot is the current conditions for a place. Temperatures are in
// Celsius, sunrise and sunset are epoch seconds.
type WeatherSnapshot struct {
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Temp          float64 `json:"temp"`
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Condition     string  `json:"condition"`
	ConditionCode int     `json:"conditionCode"`
	Icon          string  `json:"icon"`
	Sunrise       int64   `json:"sunrise"`
	Sunset        int64   `json:"sunset"`
}

// ForecastItem is a single day of a forecast. Date is formatted YYYY-MM-DD,
// optionally followed by a time of day.
type ForecastItem struct {
	Date      string  `json:"date"`
	Temp      float64 `json:"temp"`
	TempMin   float64 `json:"tempMin"`
	TempMax   float64 `json:"tempMax"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

type Forecast struct {
	City  string         `json:"city"`
	Items []ForecastItem `json:"items"`
}

// RequestLocation is the location shape sent with a chat request.
type RequestLocation struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ChatRequest is what the orchestrator hands to the remote chat client.
type ChatRequest struct {
	Message  string
	Location *RequestLocation
	Language Language
	History  []ChatMessage
}

// ChatResponse is the reply of the remote chat completion.
type ChatResponse struct {
	Response string           `json:"response"`
	Weather  *WeatherSnapshot `json:"weather,omitempty"`
}
