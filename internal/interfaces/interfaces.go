package interfaces

import (
	"context"

	"weather-chatbot/client/internal/bridge"
	"weather-chatbot/client/internal/chat"
	"weather-chatbot/client/internal/location"
	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/preferences"
	"weather-chatbot/client/internal/speech"
)

// This file defines the contracts the API layer and the CLI depend on, so
// they can be exercised against mocks.

// SessionService manages the chat session registry.
type SessionService interface {
	Sessions() []model.ChatSession
	ActiveSession() (model.ChatSession, bool)
	CreateSession(ctx context.Context) model.ChatSession
	SwitchSession(ctx context.Context, id string) bool
	DeleteSession(ctx context.Context, id string) bool
	ClearAllSessions(ctx context.Context) model.ChatSession
	UpdateSessionTitle(ctx context.Context, title string) bool
	UpdateSessionLocation(ctx context.Context, loc *model.Location) bool
}

// ChatService sends messages and reports the conversation state.
type ChatService interface {
	SendMessage(ctx context.Context, text string) error
	SendVoiceTranscript(ctx context.Context) error
	ClearError()
	State() chat.State
}

// VoiceInputService is the speech-to-text state machine.
type VoiceInputService interface {
	State() speech.InputState
	SetCapability(capability speech.Capability)
	StartListening() error
	StopListening()
	Cancel()
	ResetTranscript()
	Retry() error
}

// VoiceOutputService reads replies aloud.
type VoiceOutputService interface {
	State() speech.OutputState
	SetSupported(supported bool)
	SetEnabled(ctx context.Context, enabled bool) error
	Stop()
}

// LocationService drives location search and the weather refresh.
type LocationService interface {
	State() location.State
	SetQuery(query string)
	Select(ctx context.Context, loc model.Location) error
	BeginChange()
	Dismiss()
	ClearLocation(ctx context.Context) error
	UseCurrentLocation(ctx context.Context) (model.Location, error)
	DismissNotice()
}

// WeatherService exposes the weather cached for the active location.
type WeatherService interface {
	Snapshot() *model.WeatherSnapshot
	Forecast() *model.Forecast
}

// PreferencesService holds theme and language.
type PreferencesService interface {
	Get() preferences.Preferences
	SetTheme(ctx context.Context, theme model.Theme) error
	SetLanguage(ctx context.Context, lang model.Language) error
}

// Platform is the channel between the core and the UI shell that provides
// speech and geolocation.
type Platform interface {
	Commands() <-chan bridge.Command
	PublishRecognition(ctx context.Context, ev speech.RecognitionEvent) error
	PublishSynthesis(ctx context.Context, ev speech.SynthesisEvent) error
	ReportVoices(voices []speech.Voice)
	ResolvePosition(id string, pos location.Position, code string) error
}
