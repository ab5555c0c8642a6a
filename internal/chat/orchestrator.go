// Package chat sends user messages to the backend and records the replies
// in the session they were sent from.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/speech"
)

// DefaultHistoryWindow is the number of earlier messages sent as context.
const DefaultHistoryWindow = 10

// ChatClient produces assistant replies.
type ChatClient interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}

// Sessions is the part of the session manager the orchestrator writes to.
type Sessions interface {
	ActiveSession() (model.ChatSession, bool)
	AddMessageTo(ctx context.Context, id string, msg model.ChatMessage) bool
}

// Speaker reads replies aloud when the user enabled it.
type Speaker interface {
	Enabled() bool
	Speak(text string) error
}

// Transcript is the voice input the orchestrator can submit.
type Transcript interface {
	State() speech.InputState
	ResetTranscript()
}

type LanguageSource interface {
	Language() model.Language
}

type Localizer interface {
	T(key string, params ...string) string
}

// WeatherSink receives weather data returned alongside a reply.
type WeatherSink interface {
	SetSnapshot(s *model.WeatherSnapshot)
}

// State is a snapshot of the orchestrator.
type State struct {
	Loading      bool   `json:"loading"`
	Error        string `json:"error,omitempty"`
	LastSpokenID string `json:"lastSpokenId,omitempty"`
}

type Option func(*Orchestrator)

func WithHistoryWindow(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.historyWindow = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

// Orchestrator owns the loading and error state of the conversation. At most
// one message is in flight; a second SendMessage fails with ErrBusy.
type Orchestrator struct {
	client     ChatClient
	sessions   Sessions
	speaker    Speaker
	transcript Transcript
	lang       LanguageSource
	tr         Localizer
	weather    WeatherSink

	historyWindow int
	now           func() time.Time
	newID         func() string

	mu           sync.Mutex
	loading      bool
	errMessage   string
	lastSpokenID string
}

func NewOrchestrator(
	client ChatClient,
	sessions Sessions,
	speaker Speaker,
	transcript Transcript,
	lang LanguageSource,
	tr Localizer,
	weather WeatherSink,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		client:        client,
		sessions:      sessions,
		speaker:       speaker,
		transcript:    transcript,
		lang:          lang,
		tr:            tr,
		weather:       weather,
		historyWindow: DefaultHistoryWindow,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{Loading: o.loading, Error: o.errMessage, LastSpokenID: o.lastSpokenID}
}

// ClearError dismisses the error banner. The error reply stays in the
// transcript.
func (o *Orchestrator) ClearError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errMessage = ""
}

// pendingSend is a message that has been appended and is waiting for its
// reply.
type pendingSend struct {
	sessionID string
	request   model.ChatRequest
}

// SendMessage appends text as a user message and waits for the reply.
// Whitespace-only text is ignored. Remote failures do not return an error:
// they are recorded as an assistant message and in State().Error.
func (o *Orchestrator) SendMessage(ctx context.Context, text string) error {
	p, err := o.begin(ctx, text)
	if err != nil || p == nil {
		return err
	}
	o.complete(ctx, p)
	return nil
}

// SendVoiceTranscript submits the captured transcript, final and interim
// text joined, and clears it from the input engine.
func (o *Orchestrator) SendVoiceTranscript(ctx context.Context) error {
	state := o.transcript.State()
	if state.Status != speech.StatusIdle {
		return fmt.Errorf("voice input is still %s: %w", state.Status, app_errors.ErrConflict)
	}
	p, err := o.begin(ctx, state.Composed())
	if err != nil || p == nil {
		return err
	}
	o.transcript.ResetTranscript()
	o.complete(ctx, p)
	return nil
}

func (o *Orchestrator) begin(ctx context.Context, text string) (*pendingSend, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	o.mu.Lock()
	if o.loading {
		o.mu.Unlock()
		return nil, app_errors.ErrBusy
	}
	session, ok := o.sessions.ActiveSession()
	if !ok {
		o.mu.Unlock()
		return nil, app_errors.ErrNoActiveSession
	}
	o.loading = true
	o.errMessage = ""
	o.mu.Unlock()

	req := model.ChatRequest{
		Message:  text,
		Language: o.lang.Language(),
		History:  session.RecentMessages(o.historyWindow),
	}
	if session.Location != nil {
		req.Location = &model.RequestLocation{
			City: session.Location.Name,
			Lat:  session.Location.Lat,
			Lon:  session.Location.Lon,
		}
	}

	o.sessions.AddMessageTo(ctx, session.ID, o.message(model.RoleUser, text))
	return &pendingSend{sessionID: session.ID, request: req}, nil
}

func (o *Orchestrator) complete(ctx context.Context, p *pendingSend) {
	resp, err := o.client.Chat(ctx, p.request)

	var reason string
	if err != nil {
		reason = err.Error()
		slog.Error("Chat request failed", "session_id", p.sessionID, "error", err)
		o.sessions.AddMessageTo(ctx, p.sessionID, o.message(model.RoleAssistant, o.tr.T("chat.errorReply", reason)))
	} else {
		o.sessions.AddMessageTo(ctx, p.sessionID, o.message(model.RoleAssistant, resp.Response))
		if resp.Weather != nil {
			o.weather.SetSnapshot(resp.Weather)
		}
	}

	o.mu.Lock()
	o.loading = false
	o.errMessage = reason
	o.mu.Unlock()

	o.afterResponse(p.sessionID)
}

// afterResponse runs on the loading true->false edge and reads the reply
// aloud at most once.
func (o *Orchestrator) afterResponse(requestSessionID string) {
	active, ok := o.sessions.ActiveSession()
	if !ok {
		return
	}

	o.mu.Lock()
	speak := ShouldSpeak(active, requestSessionID, o.speaker.Enabled(), o.lastSpokenID)
	var last model.ChatMessage
	if speak {
		last, _ = active.LastMessage()
		o.lastSpokenID = last.ID
	}
	o.mu.Unlock()

	if !speak {
		return
	}
	if err := o.speaker.Speak(last.Content); err != nil {
		slog.Warn("Failed to read reply aloud", "message_id", last.ID, "error", err)
	}
}

// ShouldSpeak reports whether the latest message of the active session is an
// assistant reply to the request just completed that has not been read yet.
func ShouldSpeak(active model.ChatSession, requestSessionID string, enabled bool, lastSpokenID string) bool {
	if !enabled || active.ID != requestSessionID {
		return false
	}
	last, ok := active.LastMessage()
	if !ok {
		return false
	}
	return last.Role == model.RoleAssistant && last.ID != lastSpokenID
}

func (o *Orchestrator) message(role model.Role, content string) model.ChatMessage {
	return model.ChatMessage{
		ID:        o.newID(),
		Role:      role,
		Content:   content,
		Timestamp: o.now(),
	}
}
