package speech

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
)

// Localizer resolves user-facing messages.
type Localizer interface {
	T(key string, params ...string) string
}

// Status is the recognition state of an InputEngine.
type Status int

const (
	StatusIdle Status = iota
	// StatusStarting covers the gap between a start request and the platform
	// confirming capture.
	StatusStarting
	StatusListening
)

func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusListening:
		return "listening"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// InputState is a snapshot of the engine for rendering.
type InputState struct {
	Status            Status `json:"status"`
	Listening         bool   `json:"listening"`
	Starting          bool   `json:"starting"`
	FinalTranscript   string `json:"finalTranscript"`
	InterimTranscript string `json:"interimTranscript"`
	Error             string `json:"error,omitempty"`
	Supported         bool   `json:"supported"`
	Browser           string `json:"browser"`
	Locale            string `json:"locale"`
	// Notice explains why voice input is unavailable.
	Notice string `json:"notice,omitempty"`
}

// Composed joins final and interim text the way a voice send submits it.
func (s InputState) Composed() string {
	return strings.TrimSpace(s.FinalTranscript + " " + s.InterimTranscript)
}

// InputEngine is the speech-to-text state machine:
//
//	Idle -> Starting -> Listening -> Idle
//
// Platform callbacks arrive through HandleEvent (or Run). The engine is the
// only writer of its state; Recognizer calls are made without holding the
// lock so an implementation may deliver events synchronously.
type InputEngine struct {
	rec Recognizer
	tr  Localizer

	mu            sync.Mutex
	status        Status
	capability    Capability
	locale        string
	pendingLocale string

	segments []Segment
	// offset hides segments that were cleared by ResetTranscript while the
	// platform keeps reporting them.
	offset     int
	final      string
	interim    string
	errMessage string
	discarding bool
}

func NewInputEngine(rec Recognizer, tr Localizer, lang model.Language) *InputEngine {
	return &InputEngine{
		rec:    rec,
		tr:     tr,
		locale: LocaleFor(lang),
	}
}

// SetCapability records what the platform reported at initialization.
func (e *InputEngine) SetCapability(capability Capability) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.capability = capability
}

// State returns a snapshot.
func (e *InputEngine) State() InputState {
	e.mu.Lock()
	defer e.mu.Unlock()

	state := InputState{
		Status:            e.status,
		Listening:         e.status == StatusListening,
		Starting:          e.status == StatusStarting,
		FinalTranscript:   e.final,
		InterimTranscript: e.interim,
		Error:             e.errMessage,
		Supported:         e.capability.Supported,
		Browser:           e.capability.Browser,
		Locale:            e.locale,
	}
	if !state.Supported {
		if e.capability.Browser != "" && e.capability.Browser != BrowserUnknown {
			state.Notice = e.tr.T("voice.unsupportedBrowser", e.capability.Browser)
		} else {
			state.Notice = e.tr.T("voice.notSupported")
		}
	}
	return state
}

// StartListening requests capture. It only acts from Idle; calling it again
// while starting or listening is a no-op.
func (e *InputEngine) StartListening() error {
	e.mu.Lock()
	if !e.capability.Supported {
		e.mu.Unlock()
		return app_errors.ErrUnsupported
	}
	if e.status != StatusIdle {
		e.mu.Unlock()
		return nil
	}
	e.clearTranscriptLocked()
	e.segments = nil
	e.offset = 0
	e.discarding = false
	e.status = StatusStarting
	locale := e.locale
	e.mu.Unlock()

	err := e.rec.Start(locale)
	if err == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if errors.Is(err, ErrAlreadyStarted) {
		if e.status == StatusStarting {
			e.status = StatusListening
		}
		return nil
	}
	slog.Error("Failed to start speech recognition", "error", err)
	e.errMessage = e.tr.T("voice.startFailed")
	e.toIdleLocked()
	return nil
}

// StopListening asks the platform to stop. The transition to Idle, and the
// move of pending interim text into the final transcript, happens when the
// platform confirms with an end event.
func (e *InputEngine) StopListening() {
	e.mu.Lock()
	if e.status == StatusIdle {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	if err := e.rec.Stop(); err != nil {
		slog.Warn("Failed to stop speech recognition, forcing idle", "error", err)
		e.mu.Lock()
		e.finishLocked()
		e.mu.Unlock()
	}
}

// Cancel stops capture and discards everything captured so far.
func (e *InputEngine) Cancel() {
	e.mu.Lock()
	e.clearTranscriptLocked()
	e.offset = len(e.segments)
	active := e.status != StatusIdle
	e.discarding = active
	e.mu.Unlock()

	if !active {
		return
	}
	if err := e.rec.Stop(); err != nil {
		slog.Warn("Failed to stop speech recognition on cancel, forcing idle", "error", err)
		e.mu.Lock()
		e.finishLocked()
		e.mu.Unlock()
	}
}

// ResetTranscript clears both transcripts and the error. It does not stop
// capture.
func (e *InputEngine) ResetTranscript() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearTranscriptLocked()
	e.offset = len(e.segments)
}

// Retry discards the previous attempt and starts listening again.
func (e *InputEngine) Retry() error {
	e.ResetTranscript()
	return e.StartListening()
}

// SetLanguage changes the recognition locale. While a capture is in flight
// the change is deferred until the engine is back to Idle.
func (e *InputEngine) SetLanguage(lang model.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()

	locale := LocaleFor(lang)
	if e.status == StatusIdle {
		e.locale = locale
		e.pendingLocale = ""
		return
	}
	e.pendingLocale = locale
}

// HandleEvent applies one platform event.
func (e *InputEngine) HandleEvent(ev RecognitionEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.Kind {
	case RecognitionStart:
		if e.status == StatusStarting {
			e.status = StatusListening
		}
	case RecognitionResult:
		if e.discarding || e.status == StatusIdle {
			return
		}
		e.applyResultsLocked(ev.ResultIndex, ev.Results)
	case RecognitionError:
		if isBenign(ev.Error) {
			slog.Debug("Speech recognition ended without input", "code", ev.Error)
		} else {
			slog.Warn("Speech recognition error", "code", ev.Error)
			e.errMessage = e.errorMessage(ev.Error)
		}
		e.toIdleLocked()
	case RecognitionEnd:
		e.finishLocked()
	default:
		slog.Warn("Ignoring unknown recognition event", "type", ev.Kind)
	}
}

// Run feeds events from the platform until ctx is done or events is closed.
func (e *InputEngine) Run(ctx context.Context, events <-chan RecognitionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			e.HandleEvent(ev)
		}
	}
}

// Close aborts an in-flight capture so no callback lands on discarded state.
func (e *InputEngine) Close() {
	e.mu.Lock()
	active := e.status != StatusIdle
	e.discarding = false
	e.status = StatusIdle
	e.mu.Unlock()

	if active {
		if err := e.rec.Abort(); err != nil {
			slog.Warn("Failed to abort speech recognition", "error", err)
		}
	}
}

func (e *InputEngine) applyResultsLocked(index int, results []Segment) {
	if index < 0 {
		index = 0
	}
	if index > len(e.segments) {
		index = len(e.segments)
	}
	e.segments = append(e.segments[:index], results...)
	if e.offset > len(e.segments) {
		e.offset = len(e.segments)
	}

	var final, interim strings.Builder
	for _, seg := range e.segments[e.offset:] {
		if seg.Final {
			final.WriteString(seg.Text)
		} else {
			interim.WriteString(seg.Text)
		}
	}
	e.final = final.String()
	e.interim = interim.String()
}

// finishLocked handles the end of a capture: pending interim text is kept
// unless the capture was cancelled.
func (e *InputEngine) finishLocked() {
	if e.discarding {
		e.clearTranscriptLocked()
	} else {
		e.final += e.interim
		e.interim = ""
	}
	e.segments = nil
	e.offset = 0
	e.discarding = false
	e.toIdleLocked()
}

func (e *InputEngine) toIdleLocked() {
	e.status = StatusIdle
	if e.pendingLocale != "" {
		e.locale = e.pendingLocale
		e.pendingLocale = ""
	}
}

func (e *InputEngine) clearTranscriptLocked() {
	e.final = ""
	e.interim = ""
	e.errMessage = ""
}

func (e *InputEngine) errorMessage(code string) string {
	if knownErrorCodes[code] {
		return e.tr.T("voice.error." + code)
	}
	return e.tr.T("voice.error.unknown", code)
}
