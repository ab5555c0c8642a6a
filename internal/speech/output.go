package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"weather-chatbot/client/internal/model"
)

// OutputPreferences persists the enable flag, the only durable piece of
// output state.
type OutputPreferences interface {
	VoiceOutputEnabled(ctx context.Context) bool
	SetVoiceOutputEnabled(ctx context.Context, enabled bool) error
}

// LanguageSource reports the current UI language.
type LanguageSource interface {
	Language() model.Language
}

// OutputState is a snapshot of the engine.
type OutputState struct {
	Supported bool `json:"supported"`
	Enabled   bool `json:"enabled"`
	Speaking  bool `json:"speaking"`
}

// OutputEngine reads assistant replies aloud.
type OutputEngine struct {
	synth Synthesizer
	prefs OutputPreferences
	lang  LanguageSource
	newID func() string

	mu        sync.Mutex
	supported bool
	enabled   bool
	speaking  bool
	// current is the id of the utterance whose events are still relevant.
	current string
}

func NewOutputEngine(ctx context.Context, synth Synthesizer, prefs OutputPreferences, lang LanguageSource) *OutputEngine {
	return &OutputEngine{
		synth:   synth,
		prefs:   prefs,
		lang:    lang,
		newID:   uuid.NewString,
		enabled: prefs.VoiceOutputEnabled(ctx),
	}
}

// SetSupported records whether the platform has a synthesis capability.
func (e *OutputEngine) SetSupported(supported bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.supported = supported
	if !supported {
		e.speaking = false
		e.current = ""
	}
}

func (e *OutputEngine) State() OutputState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return OutputState{Supported: e.supported, Enabled: e.enabled, Speaking: e.speaking}
}

// Enabled reports the user's auto-speak preference.
func (e *OutputEngine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// SetEnabled persists the preference. Disabling stops current playback.
func (e *OutputEngine) SetEnabled(ctx context.Context, enabled bool) error {
	e.mu.Lock()
	e.enabled = enabled
	e.mu.Unlock()

	if !enabled {
		e.Stop()
	}
	if err := e.prefs.SetVoiceOutputEnabled(ctx, enabled); err != nil {
		slog.Error("Failed to persist voice output preference", "enabled", enabled, "error", err)
		return err
	}
	return nil
}

// Speak cancels whatever is playing and reads text in the current language.
// Blank text and unsupported platforms are no-ops.
func (e *OutputEngine) Speak(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	e.mu.Lock()
	if !e.supported {
		e.mu.Unlock()
		return nil
	}
	e.speaking = false
	e.current = ""
	e.mu.Unlock()

	if err := e.synth.Cancel(); err != nil {
		slog.Warn("Failed to cancel previous utterance", "error", err)
	}

	lang := e.lang.Language()
	u := Utterance{
		ID:     e.newID(),
		Text:   text,
		Lang:   LocaleFor(lang),
		Voice:  SelectVoice(e.synth.Voices(), lang),
		Rate:   RateFor(lang),
		Pitch:  1.0,
		Volume: 1.0,
	}

	e.mu.Lock()
	e.current = u.ID
	e.mu.Unlock()

	if err := e.synth.Speak(u); err != nil {
		e.mu.Lock()
		if e.current == u.ID {
			e.current = ""
			e.speaking = false
		}
		e.mu.Unlock()
		return fmt.Errorf("failed to start speech synthesis: %w", err)
	}
	return nil
}

// Stop cancels playback immediately.
func (e *OutputEngine) Stop() {
	e.mu.Lock()
	if !e.supported {
		e.mu.Unlock()
		return
	}
	e.speaking = false
	e.current = ""
	e.mu.Unlock()

	if err := e.synth.Cancel(); err != nil {
		slog.Warn("Failed to cancel speech synthesis", "error", err)
	}
}

// HandleEvent applies a playback event. Events of superseded utterances are
// dropped so a late "end" cannot flip the state of the new one.
func (e *OutputEngine) HandleEvent(ev SynthesisEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ev.UtteranceID == "" || ev.UtteranceID != e.current {
		return
	}
	switch ev.Kind {
	case SynthesisStart:
		e.speaking = true
	case SynthesisEnd:
		e.speaking = false
		e.current = ""
	case SynthesisError:
		slog.Warn("Speech synthesis error", "utterance_id", ev.UtteranceID, "error", ev.Error)
		e.speaking = false
		e.current = ""
	}
}

// Run feeds events until ctx is done or events is closed.
func (e *OutputEngine) Run(ctx context.Context, events <-chan SynthesisEvent) {
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

// Close cancels any in-flight playback.
func (e *OutputEngine) Close() {
	e.Stop()
}
