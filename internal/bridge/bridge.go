// Package bridge lets a UI shell provide the platform capabilities: speech
// recognition, speech synthesis and geolocation. The core sends commands on
// a channel the shell streams, and the shell posts back events.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/location"
	"weather-chatbot/client/internal/speech"
)

// ErrBridgeBusy means the shell is not draining commands.
var ErrBridgeBusy = errors.New("platform bridge command buffer is full")

type CommandType string

const (
	CommandRecognitionStart   CommandType = "recognition.start"
	CommandRecognitionStop    CommandType = "recognition.stop"
	CommandRecognitionAbort   CommandType = "recognition.abort"
	CommandSynthesisSpeak     CommandType = "synthesis.speak"
	CommandSynthesisCancel    CommandType = "synthesis.cancel"
	CommandGeolocationRequest CommandType = "geolocation.request"
)

// GeolocationOptions is PositionOptions in the browser's units (ms).
type GeolocationOptions struct {
	EnableHighAccuracy bool  `json:"enableHighAccuracy"`
	Timeout            int64 `json:"timeout"`
	MaximumAge         int64 `json:"maximumAge"`
}

// Command is one request for the shell.
type Command struct {
	ID        string              `json:"id"`
	Type      CommandType         `json:"type"`
	Locale    string              `json:"locale,omitempty"`
	Utterance *speech.Utterance   `json:"utterance,omitempty"`
	Options   *GeolocationOptions `json:"options,omitempty"`
}

// Geolocation error codes reported by the shell.
const (
	GeolocationPermissionDenied    = "permission-denied"
	GeolocationPositionUnavailable = "position-unavailable"
	GeolocationTimeout             = "timeout"
)

type positionResult struct {
	pos location.Position
	err error
}

// Bridge implements speech.Recognizer, speech.Synthesizer and
// location.Geolocator on top of the shell.
type Bridge struct {
	commands    chan Command
	recognition chan speech.RecognitionEvent
	synthesis   chan speech.SynthesisEvent
	newID       func() string

	mu          sync.Mutex
	voices      []speech.Voice
	recognizing bool
	pending     map[string]chan positionResult
}

// New creates a bridge whose channels hold up to buffer items.
func New(buffer int) *Bridge {
	if buffer <= 0 {
		buffer = 1
	}
	return &Bridge{
		commands:    make(chan Command, buffer),
		recognition: make(chan speech.RecognitionEvent, buffer),
		synthesis:   make(chan speech.SynthesisEvent, buffer),
		newID:       uuid.NewString,
		pending:     make(map[string]chan positionResult),
	}
}

// Commands is the stream the shell executes.
func (b *Bridge) Commands() <-chan Command {
	return b.commands
}

func (b *Bridge) RecognitionEvents() <-chan speech.RecognitionEvent {
	return b.recognition
}

func (b *Bridge) SynthesisEvents() <-chan speech.SynthesisEvent {
	return b.synthesis
}

func (b *Bridge) send(cmd Command) error {
	if cmd.ID == "" {
		cmd.ID = b.newID()
	}
	select {
	case b.commands <- cmd:
		return nil
	default:
		return ErrBridgeBusy
	}
}

// Start asks the shell to begin recognition in locale.
func (b *Bridge) Start(locale string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.recognizing {
		return speech.ErrAlreadyStarted
	}
	if err := b.send(Command{Type: CommandRecognitionStart, Locale: locale}); err != nil {
		return err
	}
	b.recognizing = true
	return nil
}

func (b *Bridge) Stop() error {
	return b.send(Command{Type: CommandRecognitionStop})
}

func (b *Bridge) Abort() error {
	b.mu.Lock()
	b.recognizing = false
	b.mu.Unlock()
	return b.send(Command{Type: CommandRecognitionAbort})
}

// PublishRecognition hands a recognition event from the shell to the engine.
func (b *Bridge) PublishRecognition(ctx context.Context, ev speech.RecognitionEvent) error {
	if ev.Kind == speech.RecognitionEnd || ev.Kind == speech.RecognitionError {
		b.mu.Lock()
		b.recognizing = false
		b.mu.Unlock()
	}
	select {
	case b.recognition <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReportVoices records the voices the shell offers.
func (b *Bridge) ReportVoices(voices []speech.Voice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.voices = append([]speech.Voice(nil), voices...)
}

func (b *Bridge) Voices() []speech.Voice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]speech.Voice(nil), b.voices...)
}

func (b *Bridge) Speak(u speech.Utterance) error {
	return b.send(Command{Type: CommandSynthesisSpeak, Utterance: &u})
}

func (b *Bridge) Cancel() error {
	return b.send(Command{Type: CommandSynthesisCancel})
}

// PublishSynthesis hands a playback event from the shell to the engine.
func (b *Bridge) PublishSynthesis(ctx context.Context, ev speech.SynthesisEvent) error {
	select {
	case b.synthesis <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CurrentPosition asks the shell for a fix and waits for ResolvePosition,
// the options' timeout or ctx, whichever comes first.
func (b *Bridge) CurrentPosition(ctx context.Context, opts location.PositionOptions) (location.Position, error) {
	id := b.newID()
	ch := make(chan positionResult, 1)

	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()

	err := b.send(Command{
		ID:   id,
		Type: CommandGeolocationRequest,
		Options: &GeolocationOptions{
			EnableHighAccuracy: opts.EnableHighAccuracy,
			Timeout:            opts.Timeout.Milliseconds(),
			MaximumAge:         opts.MaximumAge.Milliseconds(),
		},
	})
	if err != nil {
		b.forget(id)
		return location.Position{}, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	select {
	case res := <-ch:
		return res.pos, res.err
	case <-ctx.Done():
		b.forget(id)
		return location.Position{}, fmt.Errorf("geolocation request %s: %w", id, ctx.Err())
	}
}

// ResolvePosition completes a geolocation request. A non-empty code reports
// a failure instead of a position.
func (b *Bridge) ResolvePosition(id string, pos location.Position, code string) error {
	b.mu.Lock()
	ch, ok := b.pending[id]
	delete(b.pending, id)
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("geolocation request %s: %w", id, app_errors.ErrNotFound)
	}
	if code != "" {
		ch <- positionResult{err: positionError(code)}
		return nil
	}
	ch <- positionResult{pos: pos}
	return nil
}

func (b *Bridge) forget(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, id)
}

func positionError(code string) error {
	switch code {
	case GeolocationPermissionDenied:
		return fmt.Errorf("geolocation denied: %w", app_errors.ErrPermission)
	case GeolocationTimeout:
		return fmt.Errorf("geolocation timed out: %w", context.DeadlineExceeded)
	default:
		return fmt.Errorf("geolocation failed: %s", code)
	}
}
