package speech_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/speech"
)

type fakeSynthesizer struct {
	voices   []speech.Voice
	spoken   []speech.Utterance
	cancels  int
	speakErr error
}

func (f *fakeSynthesizer) Voices() []speech.Voice { return f.voices }

func (f *fakeSynthesizer) Speak(u speech.Utterance) error {
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, u)
	return nil
}

func (f *fakeSynthesizer) Cancel() error {
	f.cancels++
	return nil
}

type memoryPrefs struct {
	enabled bool
	saves   []bool
	err     error
}

func (p *memoryPrefs) VoiceOutputEnabled(context.Context) bool { return p.enabled }

func (p *memoryPrefs) SetVoiceOutputEnabled(_ context.Context, enabled bool) error {
	if p.err != nil {
		return p.err
	}
	p.enabled = enabled
	p.saves = append(p.saves, enabled)
	return nil
}

type fixedLanguage model.Language

func (l fixedLanguage) Language() model.Language { return model.Language(l) }

func setupOutputEngine(t *testing.T, lang model.Language) (*speech.OutputEngine, *fakeSynthesizer, *memoryPrefs) {
	t.Helper()
	synth := &fakeSynthesizer{}
	prefs := &memoryPrefs{}
	engine := speech.NewOutputEngine(context.Background(), synth, prefs, fixedLanguage(lang))
	engine.SetSupported(true)
	return engine, synth, prefs
}

func TestOutputEngine_Speak(t *testing.T) {
	t.Run("Success - Builds a localized utterance", func(t *testing.T) {
		engine, synth, _ := setupOutputEngine(t, model.LanguageJapanese)
		synth.voices = []speech.Voice{
			{Name: "Google US English", Lang: "en-US"},
			{Name: "Microsoft Ichiro", Lang: "ja-JP"},
			{Name: "Microsoft Nanami Online (Natural)", Lang: "ja-JP"},
		}

		require.NoError(t, engine.Speak("  東京は晴れです  "))

		require.Len(t, synth.spoken, 1)
		u := synth.spoken[0]
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "東京は晴れです", u.Text)
		assert.Equal(t, "ja-JP", u.Lang)
		assert.Equal(t, 0.9, u.Rate)
		assert.Equal(t, 1.0, u.Pitch)
		assert.Equal(t, 1.0, u.Volume)
		require.NotNil(t, u.Voice)
		assert.Equal(t, "Microsoft Nanami Online (Natural)", u.Voice.Name)
	})

	t.Run("Success - A new utterance cancels the previous one", func(t *testing.T) {
		engine, synth, _ := setupOutputEngine(t, model.LanguageEnglish)

		require.NoError(t, engine.Speak("first"))
		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: synth.spoken[0].ID, Kind: speech.SynthesisStart})
		require.True(t, engine.State().Speaking)

		require.NoError(t, engine.Speak("second"))
		assert.Equal(t, 2, synth.cancels)
		assert.False(t, engine.State().Speaking)

		// The cancelled utterance reports its end late.
		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: synth.spoken[0].ID, Kind: speech.SynthesisEnd})
		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: synth.spoken[1].ID, Kind: speech.SynthesisStart})
		assert.True(t, engine.State().Speaking)

		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: synth.spoken[0].ID, Kind: speech.SynthesisEnd})
		assert.True(t, engine.State().Speaking, "stale end must not stop the current utterance")

		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: synth.spoken[1].ID, Kind: speech.SynthesisEnd})
		assert.False(t, engine.State().Speaking)
	})

	t.Run("Success - Blank text is ignored", func(t *testing.T) {
		engine, synth, _ := setupOutputEngine(t, model.LanguageEnglish)

		require.NoError(t, engine.Speak("   "))
		assert.Empty(t, synth.spoken)
		assert.Zero(t, synth.cancels)
	})

	t.Run("Success - Unsupported platform is a no-op", func(t *testing.T) {
		engine, synth, _ := setupOutputEngine(t, model.LanguageEnglish)
		engine.SetSupported(false)

		require.NoError(t, engine.Speak("hello"))
		assert.Empty(t, synth.spoken)
	})

	t.Run("Failure - Synthesizer rejects the utterance", func(t *testing.T) {
		engine, synth, _ := setupOutputEngine(t, model.LanguageEnglish)
		synth.speakErr = errors.New("synthesis-failed")

		err := engine.Speak("hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "synthesis-failed")
		assert.False(t, engine.State().Speaking)
	})

	t.Run("Failure - Error event ends playback", func(t *testing.T) {
		engine, synth, _ := setupOutputEngine(t, model.LanguageEnglish)
		require.NoError(t, engine.Speak("hello"))
		id := synth.spoken[0].ID
		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: id, Kind: speech.SynthesisStart})

		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: id, Kind: speech.SynthesisError, Error: "interrupted"})
		assert.False(t, engine.State().Speaking)
	})
}

func TestOutputEngine_SetEnabled(t *testing.T) {
	t.Run("Success - Disabled by default", func(t *testing.T) {
		engine, _, _ := setupOutputEngine(t, model.LanguageEnglish)
		assert.False(t, engine.Enabled())
	})

	t.Run("Success - Restores the stored preference", func(t *testing.T) {
		prefs := &memoryPrefs{enabled: true}
		engine := speech.NewOutputEngine(context.Background(), &fakeSynthesizer{}, prefs, fixedLanguage(model.LanguageEnglish))
		assert.True(t, engine.Enabled())
	})

	t.Run("Success - Disabling stops playback and persists", func(t *testing.T) {
		engine, synth, prefs := setupOutputEngine(t, model.LanguageEnglish)
		require.NoError(t, engine.SetEnabled(context.Background(), true))
		require.NoError(t, engine.Speak("hello"))
		engine.HandleEvent(speech.SynthesisEvent{UtteranceID: synth.spoken[0].ID, Kind: speech.SynthesisStart})

		require.NoError(t, engine.SetEnabled(context.Background(), false))

		state := engine.State()
		assert.False(t, state.Enabled)
		assert.False(t, state.Speaking)
		assert.Equal(t, []bool{true, false}, prefs.saves)
		assert.Equal(t, 2, synth.cancels)
	})

	t.Run("Failure - Preference store error", func(t *testing.T) {
		engine, _, prefs := setupOutputEngine(t, model.LanguageEnglish)
		prefs.err = errors.New("disk full")

		err := engine.SetEnabled(context.Background(), true)
		require.Error(t, err)
		assert.True(t, engine.Enabled(), "in-memory state follows the user even if persisting fails")
	})
}

func TestOutputEngine_Stop(t *testing.T) {
	engine, synth, _ := setupOutputEngine(t, model.LanguageEnglish)
	require.NoError(t, engine.Speak("hello"))
	id := synth.spoken[0].ID
	engine.HandleEvent(speech.SynthesisEvent{UtteranceID: id, Kind: speech.SynthesisStart})

	engine.Stop()
	assert.False(t, engine.State().Speaking)

	engine.HandleEvent(speech.SynthesisEvent{UtteranceID: id, Kind: speech.SynthesisStart})
	assert.False(t, engine.State().Speaking, "events after stop are stale")
}
