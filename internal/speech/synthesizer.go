package speech

// Voice is a synthesis voice offered by the platform.
type Voice struct {
	Name         string `json:"name"`
	Lang         string `json:"lang"`
	Default      bool   `json:"default"`
	LocalService bool   `json:"localService"`
}

// Utterance is one playback request.
type Utterance struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Lang   string  `json:"lang"`
	Voice  *Voice  `json:"voice,omitempty"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}

// Synthesizer is the platform speech-synthesis capability. Cancel is
// synchronous by platform contract.
type Synthesizer interface {
	Voices() []Voice
	Speak(u Utterance) error
	Cancel() error
}

type SynthesisEventKind string

const (
	SynthesisStart SynthesisEventKind = "start"
	SynthesisEnd   SynthesisEventKind = "end"
	SynthesisError SynthesisEventKind = "error"
)

// SynthesisEvent reports playback progress for one utterance.
type SynthesisEvent struct {
	UtteranceID string             `json:"utteranceId"`
	Kind        SynthesisEventKind `json:"type"`
	Error       string             `json:"error,omitempty"`
}
