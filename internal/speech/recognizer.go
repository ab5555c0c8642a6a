package speech

import "errors"

// ErrAlreadyStarted is returned by a Recognizer whose capture is already
// running. The engine treats it as success.
var ErrAlreadyStarted = errors.New("speech: recognition already started")

// Recognizer is the platform speech-recognition capability. Implementations
// only issue requests; outcomes arrive later as RecognitionEvents.
type Recognizer interface {
	Start(locale string) error
	Stop() error
	Abort() error
}

type RecognitionEventKind string

const (
	RecognitionStart  RecognitionEventKind = "start"
	RecognitionResult RecognitionEventKind = "result"
	RecognitionError  RecognitionEventKind = "error"
	RecognitionEnd    RecognitionEventKind = "end"
)

// Segment is one recognition result. Final segments are never revised.
type Segment struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// RecognitionEvent is produced by the platform. For results, Results replaces
// every segment from ResultIndex onwards, matching continuous recognition
// where earlier interim segments are revised in place.
type RecognitionEvent struct {
	Kind        RecognitionEventKind `json:"type"`
	ResultIndex int                  `json:"resultIndex"`
	Results     []Segment            `json:"results"`
	Error       string               `json:"error"`
}

// Error codes that are not failures: the user said nothing, or the capture
// was aborted on purpose.
const (
	ErrorNoSpeech = "no-speech"
	ErrorAborted  = "aborted"
)

func isBenign(code string) bool {
	return code == ErrorNoSpeech || code == ErrorAborted
}

// knownErrorCodes have a dedicated localized message.
var knownErrorCodes = map[string]bool{
	"not-allowed":            true,
	"audio-capture":          true,
	"network":                true,
	"service-not-allowed":    true,
	"bad-grammar":            true,
	"language-not-supported": true,
}
