package voicebio

import (
	"fmt"
	"time"

	"github.com/Thepluscode/medimind-voice/pkg/audio/acoustic"
)

// EmotionalState is the categorical emotional classification of a
// recording.
type EmotionalState int

const (
	// StateCalm means both stress and anxiety scores are low.
	StateCalm EmotionalState = iota

	// StateStressed means the stress score dominates.
	StateStressed

	// StateAnxious means the anxiety score dominates.
	StateAnxious

	// StateDepressed means the depression score dominates.
	StateDepressed

	// StateElevated means scores are raised without a single dominant
	// condition.
	StateElevated
)

func (s EmotionalState) String() string {
	switch s {
	case StateCalm:
		return "calm"
	case StateStressed:
		return "stressed"
	case StateAnxious:
		return "anxious"
	case StateDepressed:
		return "depressed"
	case StateElevated:
		return "elevated"
	default:
		return fmt.Sprintf("EmotionalState(%d)", int(s))
	}
}

// MarshalJSON encodes the state as its string form.
func (s EmotionalState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// RawPredictions holds the five calibrated risk scores in [0, 1]
// produced by the multi-task head. RespiratoryHealth is stored
// inverted: higher means healthier.
type RawPredictions struct {
	Stress            float64 `json:"stress"`
	Depression        float64 `json:"depression"`
	Anxiety           float64 `json:"anxiety"`
	CognitiveDecline  float64 `json:"cognitive_decline"`
	RespiratoryHealth float64 `json:"respiratory_health"`
}

// Result is the immutable outcome of one voice analysis. It is created
// once per Analyze call and never persisted by the engine.
type Result struct {
	ID string `json:"id"`

	StressLevel     float64        `json:"stress_level"`     // [0, 1]
	EmotionalState  EmotionalState `json:"emotional_state"`
	RespiratoryRate float64        `json:"respiratory_rate"` // bpm, acoustic proxy
	VoiceQuality    float64        `json:"voice_quality"`    // [0, 1]
	CognitiveLoad   float64        `json:"cognitive_load"`   // [0, 1]
	Confidence      float64        `json:"confidence"`       // [0, 0.95]

	Features *acoustic.Features `json:"features"`
	Raw      RawPredictions     `json:"raw_predictions"`

	Timestamp time.Time `json:"timestamp"`
}
