package voicebio

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Thepluscode/medimind-voice/pkg/audio/acoustic"
)

// emotionRule pairs a predicate over the raw scores with the state it
// selects. Rules are evaluated in order; the first match wins.
type emotionRule struct {
	match func(RawPredictions) bool
	state EmotionalState
}

var emotionRules = []emotionRule{
	{func(r RawPredictions) bool { return r.Depression > 0.6 }, StateDepressed},
	{func(r RawPredictions) bool { return r.Anxiety > 0.6 }, StateAnxious},
	{func(r RawPredictions) bool { return r.Stress > 0.6 }, StateStressed},
	{func(r RawPredictions) bool { return r.Stress < 0.3 && r.Anxiety < 0.3 }, StateCalm},
}

// ClassifyEmotion maps raw scores to a categorical emotional state via
// the ordered rule list.
func ClassifyEmotion(r RawPredictions) EmotionalState {
	for _, rule := range emotionRules {
		if rule.match(r) {
			return rule.state
		}
	}
	return StateElevated
}

// Respiratory-rate heuristic parameters. The estimate is an acoustic
// proxy anchored at a 16 bpm conversational baseline, nudged by how
// fast the speaker talks and how long they pause to breathe, and
// clamped to a plausible adult range.
const (
	respBaseline     = 16.0 // bpm
	respRateGain     = 1.2  // bpm per syllable/s above baselineRate
	respBaselineRate = 4.0  // syllables/s
	respPauseGain    = 3.0  // bpm per second of mean pause above baselinePause
	respBaselinePause = 0.4 // s
	respMin          = 10.0
	respMax          = 25.0
)

// MaxConfidence caps the confidence of every result: the engine never
// claims near-certainty from a single short recording.
const MaxConfidence = 0.95

// synthesize derives the user-facing composite indices from the raw
// scores and acoustic features.
func synthesize(f *acoustic.Features, raw RawPredictions, now time.Time) *Result {
	stress := clamp01(0.6*raw.Stress + 0.4*raw.Anxiety)

	resp := respBaseline +
		respRateGain*(f.SpeakingRate-respBaselineRate) -
		respPauseGain*(f.PauseDuration-respBaselinePause)
	resp = math.Min(respMax, math.Max(respMin, resp))

	quality := clamp01(f.HNR / 20)

	load := clamp01(0.6*raw.CognitiveDecline + 0.4*(1-math.Min(f.ArticulationRate/8, 1)))

	return &Result{
		ID:              uuid.NewString(),
		StressLevel:     stress,
		EmotionalState:  ClassifyEmotion(raw),
		RespiratoryRate: resp,
		VoiceQuality:    quality,
		CognitiveLoad:   load,
		Confidence:      confidence(f),
		Features:        f,
		Raw:             raw,
		Timestamp:       now.UTC(),
	}
}

// confidence scores the signal quality of the recording itself: a
// clear, stable, plausibly paced voice supports the analysis more than
// a rough or erratic one.
func confidence(f *acoustic.Features) float64 {
	c := 0.4
	if f.HNR > 10 {
		c += 0.2
	}
	if f.Jitter < 2 && f.Shimmer < 5 {
		c += 0.2
	}
	if f.SpeakingRate >= 2 && f.SpeakingRate <= 7 {
		c += 0.15
	}
	if c > MaxConfidence {
		c = MaxConfidence
	}
	return c
}
