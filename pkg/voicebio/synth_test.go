package voicebio

import (
	"testing"
	"time"
)

func TestClassifyEmotion(t *testing.T) {
	cases := []struct {
		name string
		raw  RawPredictions
		want EmotionalState
	}{
		{"depressed dominates", RawPredictions{Stress: 0.2, Depression: 0.7, Anxiety: 0.2}, StateDepressed},
		{"depression outranks anxiety", RawPredictions{Stress: 0.7, Depression: 0.7, Anxiety: 0.7}, StateDepressed},
		{"anxious", RawPredictions{Stress: 0.2, Anxiety: 0.65}, StateAnxious},
		{"stressed", RawPredictions{Stress: 0.65, Anxiety: 0.2}, StateStressed},
		{"calm", RawPredictions{Stress: 0.1, Anxiety: 0.1}, StateCalm},
		{"elevated middle ground", RawPredictions{Stress: 0.5, Anxiety: 0.5, Depression: 0.5}, StateElevated},
		{"boundary 0.6 is not dominant", RawPredictions{Stress: 0.6, Anxiety: 0.6, Depression: 0.6}, StateElevated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyEmotion(c.raw); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestSynthesizeStressBlend(t *testing.T) {
	f := sampleFeatures()
	raw := RawPredictions{Stress: 0.5, Anxiety: 1.0}
	r := synthesize(f, raw, time.Now())

	want := 0.6*0.5 + 0.4*1.0
	if diff := r.StressLevel - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("stress level = %v, want %v", r.StressLevel, want)
	}
}

func TestRespiratoryRateClamped(t *testing.T) {
	now := time.Now()

	slow := sampleFeatures()
	slow.SpeakingRate = 0
	slow.PauseDuration = 3
	if r := synthesize(slow, RawPredictions{}, now); r.RespiratoryRate != 10 {
		t.Errorf("slow speech: rate = %v, want clamp at 10", r.RespiratoryRate)
	}

	fast := sampleFeatures()
	fast.SpeakingRate = 12
	fast.PauseDuration = 0
	if r := synthesize(fast, RawPredictions{}, now); r.RespiratoryRate != 25 {
		t.Errorf("fast speech: rate = %v, want clamp at 25", r.RespiratoryRate)
	}

	mid := sampleFeatures() // speaking 4.5/s, pause 0.4s
	r := synthesize(mid, RawPredictions{}, now)
	want := 16.0 + 1.2*(4.5-4.0)
	if diff := r.RespiratoryRate - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("mid speech: rate = %v, want %v", r.RespiratoryRate, want)
	}
}

func TestConfidenceRubric(t *testing.T) {
	clean := sampleFeatures() // HNR 20, jitter 1%, shimmer 3%, rate 4.5/s
	if got := confidence(clean); got != MaxConfidence {
		t.Errorf("clean voice: confidence = %v, want cap %v", got, MaxConfidence)
	}

	rough := sampleFeatures()
	rough.HNR = 5
	rough.Jitter = 4
	rough.SpeakingRate = 12
	if got := confidence(rough); got != 0.4 {
		t.Errorf("rough voice: confidence = %v, want base 0.4", got)
	}
}

func TestSynthesizeResultFields(t *testing.T) {
	f := sampleFeatures()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	r := synthesize(f, RawPredictions{Stress: 0.1, Anxiety: 0.1}, now)

	if r.ID == "" {
		t.Error("result has empty ID")
	}
	if r.Timestamp.Location() != time.UTC {
		t.Error("timestamp not normalized to UTC")
	}
	if r.Features != f {
		t.Error("result does not carry the extracted features")
	}
	if r.VoiceQuality != 1 {
		t.Errorf("voice quality = %v, want 1 for HNR 20", r.VoiceQuality)
	}
	if r.CognitiveLoad < 0 || r.CognitiveLoad > 1 {
		t.Errorf("cognitive load %v out of [0, 1]", r.CognitiveLoad)
	}
	if r.Confidence < 0 || r.Confidence > MaxConfidence {
		t.Errorf("confidence %v out of [0, %v]", r.Confidence, MaxConfidence)
	}
}
