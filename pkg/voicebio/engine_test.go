package voicebio

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Thepluscode/medimind-voice/pkg/audio/acoustic"
	"github.com/Thepluscode/medimind-voice/pkg/audio/wave"
)

// writeWAV writes a mono PCM16 WAV file.
func writeWAV(t *testing.T, path string, rate int, samples []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

// speechPCM16 is a 200 Hz tone with a 4 Hz amplitude envelope, a rough
// stand-in for syllabic speech.
func speechPCM16(rate int, seconds float64) []int {
	n := int(float64(rate) * seconds)
	out := make([]int, n)
	for i := range out {
		ts := float64(i) / float64(rate)
		env := 0.55 + 0.45*math.Sin(2*math.Pi*4*ts)
		out[i] = int(0.4 * env * 32767 * math.Sin(2*math.Pi*200*ts))
	}
	return out
}

func readyEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(DefaultConfig())
	if err := e.LoadWeights(GenerateWeights(42)); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestAnalyzeNotInitialized(t *testing.T) {
	e := New(DefaultConfig())
	_, err := e.Analyze(context.Background(), Input{Path: "ignored.wav"})
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("got %v, want ErrNotInitialized", err)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech.wav")
	writeWAV(t, path, 16000, speechPCM16(16000, 2.0))
	e := readyEngine(t)

	r, err := e.Analyze(context.Background(), Input{Path: path, MIMEType: "audio/wav"})
	if err != nil {
		t.Fatal(err)
	}

	if r.ID == "" {
		t.Error("empty result ID")
	}
	if r.StressLevel < 0 || r.StressLevel > 1 {
		t.Errorf("stress level %v out of [0, 1]", r.StressLevel)
	}
	if r.RespiratoryRate < 10 || r.RespiratoryRate > 25 {
		t.Errorf("respiratory rate %v out of [10, 25]", r.RespiratoryRate)
	}
	if r.Confidence < 0 || r.Confidence > MaxConfidence {
		t.Errorf("confidence %v out of [0, %v]", r.Confidence, MaxConfidence)
	}
	if r.Features == nil {
		t.Fatal("result missing features")
	}
	if got := r.Features.PitchMean; math.Abs(got-200) > 200*0.06 {
		t.Errorf("pitch mean %v Hz, want near 200 Hz", got)
	}
	t.Logf("state=%v stress=%.3f resp=%.1f conf=%.2f", r.EmotionalState, r.StressLevel, r.RespiratoryRate, r.Confidence)
}

func TestAnalyzeDeterministicScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech.wav")
	writeWAV(t, path, 16000, speechPCM16(16000, 2.0))
	e := readyEngine(t)

	a, err := e.Analyze(context.Background(), Input{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Analyze(context.Background(), Input{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if a.Raw != b.Raw {
		t.Errorf("same recording produced different raw scores: %+v vs %+v", a.Raw, b.Raw)
	}
	if a.ID == b.ID {
		t.Error("separate analyses share a result ID")
	}
}

func TestAnalyzeSilence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	writeWAV(t, path, 16000, make([]int, 16000))
	e := readyEngine(t)

	_, err := e.Analyze(context.Background(), Input{Path: path})
	if !errors.Is(err, acoustic.ErrInsufficientSignal) {
		t.Errorf("got %v, want ErrInsufficientSignal", err)
	}
}

func TestAnalyzeResamplesInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech48k.wav")
	writeWAV(t, path, 48000, speechPCM16(48000, 2.0))
	e := readyEngine(t)

	r, err := e.Analyze(context.Background(), Input{Path: path, SampleRate: 48000})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Features.PitchMean; math.Abs(got-200) > 200*0.06 {
		t.Errorf("pitch mean after resample %v Hz, want near 200 Hz", got)
	}
}

func TestAnalyzeRejectsMIME(t *testing.T) {
	e := readyEngine(t)
	_, err := e.Analyze(context.Background(), Input{Path: "x.mp3", MIMEType: "audio/mpeg"})
	if !errors.Is(err, wave.ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}

func TestAnalyzeDeclaredRateMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech.wav")
	writeWAV(t, path, 16000, speechPCM16(16000, 2.0))
	e := readyEngine(t)

	_, err := e.Analyze(context.Background(), Input{Path: path, SampleRate: 44100})
	if !errors.Is(err, wave.ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}

func TestAnalyzeContextCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech.wav")
	writeWAV(t, path, 16000, speechPCM16(16000, 2.0))
	e := readyEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Analyze(ctx, Input{Path: path}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestEngineCloseAndReload(t *testing.T) {
	e := readyEngine(t)
	if !e.Ready() {
		t.Fatal("engine not ready after load")
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if e.Ready() {
		t.Error("engine ready after close")
	}
	if _, err := e.Analyze(context.Background(), Input{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("got %v, want ErrNotInitialized", err)
	}
	if err := e.LoadWeights(GenerateWeights(1)); err != nil {
		t.Fatal(err)
	}
	if !e.Ready() {
		t.Error("engine not ready after reload")
	}
}

func TestEngineInitFromConfig(t *testing.T) {
	dir := t.TempDir()
	wpath := filepath.Join(dir, "weights.bin")
	if err := WriteWeightsFile(wpath, GenerateWeights(5)); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.WeightsPath = wpath
	e := New(cfg)
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	if !e.Ready() {
		t.Error("engine not ready after Init")
	}
}
