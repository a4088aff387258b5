package wave

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV writes a PCM16 WAV file with the given per-channel samples.
func writeWAV(t *testing.T, path string, rate, channels int, samples []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func sinePCM16(freq float64, rate, n int, amp float64) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = int(amp * 32767 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestDecodeFileMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 16000, 1, sinePCM16(440, 16000, 16000, 0.5))

	buf, err := DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if buf.SampleRate != 16000 {
		t.Errorf("expected 16000 Hz, got %d", buf.SampleRate)
	}
	if len(buf.Samples) != 16000 {
		t.Errorf("expected 16000 samples, got %d", len(buf.Samples))
	}
	if d := buf.Duration(); math.Abs(d-1.0) > 1e-9 {
		t.Errorf("expected 1s duration, got %f", d)
	}

	var peak float64
	for _, s := range buf.Samples {
		if s > 1 || s < -1 {
			t.Fatalf("sample %f outside [-1, 1]", s)
		}
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak < 0.4 || peak > 0.6 {
		t.Errorf("expected peak near 0.5, got %f", peak)
	}
}

func TestDecodeStereoDownmix(t *testing.T) {
	// Interleave L=0.5 sine with R=-0.5 sine: downmix should cancel to
	// near silence.
	n := 8000
	mono := sinePCM16(200, 16000, n, 0.5)
	stereo := make([]int, n*2)
	for i, s := range mono {
		stereo[i*2] = s
		stereo[i*2+1] = -s
	}
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeWAV(t, path, 16000, 2, stereo)

	buf, err := DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf.Samples) != n {
		t.Fatalf("expected %d mono samples, got %d", n, len(buf.Samples))
	}
	for i, s := range buf.Samples {
		if math.Abs(s) > 1.0/32767 {
			t.Fatalf("sample %d: expected cancellation, got %f", i, s)
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not audio data at all")))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResamplePassthrough(t *testing.T) {
	buf := &Buffer{Samples: make([]float64, 1600), SampleRate: 16000}
	out, err := Resample(buf, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if out != buf {
		t.Error("expected same buffer when rates match")
	}
}

func TestResampleDownrate(t *testing.T) {
	// 1s of 440 Hz at 48 kHz → 16 kHz.
	n := 48000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/48000)
	}
	buf := &Buffer{Samples: samples, SampleRate: 48000}

	out, err := Resample(buf, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if out.SampleRate != 16000 {
		t.Errorf("expected 16000 Hz, got %d", out.SampleRate)
	}
	// Length should be near n/3; resamplers may trim edges.
	want := n / 3
	if len(out.Samples) < want*8/10 || len(out.Samples) > want*11/10 {
		t.Errorf("expected ~%d samples, got %d", want, len(out.Samples))
	}
	t.Logf("resampled %d → %d samples", n, len(out.Samples))
}
