// Package wave decodes recorded audio into a normalized waveform buffer.
//
// The analysis engine operates on mono float64 samples in [-1, 1] at a
// fixed sample rate (16 kHz by default). This package turns a recorded
// WAV resource into that representation:
//
//  1. Decode: RIFF/WAV → integer PCM frames
//  2. Downmix: multi-channel audio averaged to mono
//  3. Normalize: scaled to [-1, 1] by the source bit depth
//  4. Resample: converted to the engine rate when the source differs
//
// A Buffer is immutable once returned; callers must not modify Samples.
package wave

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	resampling "github.com/tphakala/go-audio-resampling"
)

var (
	// ErrUnsupported is returned when the resource is not a readable
	// PCM WAV file or uses an encoding the decoder cannot handle.
	ErrUnsupported = errors.New("wave: unsupported audio encoding")

	// ErrEmpty is returned when the decoded buffer contains no samples.
	ErrEmpty = errors.New("wave: decoded buffer is empty")
)

// Buffer is a normalized mono waveform: amplitude samples in [-1, 1]
// at a fixed sample rate. It is immutable once produced.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Decode reads a RIFF/WAV stream and returns a normalized mono Buffer
// at the source sample rate. Multi-channel audio is downmixed by
// averaging channels.
func Decode(r io.ReadSeeker) (*Buffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrUnsupported
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if pcm == nil || len(pcm.Data) == 0 {
		return nil, ErrEmpty
	}

	channels := 1
	if pcm.Format != nil && pcm.Format.NumChannels > 0 {
		channels = pcm.Format.NumChannels
	}
	depth := pcm.SourceBitDepth
	if depth <= 0 {
		depth = 16
	}
	scale := float64(int64(1) << (depth - 1))

	frames := len(pcm.Data) / channels
	if frames == 0 {
		return nil, ErrEmpty
	}

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(pcm.Data[i*channels+c])
		}
		s := sum / float64(channels) / scale
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		samples[i] = s
	}

	rate := int(d.SampleRate)
	if pcm.Format != nil && pcm.Format.SampleRate > 0 {
		rate = pcm.Format.SampleRate
	}
	if rate <= 0 {
		return nil, ErrUnsupported
	}

	return &Buffer{Samples: samples, SampleRate: rate}, nil
}

// DecodeFile opens and decodes a WAV file. The file handle is released
// on every exit path.
func DecodeFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wave: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Resample converts a buffer to the given sample rate. When the buffer
// is already at the target rate it is returned unchanged.
func Resample(buf *Buffer, rate int) (*Buffer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("wave: invalid target rate %d", rate)
	}
	if buf.SampleRate == rate {
		return buf, nil
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(buf.SampleRate),
		OutputRate: float64(rate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("wave: create resampler: %w", err)
	}

	out, err := rs.Process(buf.Samples)
	if err != nil {
		return nil, fmt.Errorf("wave: resample: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}

	samples := make([]float64, len(out))
	copy(samples, out)
	return &Buffer{Samples: samples, SampleRate: rate}, nil
}
