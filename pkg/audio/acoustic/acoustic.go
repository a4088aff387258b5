// Package acoustic computes short-time acoustic descriptors from a
// normalized waveform.
//
// The extractor slides a 25 ms window with a 10 ms hop over the signal
// and derives, per recording:
//
//   - Pitch statistics (autocorrelation F0 in the 50–500 Hz voice band)
//   - Energy statistics (per-window RMS)
//   - Spectral shape (centroid, rolloff, zero-crossing rate)
//   - Voicing/pause structure (speaking rate, pause duration,
//     articulation rate)
//   - Voice quality (jitter, shimmer, harmonic-to-noise ratio)
//   - Prosodic contours (fixed-length F0 and intensity tracks)
//
// Default parameters match the engine convention:
//
//	SampleRate: 16000
//	WindowSize: 400 (25 ms)
//	HopSize:    160 (10 ms)
//	FFTSize:    512
//
// Recordings without a minimum number of voiced windows (silence, pure
// noise) are rejected with ErrInsufficientSignal rather than reduced to
// degenerate zeros.
package acoustic

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Thepluscode/medimind-voice/pkg/audio/wave"
)

// ErrInsufficientSignal is returned when a recording contains too few
// voiced windows for a meaningful analysis.
var ErrInsufficientSignal = errors.New("acoustic: insufficient voiced signal")

// ContourPoints is the fixed length of the prosodic F0 and intensity
// contours. The feature vector layout depends on this value.
const ContourPoints = 50

// Config controls windowed feature extraction parameters.
type Config struct {
	SampleRate       int     `yaml:"sample_rate"`        // audio sample rate in Hz (default 16000)
	WindowSize       int     `yaml:"window_size"`        // window length in samples (default 400 = 25ms)
	HopSize          int     `yaml:"hop_size"`           // hop length in samples (default 160 = 10ms)
	FFTSize          int     `yaml:"fft_size"`           // FFT size for spectral shape (default 512)
	MinPitch         float64 `yaml:"min_pitch"`          // lowest F0 considered voiced (default 50 Hz)
	MaxPitch         float64 `yaml:"max_pitch"`          // highest F0 considered voiced (default 500 Hz)
	VoicingThreshold float64 `yaml:"voicing_threshold"`  // min normalized autocorrelation (default 0.40)
	EnergyThreshold  float64 `yaml:"energy_threshold"`   // RMS speech/pause threshold (default 0.02)
	MinPauseWindows  int     `yaml:"min_pause_windows"`  // min hop count for a pause run (default 5 = 50ms)
	RolloffPercent   float64 `yaml:"rolloff_percent"`    // spectral rolloff energy percentile (default 0.85)
	MinVoicedWindows int     `yaml:"min_voiced_windows"` // min voiced windows per recording (default 10)
}

// DefaultConfig returns the standard config for 16 kHz speech.
func DefaultConfig() Config {
	return Config{
		SampleRate:       16000,
		WindowSize:       400,
		HopSize:          160,
		FFTSize:          512,
		MinPitch:         50,
		MaxPitch:         500,
		VoicingThreshold: 0.40,
		EnergyThreshold:  0.02,
		MinPauseWindows:  5,
		RolloffPercent:   0.85,
		MinVoicedWindows: 10,
	}
}

// Features is the full acoustic descriptor set for one recording.
type Features struct {
	PitchMean  float64 `json:"pitch_mean"`  // Hz
	PitchStd   float64 `json:"pitch_std"`   // Hz
	PitchRange float64 `json:"pitch_range"` // Hz (max - min)

	EnergyMean float64 `json:"energy_mean"` // RMS
	EnergyStd  float64 `json:"energy_std"`

	SpectralCentroid float64 `json:"spectral_centroid"` // Hz
	SpectralRolloff  float64 `json:"spectral_rolloff"`  // Hz
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`

	SpeakingRate     float64 `json:"speaking_rate"`     // syllable proxy / s
	PauseDuration    float64 `json:"pause_duration"`    // mean pause length, s
	ArticulationRate float64 `json:"articulation_rate"` // syllable proxy / speech s

	Jitter  float64 `json:"jitter"`  // pitch period perturbation, %
	Shimmer float64 `json:"shimmer"` // amplitude perturbation, %
	HNR     float64 `json:"hnr"`     // harmonic-to-noise ratio, dB

	F0Contour        []float64 `json:"f0_contour"`        // ContourPoints samples, Hz
	IntensityContour []float64 `json:"intensity_contour"` // ContourPoints samples, RMS
}

// Extractor computes acoustic features from normalized waveforms.
type Extractor struct {
	cfg    Config
	window []float64 // Hamming window for spectral analysis
}

// sanitize replaces unusable parameter values with defaults so a
// partially specified config cannot produce a panicking extractor:
// zero sizes would divide by zero in the window loop, and an FFT size
// below the window size (or not a power of two) would break the
// spectral pass.
func (c Config) sanitize() Config {
	d := DefaultConfig()
	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.HopSize <= 0 {
		c.HopSize = d.HopSize
	}
	if c.FFTSize < c.WindowSize || c.FFTSize&(c.FFTSize-1) != 0 {
		c.FFTSize = d.FFTSize
		for c.FFTSize < c.WindowSize {
			c.FFTSize <<= 1
		}
	}
	if c.MinPitch <= 0 {
		c.MinPitch = d.MinPitch
	}
	if c.MaxPitch <= c.MinPitch {
		c.MinPitch, c.MaxPitch = d.MinPitch, d.MaxPitch
	}
	if c.VoicingThreshold <= 0 || c.VoicingThreshold >= 1 {
		c.VoicingThreshold = d.VoicingThreshold
	}
	if c.EnergyThreshold <= 0 {
		c.EnergyThreshold = d.EnergyThreshold
	}
	if c.MinPauseWindows <= 0 {
		c.MinPauseWindows = d.MinPauseWindows
	}
	if c.RolloffPercent <= 0 || c.RolloffPercent > 1 {
		c.RolloffPercent = d.RolloffPercent
	}
	if c.MinVoicedWindows <= 0 {
		c.MinVoicedWindows = d.MinVoicedWindows
	}
	return c
}

// New creates an Extractor with the given config. Unusable parameter
// values fall back to their defaults.
func New(cfg Config) *Extractor {
	cfg = cfg.sanitize()
	return &Extractor{
		cfg:    cfg,
		window: hammingWindow(cfg.WindowSize),
	}
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config { return e.cfg }

// Analyze extracts the full feature set from a waveform buffer.
// The buffer must be at the extractor's sample rate.
func (e *Extractor) Analyze(buf *wave.Buffer) (*Features, error) {
	cfg := e.cfg
	samples := buf.Samples
	if len(samples) < cfg.WindowSize {
		return nil, ErrInsufficientSignal
	}

	numWin := (len(samples)-cfg.WindowSize)/cfg.HopSize + 1

	energy := make([]float64, numWin)
	f0 := make([]float64, numWin)
	voicing := make([]float64, numWin)
	speech := make([]bool, numWin)

	for w := 0; w < numWin; w++ {
		frame := samples[w*cfg.HopSize : w*cfg.HopSize+cfg.WindowSize]
		energy[w] = rms(frame)
		speech[w] = energy[w] >= cfg.EnergyThreshold
		f0[w], voicing[w] = e.pitchWindow(frame)
	}

	var voiced []int
	for w := range f0 {
		if f0[w] > 0 {
			voiced = append(voiced, w)
		}
	}
	if len(voiced) < cfg.MinVoicedWindows {
		return nil, ErrInsufficientSignal
	}

	f := &Features{}
	e.pitchStats(f, f0, voiced)
	e.energyStats(f, energy)
	e.spectralShape(f, samples, speech)
	e.voicingStructure(f, energy, speech, float64(len(samples))/float64(cfg.SampleRate))
	e.voiceQuality(f, f0, energy, voicing, voiced)

	f.F0Contour = resampleContour(f0, ContourPoints)
	f.IntensityContour = resampleContour(energy, ContourPoints)

	return f, nil
}

func (e *Extractor) pitchStats(f *Features, f0 []float64, voiced []int) {
	vals := make([]float64, len(voiced))
	for i, w := range voiced {
		vals[i] = f0[w]
	}
	f.PitchMean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		f.PitchStd = stat.StdDev(vals, nil)
	}
	minV, maxV := vals[0], vals[0]
	for _, v := range vals {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	f.PitchRange = maxV - minV
}

func (e *Extractor) energyStats(f *Features, energy []float64) {
	f.EnergyMean = stat.Mean(energy, nil)
	if len(energy) > 1 {
		f.EnergyStd = stat.StdDev(energy, nil)
	}
}

// rms computes the root-mean-square amplitude of a frame.
func rms(frame []float64) float64 {
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// hammingWindow computes a Hamming window of the given length.
func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}
