package voicebio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Thepluscode/medimind-voice/pkg/audio/acoustic"
	"github.com/Thepluscode/medimind-voice/pkg/audio/wave"
)

// Input describes one recorded audio resource. Exactly one of Path or
// Reader must be set. SampleRate and MIMEType declare what the caller
// expects the resource to contain; the decoded stream is checked and
// converted as needed.
type Input struct {
	Path   string
	Reader io.ReadSeeker

	// SampleRate is the expected rate, 0 for "any". Inputs at other
	// rates are resampled to the engine rate.
	SampleRate int

	// MIMEType of the resource, empty for content sniffing.
	// Only WAV containers are supported.
	MIMEType string
}

// Engine converts recorded speech samples into voice-biomarker results.
//
// An Engine is an explicit value: multiple engines with independent
// configurations and weights may coexist. The only shared mutable state
// is the loaded weights, which are read-only during inference, so
// concurrent Analyze calls on one engine are safe.
//
// State machine: an engine starts Unloaded; a successful LoadWeights,
// LoadWeightsFile, or construction-time weights load moves it to Ready.
// Analyze on an Unloaded engine fails fast with ErrNotInitialized.
type Engine struct {
	cfg       Config
	model     *Model
	extractor *acoustic.Extractor
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackend replaces the built-in inference backend.
func WithBackend(b Backend) Option {
	return func(e *Engine) {
		e.model = NewModel(b)
	}
}

// New creates an engine from a config. Weights are not loaded yet
// unless cfg.WeightsPath is set, in which case the caller should check
// Init.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		model:     NewModel(nil),
		extractor: acoustic.New(cfg.Acoustic),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init loads the configured weights artifact, if any. Engines used with
// injected weights (tests, embedded artifacts) call LoadWeights instead.
func (e *Engine) Init() error {
	if e.cfg.WeightsPath == "" {
		return nil
	}
	return e.model.LoadFile(e.cfg.WeightsPath)
}

// LoadWeights installs a validated weight set, atomically replacing any
// previous set.
func (e *Engine) LoadWeights(w *Weights) error {
	return e.model.Load(w)
}

// LoadWeightsFile loads a weights artifact from disk. Concurrent calls
// for the same path share one in-flight load.
func (e *Engine) LoadWeightsFile(path string) error {
	return e.model.LoadFile(path)
}

// Ready reports whether the engine can serve Analyze calls.
func (e *Engine) Ready() bool {
	return e.model.Loaded()
}

// Close disposes the loaded weights. The engine returns to the
// Unloaded state and may be re-initialized with a later load.
func (e *Engine) Close() error {
	return e.model.Dispose()
}

// Analyze runs the full pipeline on one recording and returns an
// immutable result. The call is synchronous end-to-end; callers impose
// timeouts through ctx, which is checked between stages.
func (e *Engine) Analyze(ctx context.Context, in Input) (*Result, error) {
	if !e.Ready() {
		return nil, ErrNotInitialized
	}
	if err := checkMIME(in.MIMEType); err != nil {
		return nil, err
	}

	buf, err := e.ingest(in)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features, err := e.extractor.Analyze(buf)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := e.model.Predict(BuildVector(features))
	if err != nil {
		return nil, err
	}

	return synthesize(features, raw, time.Now()), nil
}

func (e *Engine) ingest(in Input) (*wave.Buffer, error) {
	var (
		buf *wave.Buffer
		err error
	)
	switch {
	case in.Reader != nil:
		buf, err = wave.Decode(in.Reader)
	case in.Path != "":
		buf, err = wave.DecodeFile(in.Path)
	default:
		return nil, fmt.Errorf("%w: no audio resource", wave.ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}

	if in.SampleRate != 0 && buf.SampleRate != in.SampleRate {
		return nil, fmt.Errorf("%w: declared %d Hz, decoded %d Hz",
			wave.ErrUnsupported, in.SampleRate, buf.SampleRate)
	}
	return wave.Resample(buf, e.cfg.Acoustic.SampleRate)
}

func checkMIME(mime string) error {
	switch {
	case mime == "":
		return nil
	case strings.HasPrefix(mime, "audio/wav"),
		strings.HasPrefix(mime, "audio/x-wav"),
		strings.HasPrefix(mime, "audio/wave"),
		strings.HasPrefix(mime, "audio/vnd.wave"):
		return nil
	default:
		return fmt.Errorf("%w: mime type %q", wave.ErrUnsupported, mime)
	}
}
