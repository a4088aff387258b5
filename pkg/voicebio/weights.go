package voicebio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Network architecture. Two convolution-and-pooling stages with
// increasing channel width feed two dense layers ending in a 5-unit
// sigmoid multi-task head. Normalization and dropout exist only in the
// training regime and have no inference-time weights.
const (
	NumScores = 5 // stress, depression, anxiety, cognitiveDecline, respiratoryHealth

	conv1Channels = 8
	conv2Channels = 16
	kernelSize    = 3
	pool1Size     = VectorSize / 2                // 64
	pool2Size     = pool1Size / 2                 // 32
	flatSize      = conv2Channels * pool2Size     // 512
	dense1Size    = 64
)

// WeightsVersion is the current artifact format version.
const WeightsVersion = 1

// ConvLayer holds one 1-D convolution: W is laid out [out][in][kernel],
// B has one bias per output channel.
type ConvLayer struct {
	In     int       `msgpack:"in"`
	Out    int       `msgpack:"out"`
	Kernel int       `msgpack:"kernel"`
	W      []float32 `msgpack:"w"`
	B      []float32 `msgpack:"b"`
}

// DenseLayer holds one fully connected layer: W is laid out [out][in].
type DenseLayer struct {
	In  int       `msgpack:"in"`
	Out int       `msgpack:"out"`
	W   []float32 `msgpack:"w"`
	B   []float32 `msgpack:"b"`
}

// Weights is the frozen parameter set of the inference network,
// msgpack-encoded on disk.
type Weights struct {
	Version int    `msgpack:"version"`
	Seed    uint64 `msgpack:"seed"` // seed of a generated placeholder, 0 for trained artifacts

	Conv1  ConvLayer  `msgpack:"conv1"`
	Conv2  ConvLayer  `msgpack:"conv2"`
	Dense1 DenseLayer `msgpack:"dense1"`
	Dense2 DenseLayer `msgpack:"dense2"`
}

// Validate checks that every layer matches the fixed architecture.
func (w *Weights) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: nil", ErrInvalidWeights)
	}
	if w.Version != WeightsVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrInvalidWeights, w.Version, WeightsVersion)
	}
	checkConv := func(name string, l ConvLayer, in, out int) error {
		if l.In != in || l.Out != out || l.Kernel != kernelSize {
			return fmt.Errorf("%w: %s shape %dx%dx%d, want %dx%dx%d",
				ErrInvalidWeights, name, l.Out, l.In, l.Kernel, out, in, kernelSize)
		}
		if len(l.W) != out*in*kernelSize || len(l.B) != out {
			return fmt.Errorf("%w: %s has %d weights and %d biases", ErrInvalidWeights, name, len(l.W), len(l.B))
		}
		return nil
	}
	checkDense := func(name string, l DenseLayer, in, out int) error {
		if l.In != in || l.Out != out {
			return fmt.Errorf("%w: %s shape %dx%d, want %dx%d", ErrInvalidWeights, name, l.Out, l.In, out, in)
		}
		if len(l.W) != out*in || len(l.B) != out {
			return fmt.Errorf("%w: %s has %d weights and %d biases", ErrInvalidWeights, name, len(l.W), len(l.B))
		}
		return nil
	}

	if err := checkConv("conv1", w.Conv1, 1, conv1Channels); err != nil {
		return err
	}
	if err := checkConv("conv2", w.Conv2, conv1Channels, conv2Channels); err != nil {
		return err
	}
	if err := checkDense("dense1", w.Dense1, flatSize, dense1Size); err != nil {
		return err
	}
	if err := checkDense("dense2", w.Dense2, dense1Size, NumScores); err != nil {
		return err
	}

	for _, vals := range [][]float32{w.Conv1.W, w.Conv1.B, w.Conv2.W, w.Conv2.B, w.Dense1.W, w.Dense1.B, w.Dense2.W, w.Dense2.B} {
		for _, v := range vals {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return fmt.Errorf("%w: non-finite parameter", ErrInvalidWeights)
			}
		}
	}
	return nil
}

// GenerateWeights produces a deterministic placeholder artifact from a
// seed. The parameters are scaled normal draws, not trained values;
// the resulting scores carry no clinical meaning.
func GenerateWeights(seed uint64) *Weights {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	fill := func(n int, scale float64) []float32 {
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(rng.NormFloat64() * scale)
		}
		return out
	}

	return &Weights{
		Version: WeightsVersion,
		Seed:    seed,
		Conv1: ConvLayer{
			In: 1, Out: conv1Channels, Kernel: kernelSize,
			W: fill(conv1Channels*1*kernelSize, 0.3),
			B: fill(conv1Channels, 0.05),
		},
		Conv2: ConvLayer{
			In: conv1Channels, Out: conv2Channels, Kernel: kernelSize,
			W: fill(conv2Channels*conv1Channels*kernelSize, 0.15),
			B: fill(conv2Channels, 0.05),
		},
		Dense1: DenseLayer{
			In: flatSize, Out: dense1Size,
			W: fill(dense1Size*flatSize, 0.05),
			B: fill(dense1Size, 0.02),
		},
		Dense2: DenseLayer{
			In: dense1Size, Out: NumScores,
			W: fill(NumScores*dense1Size, 0.15),
			B: fill(NumScores, 0.05),
		},
	}
}

// EncodeWeights serializes an artifact.
func EncodeWeights(w *Weights) ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("voicebio: encode weights: %w", err)
	}
	return data, nil
}

// DecodeWeights parses and validates an artifact.
func DecodeWeights(data []byte) (*Weights, error) {
	var w Weights
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// WriteWeightsFile writes an artifact to disk.
func WriteWeightsFile(path string, w *Weights) error {
	data, err := EncodeWeights(w)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("voicebio: write weights %s: %w", path, err)
	}
	return nil
}

// ReadWeightsFile reads and validates an artifact from disk.
func ReadWeightsFile(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("voicebio: read weights %s: %w", path, err)
	}
	return DecodeWeights(data)
}
