package voicebio

import (
	"math"
	"sync/atomic"
)

// Backend is the narrow numeric-execution interface behind the
// inference model. Implementations must make a successful Load visible
// atomically: Predict never observes a partially-loaded parameter set.
// Predict must be safe for concurrent use; loaded weights are read-only
// during inference.
type Backend interface {
	// Load validates the weights and installs them as the active
	// parameter set, replacing any previous set.
	Load(w *Weights) error

	// Predict runs the forward pass. It returns ErrModelNotLoaded
	// before any successful Load and ErrInference when the pass
	// produces a non-finite value.
	Predict(vec Vector) (RawPredictions, error)

	// Close releases the active weights. Subsequent Predict calls
	// return ErrModelNotLoaded; a later Load re-activates the backend.
	Close() error
}

// netBackend is the reference Backend: a hand-rolled forward pass of
// the fixed convolution/dense architecture.
type netBackend struct {
	weights atomic.Pointer[Weights]
}

// NewNetBackend returns the built-in pure-Go inference backend.
func NewNetBackend() Backend {
	return &netBackend{}
}

func (nb *netBackend) Load(w *Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	nb.weights.Store(w)
	return nil
}

func (nb *netBackend) Close() error {
	nb.weights.Store(nil)
	return nil
}

func (nb *netBackend) Predict(vec Vector) (RawPredictions, error) {
	w := nb.weights.Load()
	if w == nil {
		return RawPredictions{}, ErrModelNotLoaded
	}

	// Stage 1: conv(1→8, k3, same) + ReLU + maxpool/2.
	stage1 := convPoolStage(vec[:], VectorSize, 1, &w.Conv1)

	// Stage 2: conv(8→16, k3, same) + ReLU + maxpool/2.
	stage2 := convPoolStage(stage1, pool1Size, conv1Channels, &w.Conv2)

	// Dense head: 512 → 64 → 5, sigmoid outputs.
	hidden := denseForward(stage2, &w.Dense1, true)
	logits := denseForward(hidden, &w.Dense2, false)

	out := make([]float64, NumScores)
	for i, l := range logits {
		s := 1.0 / (1.0 + math.Exp(-float64(l)))
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return RawPredictions{}, ErrInference
		}
		out[i] = clamp01(s)
	}

	return RawPredictions{
		Stress:            out[0],
		Depression:        out[1],
		Anxiety:           out[2],
		CognitiveDecline:  out[3],
		RespiratoryHealth: out[4],
	}, nil
}

// convPoolStage applies one same-padded 1-D convolution followed by
// ReLU and a stride-2 max pool. Input and output are channel-major:
// x[c*width + i]. The input has layer.In channels of the given width;
// the output has layer.Out channels of width/2.
func convPoolStage(x []float32, width, inCh int, layer *ConvLayer) []float32 {
	half := kernelSize / 2
	conv := make([]float32, layer.Out*width)

	for oc := 0; oc < layer.Out; oc++ {
		for i := 0; i < width; i++ {
			acc := layer.B[oc]
			for ic := 0; ic < inCh; ic++ {
				base := (oc*inCh + ic) * kernelSize
				for k := 0; k < kernelSize; k++ {
					j := i + k - half
					if j < 0 || j >= width {
						continue // zero padding
					}
					acc += layer.W[base+k] * x[ic*width+j]
				}
			}
			if acc < 0 {
				acc = 0 // ReLU
			}
			conv[oc*width+i] = acc
		}
	}

	outW := width / 2
	pooled := make([]float32, layer.Out*outW)
	for oc := 0; oc < layer.Out; oc++ {
		for i := 0; i < outW; i++ {
			a := conv[oc*width+2*i]
			b := conv[oc*width+2*i+1]
			if b > a {
				a = b
			}
			pooled[oc*outW+i] = a
		}
	}
	return pooled
}

// denseForward applies one fully connected layer, optionally with ReLU.
func denseForward(x []float32, layer *DenseLayer, relu bool) []float32 {
	out := make([]float32, layer.Out)
	for o := 0; o < layer.Out; o++ {
		acc := layer.B[o]
		row := layer.W[o*layer.In : (o+1)*layer.In]
		for i, v := range x {
			acc += row[i] * v
		}
		if relu && acc < 0 {
			acc = 0
		}
		out[o] = acc
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
