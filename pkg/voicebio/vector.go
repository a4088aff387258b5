package voicebio

import "github.com/Thepluscode/medimind-voice/pkg/audio/acoustic"

// VectorSize is the fixed feature vector length consumed by the model.
const VectorSize = 128

// Vector is the model input: a deterministic packing of the acoustic
// feature set, every slot scaled to roughly [0, 1].
type Vector [VectorSize]float32

// Normalization constants for the scalar slots. Each feature is divided
// by a plausible upper bound for conversational speech so trained and
// inferred distributions share one scale.
const (
	normPitchMean    = 300  // Hz
	normPitchStd     = 100  // Hz
	normPitchRange   = 200  // Hz
	normEnergyMean   = 0.1  // RMS
	normEnergyStd    = 0.05 // RMS
	normCentroid     = 4000 // Hz
	normRolloff      = 8000 // Hz
	normZCR          = 0.5
	normSpeakingRate = 10 // syllables/s
	normPause        = 2  // s
	normArticulation = 10 // syllables/s
	normJitter       = 10 // %
	normShimmer      = 10 // %
	normHNR          = 40 // dB
	normF0Contour    = 500 // Hz
	normIntensity    = 0.5 // RMS
)

// Slot offsets within the vector. Contours occupy fixed ranges; the
// tail slots remain zero.
const (
	offScalars   = 0  // 14 scalar features
	offF0        = 14 // 50-point F0 contour
	offIntensity = 64 // 50-point intensity contour
	offUnused    = 114
)

// BuildVector packs acoustic features into the fixed-length model
// input. It is a pure function: identical features always produce a
// bit-identical vector.
func BuildVector(f *acoustic.Features) Vector {
	var v Vector

	v[0] = float32(f.PitchMean / normPitchMean)
	v[1] = float32(f.PitchStd / normPitchStd)
	v[2] = float32(f.PitchRange / normPitchRange)
	v[3] = float32(f.EnergyMean / normEnergyMean)
	v[4] = float32(f.EnergyStd / normEnergyStd)
	v[5] = float32(f.SpectralCentroid / normCentroid)
	v[6] = float32(f.SpectralRolloff / normRolloff)
	v[7] = float32(f.ZeroCrossingRate / normZCR)
	v[8] = float32(f.SpeakingRate / normSpeakingRate)
	v[9] = float32(f.PauseDuration / normPause)
	v[10] = float32(f.ArticulationRate / normArticulation)
	v[11] = float32(f.Jitter / normJitter)
	v[12] = float32(f.Shimmer / normShimmer)
	v[13] = float32(f.HNR / normHNR)

	for i := 0; i < acoustic.ContourPoints && i < len(f.F0Contour); i++ {
		v[offF0+i] = float32(f.F0Contour[i] / normF0Contour)
	}
	for i := 0; i < acoustic.ContourPoints && i < len(f.IntensityContour); i++ {
		v[offIntensity+i] = float32(f.IntensityContour[i] / normIntensity)
	}

	return v
}
