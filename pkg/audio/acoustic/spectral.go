package acoustic

import (
	"math"
	"math/cmplx"
)

// spectralShape fills the spectral descriptors: energy-weighted centroid
// and rolloff averaged over speech windows, plus the zero-crossing rate
// of the whole waveform.
func (e *Extractor) spectralShape(f *Features, samples []float64, speech []bool) {
	cfg := e.cfg
	halfFFT := cfg.FFTSize/2 + 1
	binHz := float64(cfg.SampleRate) / float64(cfg.FFTSize)

	fftBuf := make([]complex128, cfg.FFTSize)
	power := make([]float64, halfFFT)

	var centroidSum, rolloffSum float64
	var count int

	for w := range speech {
		if !speech[w] {
			continue
		}
		offset := w * cfg.HopSize

		for i := range fftBuf {
			fftBuf[i] = 0
		}
		for i := 0; i < cfg.WindowSize; i++ {
			fftBuf[i] = complex(samples[offset+i]*e.window[i], 0)
		}
		fft(fftBuf)

		var total float64
		for k := 0; k < halfFFT; k++ {
			p := cmplx.Abs(fftBuf[k])
			power[k] = p * p
			total += power[k]
		}
		if total < 1e-12 {
			continue
		}

		var weighted float64
		for k := 0; k < halfFFT; k++ {
			weighted += float64(k) * binHz * power[k]
		}
		centroidSum += weighted / total

		target := cfg.RolloffPercent * total
		var cum float64
		for k := 0; k < halfFFT; k++ {
			cum += power[k]
			if cum >= target {
				rolloffSum += float64(k) * binHz
				break
			}
		}
		count++
	}

	if count > 0 {
		f.SpectralCentroid = centroidSum / float64(count)
		f.SpectralRolloff = rolloffSum / float64(count)
	}

	var crossings int
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	if len(samples) > 1 {
		f.ZeroCrossingRate = float64(crossings) / float64(len(samples)-1)
	}
}

// fft performs an in-place radix-2 Cooley-Tukey FFT.
// The input length must be a power of 2.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation.
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	// Butterfly operations.
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		wn := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				u := x[start+k]
				t := w * x[start+k+half]
				x[start+k] = u + t
				x[start+k+half] = u - t
				w *= wn
			}
		}
	}
}
