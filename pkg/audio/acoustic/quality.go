package acoustic

import "math"

// voiceQuality fills jitter, shimmer, and HNR from cycle-to-cycle
// variation across adjacent voiced windows.
//
// Jitter is the mean relative pitch-period perturbation in percent;
// shimmer the mean relative amplitude perturbation in percent. HNR
// converts the normalized autocorrelation peak r of each voiced window
// into 10·log10(r/(1-r)) dB and averages, clamped to [0, 40].
func (e *Extractor) voiceQuality(f *Features, f0, energy, voicing []float64, voiced []int) {
	// Pitch periods and amplitudes for adjacent voiced window pairs.
	var periodSum, periodDelta float64
	var ampSum, ampDelta float64
	var pairs int

	prev := -10
	var prevPeriod, prevAmp float64
	for _, w := range voiced {
		period := 1.0 / f0[w]
		amp := energy[w]
		if w == prev+1 {
			periodDelta += math.Abs(period - prevPeriod)
			ampDelta += math.Abs(amp - prevAmp)
			pairs++
		}
		periodSum += period
		ampSum += amp
		prev = w
		prevPeriod = period
		prevAmp = amp
	}

	meanPeriod := periodSum / float64(len(voiced))
	meanAmp := ampSum / float64(len(voiced))
	if pairs > 0 && meanPeriod > 0 {
		f.Jitter = periodDelta / float64(pairs) / meanPeriod * 100
	}
	if pairs > 0 && meanAmp > 0 {
		f.Shimmer = ampDelta / float64(pairs) / meanAmp * 100
	}

	var hnrSum float64
	for _, w := range voiced {
		r := voicing[w]
		if r > 0.999 {
			r = 0.999
		}
		if r <= 0 {
			continue
		}
		hnrSum += 10 * math.Log10(r/(1-r))
	}
	hnr := hnrSum / float64(len(voiced))
	if hnr < 0 {
		hnr = 0
	} else if hnr > 40 {
		hnr = 40
	}
	f.HNR = hnr
}
