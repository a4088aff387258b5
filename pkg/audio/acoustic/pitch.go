package acoustic

import "math"

// pitchWindow estimates F0 for one window via normalized cross-correlation
// over lags restricted to the plausible voice band. Returns (0, 0) when the
// window has no reliable periodicity.
func (e *Extractor) pitchWindow(frame []float64) (f0, voicing float64) {
	cfg := e.cfg

	minLag := int(float64(cfg.SampleRate) / cfg.MaxPitch)
	maxLag := int(float64(cfg.SampleRate) / cfg.MinPitch)
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag > maxLag {
		return 0, 0
	}

	var total float64
	for _, s := range frame {
		total += s * s
	}
	if total < 1e-9 {
		return 0, 0
	}

	corrAt := func(lag int) float64 {
		n := len(frame) - lag
		var cross, head, tail float64
		for i := 0; i < n; i++ {
			cross += frame[i] * frame[i+lag]
			head += frame[i] * frame[i]
			tail += frame[i+lag] * frame[i+lag]
		}
		denom := math.Sqrt(head * tail)
		if denom < 1e-12 {
			return 0
		}
		return cross / denom
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		if corr := corrAt(lag); corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	if bestLag == 0 || bestCorr < cfg.VoicingThreshold {
		return 0, 0
	}

	// When the true period is a non-integer number of samples, a period
	// multiple that lands closer to an integer lag outscores the period
	// itself. Walk the integer submultiples of the winning lag and take
	// the smallest whose correlation stays near the peak; that pins F0
	// to the fundamental instead of a subharmonic.
	tol := 0.9 * bestCorr
	for k := bestLag / minLag; k >= 2; k-- {
		center := (bestLag + k/2) / k
		subLag, subCorr := 0, 0.0
		for lag := center - 1; lag <= center+1; lag++ {
			if lag < minLag || lag > maxLag {
				continue
			}
			if corr := corrAt(lag); corr > subCorr {
				subCorr = corr
				subLag = lag
			}
		}
		if subLag != 0 && subCorr >= tol && subCorr >= cfg.VoicingThreshold {
			bestLag, bestCorr = subLag, subCorr
			break
		}
	}

	return float64(cfg.SampleRate) / float64(bestLag), bestCorr
}
