package acoustic

// voicingStructure derives speaking rate, pause duration, and articulation
// rate from the per-window speech/pause classification.
//
// Local energy maxima inside speech regions serve as a syllable-rate
// proxy: vowel nuclei carry the energy peaks of connected speech.
func (e *Extractor) voicingStructure(f *Features, energy []float64, speech []bool, totalDur float64) {
	cfg := e.cfg
	hopSec := float64(cfg.HopSize) / float64(cfg.SampleRate)

	// Pause runs: consecutive non-speech windows of at least
	// MinPauseWindows hops.
	var pauseSum float64
	var pauseCount, run int
	flush := func() {
		if run >= cfg.MinPauseWindows {
			pauseSum += float64(run) * hopSec
			pauseCount++
		}
		run = 0
	}
	for _, sp := range speech {
		if sp {
			flush()
		} else {
			run++
		}
	}
	flush()
	if pauseCount > 0 {
		f.PauseDuration = pauseSum / float64(pauseCount)
	}

	// Energy peaks within speech regions.
	peakFloor := cfg.EnergyThreshold * 1.2
	var peaks, speechWin int
	for w := range speech {
		if speech[w] {
			speechWin++
		}
		if w == 0 || w == len(speech)-1 || !speech[w] {
			continue
		}
		if energy[w] > energy[w-1] && energy[w] >= energy[w+1] && energy[w] >= peakFloor {
			peaks++
		}
	}

	if totalDur > 0 {
		f.SpeakingRate = float64(peaks) / totalDur
	}
	speechDur := float64(speechWin) * hopSec
	if speechDur > 0 {
		f.ArticulationRate = float64(peaks) / speechDur
	}
}

// resampleContour linearly resamples a per-window track into a
// fixed-length contour.
func resampleContour(track []float64, points int) []float64 {
	out := make([]float64, points)
	if len(track) == 0 {
		return out
	}
	if len(track) == 1 {
		for i := range out {
			out[i] = track[0]
		}
		return out
	}
	step := float64(len(track)-1) / float64(points-1)
	for i := range out {
		pos := float64(i) * step
		lo := int(pos)
		if lo >= len(track)-1 {
			out[i] = track[len(track)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = track[lo]*(1-frac) + track[lo+1]*frac
	}
	return out
}
