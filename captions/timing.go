package captions

// DefaultMinFragmentSeconds keeps very short fragments on screen long enough
// to read.
const DefaultMinFragmentSeconds = 0.5

// TimedFragment is a fragment with the window during which it is visible.
type TimedFragment struct {
	Fragment
	Start float64
	End   float64
}

// AllocateTimings spreads the fragments across the narration duration,
// proportional to each fragment's character count. Every fragment gets at
// least minSeconds before normalization; because that floor can push the
// running total past totalDuration, all windows are rescaled at the end so
// the last fragment ends exactly when the narration does.
//
// Note the floor is applied before the rescale, so when many fragments are
// short they eat a larger share of the final duration than their characters
// alone would give them. That is the readability tradeoff minSeconds buys;
// tune it down toward 0 for a strictly proportional split.
func AllocateTimings(fragments []Fragment, totalDuration, minSeconds float64) []TimedFragment {
	totalChars := 0
	for _, f := range fragments {
		totalChars += f.CharCount
	}
	if totalChars == 0 {
		return nil
	}

	timed := make([]TimedFragment, 0, len(fragments))
	elapsed := 0.0
	for _, f := range fragments {
		weight := float64(f.CharCount) / float64(totalChars)
		duration := weight * totalDuration
		if duration < minSeconds {
			duration = minSeconds
		}
		timed = append(timed, TimedFragment{
			Fragment: f,
			Start:    elapsed,
			End:      elapsed + duration,
		})
		elapsed += duration
	}

	if elapsed > 0 {
		scale := totalDuration / elapsed
		for i := range timed {
			timed[i].Start *= scale
			timed[i].End *= scale
		}
	}

	return timed
}
