package timeline

// msEpochThreshold separates second-resolution timestamps from
// millisecond ones: epoch values above 1e12 are already milliseconds,
// anything smaller is assumed to be seconds.
const msEpochThreshold = 1_000_000_000_000

// MaxBeatGapMs is the largest gap between accepted heart-rate samples
// before the stream is considered to have dropped out.
const MaxBeatGapMs = 2000

// NormalizeToMillis converts a timestamp of unknown resolution to
// milliseconds using the magnitude heuristic above.
func NormalizeToMillis(t int64) int64 {
	if t > msEpochThreshold {
		return t
	}
	return t * 1000
}

// Split separates a combined timeline into its three per-modality
// sequences, dropping absent sub-fields and preserving order.
func Split(entries []Entry) (expr []ExpressionPoint, hr []HrPoint, voice []VoicePoint) {
	for _, e := range entries {
		if e.Expression != nil {
			expr = append(expr, *e.Expression)
		}
		if e.Hr != nil {
			hr = append(hr, *e.Hr)
		}
		if e.Voice != nil {
			voice = append(voice, *e.Voice)
		}
	}
	return expr, hr, voice
}

// DedupeHr collapses heart-rate readings to one bpm per exact
// timestamp, keeping the last reading seen for each. Timestamps are
// normalized to milliseconds and invalid readings are dropped.
// First-occurrence order is preserved, so the output stays in the
// order the sensor emitted it.
func DedupeHr(points []HrPoint) (timesMs []int64, bpms []float64) {
	index := make(map[int64]int, len(points))
	for _, p := range points {
		if !p.Valid() {
			continue
		}
		tMs := NormalizeToMillis(p.Time)
		if i, ok := index[tMs]; ok {
			bpms[i] = *p.Bpm
			continue
		}
		index[tMs] = len(timesMs)
		timesMs = append(timesMs, tMs)
		bpms = append(bpms, *p.Bpm)
	}
	return timesMs, bpms
}

// FilterGaps drops heart-rate samples whose gap since the previously
// accepted sample is non-positive (duplicate or non-monotonic) or
// larger than MaxBeatGapMs (sensor dropout). The first sample is
// always accepted. Inputs are the parallel slices from DedupeHr.
func FilterGaps(timesMs []int64, bpms []float64) (outTimes []int64, outBpms []float64) {
	if len(timesMs) == 0 {
		return nil, nil
	}
	outTimes = append(outTimes, timesMs[0])
	outBpms = append(outBpms, bpms[0])
	prev := timesMs[0]
	for i := 1; i < len(timesMs); i++ {
		dt := timesMs[i] - prev
		if dt <= 0 || dt > MaxBeatGapMs {
			continue
		}
		outTimes = append(outTimes, timesMs[i])
		outBpms = append(outBpms, bpms[i])
		prev = timesMs[i]
	}
	return outTimes, outBpms
}
