package summarize

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

// longPauseGapMs is the smallest gap between consecutive voice frames
// counted as a long pause.
const longPauseGapMs = 2000

// Diagnostics holds the secondary signal-quality indicators derived
// from the raw timeline. They feed the scorers and are never exposed
// as clinical measurements.
type Diagnostics struct {
	BeatsUsed          int     `json:"beatsUsed"`
	DurationS          float64 `json:"duration_s"`
	MeanBpm            float64 `json:"meanBpm"`
	AudioValidFraction float64 `json:"audioValidFraction"`
	VoiceActivityFrac  float64 `json:"voiceActivityFrac"`
	LongPauseFrac      float64 `json:"longPauseFrac"`
	MaxPitch           float64 `json:"maxPitch"`
	PitchVar           float64 `json:"pitchVar"`
	FaceConfidence     float64 `json:"faceConfidence"`
	TranscriptWords    int     `json:"transcriptWords"`
}

// Diagnose computes the quality indicators from the raw, unfiltered
// timeline. Heart-rate readings are deduplicated per timestamp (last
// wins) but not gap-filtered here.
func Diagnose(entries []timeline.Entry, transcript string) Diagnostics {
	out := Diagnostics{TranscriptWords: len(strings.Fields(transcript))}
	if len(entries) == 0 {
		return out
	}

	minT, maxT := entries[0].Time, entries[0].Time
	for _, e := range entries {
		if e.Time < minT {
			minT = e.Time
		}
		if e.Time > maxT {
			maxT = e.Time
		}
	}
	out.DurationS = float64(maxT-minT) / 1000.0

	_, hrPoints, voicePoints := timeline.Split(entries)

	// Beat counting keeps the last bpm per raw timestamp, matching
	// the dedupe of the HRV pipeline but without the gap filter.
	index := make(map[int64]int, len(hrPoints))
	var bpms []float64
	for _, h := range hrPoints {
		if !h.Valid() {
			continue
		}
		if i, seen := index[h.Time]; seen {
			bpms[i] = *h.Bpm
			continue
		}
		index[h.Time] = len(bpms)
		bpms = append(bpms, *h.Bpm)
	}
	out.BeatsUsed = len(bpms)
	if out.BeatsUsed > 0 {
		out.MeanBpm = stat.Mean(bpms, nil)
	}

	if len(voicePoints) > 0 {
		validCount := 0
		var pitches []float64
		voiceTimes := make([]int64, len(voicePoints))
		for i, v := range voicePoints {
			if v.IsValid {
				validCount++
			}
			if pitch, ok := v.PitchValue(); ok {
				pitches = append(pitches, pitch)
			}
			voiceTimes[i] = v.Time
		}
		out.AudioValidFraction = float64(validCount) / float64(len(voicePoints))
		out.VoiceActivityFrac = float64(len(voicePoints)) / float64(len(entries))

		for _, p := range pitches {
			if p > out.MaxPitch {
				out.MaxPitch = p
			}
		}
		if len(pitches) > 1 {
			out.PitchVar = stat.Variance(pitches, nil)
		}

		sort.Slice(voiceTimes, func(i, j int) bool { return voiceTimes[i] < voiceTimes[j] })
		if len(voiceTimes) > 1 {
			longGaps := 0
			for i := 1; i < len(voiceTimes); i++ {
				if voiceTimes[i]-voiceTimes[i-1] > longPauseGapMs {
					longGaps++
				}
			}
			out.LongPauseFrac = float64(longGaps) / float64(len(voiceTimes)-1)
		}
	}

	var faceConfs []float64
	for _, e := range entries {
		if e.Expression != nil {
			faceConfs = append(faceConfs, e.Expression.Confidence)
		}
	}
	if len(faceConfs) > 0 {
		out.FaceConfidence = stat.Mean(faceConfs, nil)
	}

	return out
}
