package summarize

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

// VoiceSummary aggregates the basic per-frame voice features over
// valid frames. AvgPitch covers only frames with a detected pitch.
// Sufficient is false when no valid frame was present.
type VoiceSummary struct {
	AvgVolume  float64 `json:"avgVolume"`
	MaxVolume  float64 `json:"maxVolume"`
	AvgPitch   float64 `json:"avgPitch"`
	Sufficient bool    `json:"-"`
}

// VoiceDetail aggregates the spectral voice descriptors over valid
// frames that carry an MFCC vector. AvgMfcc is the per-coefficient
// mean; its length follows the first such frame.
type VoiceDetail struct {
	AvgMfcc             []float64 `json:"avgMfcc"`
	AvgSpectralCentroid float64   `json:"avgSpectralCentroid"`
	AvgZcr              float64   `json:"avgZcr"`
	Sufficient          bool      `json:"-"`
}

// Voice summarizes volume and pitch over frames flagged valid.
// Frames without a detected pitch (nil or non-positive) are excluded
// from the pitch average; zero is returned when none detected one.
func Voice(points []timeline.VoicePoint) VoiceSummary {
	var volumes, pitches []float64
	for _, p := range points {
		if !p.IsValid {
			continue
		}
		volumes = append(volumes, p.Volume)
		if pitch, ok := p.PitchValue(); ok {
			pitches = append(pitches, pitch)
		}
	}
	if len(volumes) == 0 {
		return VoiceSummary{}
	}

	out := VoiceSummary{
		AvgVolume:  stat.Mean(volumes, nil),
		MaxVolume:  floats.Max(volumes),
		Sufficient: true,
	}
	if len(pitches) > 0 {
		out.AvgPitch = stat.Mean(pitches, nil)
	}
	return out
}

// VoiceAdvanced summarizes MFCC, spectral centroid and zero-crossing
// rate over valid frames with a non-empty MFCC vector. The
// coefficient count is fixed by the first such frame; frames whose
// vector length differs are skipped rather than indexed positionally.
func VoiceAdvanced(points []timeline.VoicePoint) VoiceDetail {
	var valid []timeline.VoicePoint
	for _, p := range points {
		if p.IsValid && len(p.Mfcc) > 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return VoiceDetail{AvgMfcc: []float64{}}
	}

	mfccLen := len(valid[0].Mfcc)
	avgMfcc := make([]float64, mfccLen)
	mfccCount := 0
	centroids := make([]float64, 0, len(valid))
	zcrs := make([]float64, 0, len(valid))

	for _, p := range valid {
		if len(p.Mfcc) == mfccLen {
			for i, c := range p.Mfcc {
				avgMfcc[i] += c
			}
			mfccCount++
		}
		centroids = append(centroids, p.SpectralCentroid)
		zcrs = append(zcrs, p.Zcr)
	}
	for i := range avgMfcc {
		avgMfcc[i] /= float64(mfccCount)
	}

	return VoiceDetail{
		AvgMfcc:             avgMfcc,
		AvgSpectralCentroid: stat.Mean(centroids, nil),
		AvgZcr:              stat.Mean(zcrs, nil),
		Sufficient:          true,
	}
}
