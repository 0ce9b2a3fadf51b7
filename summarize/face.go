package summarize

import (
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

// FaceSummary aggregates per-frame facial-emotion samples.
// PercentTime maps each emotion label to the fraction of frames it
// was the detected emotion.
type FaceSummary struct {
	PercentTime   map[string]float64 `json:"percentTime"`
	AvgConfidence float64            `json:"avgConfidence"`
}

// FaceDetail carries the secondary facial descriptors.
type FaceDetail struct {
	AvgEar float64 `json:"avgEar"`
}

// Face summarizes expression frames into emotion shares and mean
// detection confidence. An empty input yields an empty percent map
// and zero confidence.
func Face(frames []timeline.ExpressionPoint) FaceSummary {
	out := FaceSummary{PercentTime: map[string]float64{}}
	if len(frames) == 0 {
		return out
	}

	counts := make(map[string]int, 8)
	conf := make([]float64, len(frames))
	for i, f := range frames {
		counts[f.Emotion]++
		conf[i] = f.Confidence
	}

	total := float64(len(frames))
	for emotion, n := range counts {
		out.PercentTime[emotion] = float64(n) / total
	}
	out.AvgConfidence = stat.Mean(conf, nil)
	return out
}

// FaceAdvanced computes the mean eye-aspect-ratio over all frames.
// No validity filter is applied.
func FaceAdvanced(frames []timeline.ExpressionPoint) FaceDetail {
	if len(frames) == 0 {
		return FaceDetail{}
	}
	ears := make([]float64, len(frames))
	for i, f := range frames {
		ears[i] = f.Ear
	}
	return FaceDetail{AvgEar: stat.Mean(ears, nil)}
}
