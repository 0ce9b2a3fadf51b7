package hrv

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

// TimeDomainResult holds beat-to-beat variability statistics in
// milliseconds (SDNN, RMSSD) and percent (pNN50). Sufficient is false
// when fewer than two valid RR intervals were available; the metric
// fields are then zero by definition, not by computation.
type TimeDomainResult struct {
	SDNN       float64 `json:"SDNN"`
	RMSSD      float64 `json:"RMSSD"`
	PNN50      float64 `json:"pNN50"`
	Sufficient bool    `json:"-"`
}

// pnn50ThresholdMs is the successive-difference threshold defining pNN50.
const pnn50ThresholdMs = 50.0

// TimeDomain computes time-domain HRV statistics from heart-rate
// samples. It tolerates raw, unfiltered samples: readings with a nil
// or non-positive bpm are dropped, but no gap filtering is applied.
type TimeDomain struct{}

// NewTimeDomain creates a new time-domain HRV calculator
func NewTimeDomain() *TimeDomain {
	return &TimeDomain{}
}

// Compute derives RR intervals (60000/bpm, in ms) from the readings
// and returns SDNN, RMSSD and pNN50.
func (td *TimeDomain) Compute(readings []timeline.HrPoint) TimeDomainResult {
	rr := make([]float64, 0, len(readings))
	for _, r := range readings {
		if !r.Valid() {
			continue
		}
		rr = append(rr, 60000.0 / *r.Bpm)
	}
	return td.ComputeFromRR(rr)
}

// ComputeFromRR computes the statistics over an RR series in
// milliseconds. Requires at least two intervals.
func (td *TimeDomain) ComputeFromRR(rr []float64) TimeDomainResult {
	n := len(rr)
	if n < 2 {
		return TimeDomainResult{}
	}

	var sumDiffSq float64
	over50 := 0
	for i := 0; i < n-1; i++ {
		diff := rr[i+1] - rr[i]
		sumDiffSq += diff * diff
		if math.Abs(diff) > pnn50ThresholdMs {
			over50++
		}
	}

	return TimeDomainResult{
		SDNN:       stat.StdDev(rr, nil),
		RMSSD:      math.Sqrt(sumDiffSq / float64(n-1)),
		PNN50:      100.0 * float64(over50) / float64(n-1),
		Sufficient: true,
	}
}
