package hrv

import (
	"math"
	"testing"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

const baseMs = int64(1_700_000_000_000)

// beatSeries builds n readings spaced stepMs apart with bpm produced
// by the given function of the sample index.
func beatSeries(n int, stepMs int64, bpm func(i int) float64) []timeline.HrPoint {
	out := make([]timeline.HrPoint, n)
	for i := range out {
		v := bpm(i)
		out[i] = timeline.HrPoint{Time: baseMs + int64(i)*stepMs, Bpm: &v}
	}
	return out
}

func TestFrequencyDomainTooFewSamples(t *testing.T) {
	fd := NewFrequencyDomain()
	got := fd.Compute(beatSeries(3, 1000, func(int) float64 { return 60 }))
	if got.Valid {
		t.Fatal("three samples must be invalid")
	}
	if got.LF != 0 || got.HF != 0 || got.LFHFRatio != 0 {
		t.Errorf("invalid result must be all-zero, got %+v", got)
	}
}

func TestFrequencyDomainShortSpan(t *testing.T) {
	fd := NewFrequencyDomain()
	// 10 samples over 9 seconds, under the 60 s minimum.
	got := fd.Compute(beatSeries(10, 1000, func(int) float64 { return 60 }))
	if got.Valid {
		t.Fatal("9 s span must be invalid")
	}
}

func TestFrequencyDomainGapFilteredToInvalid(t *testing.T) {
	fd := NewFrequencyDomain()
	// 3000 ms between beats exceeds the 2000 ms dropout threshold, so
	// everything after the first sample is rejected.
	got := fd.Compute(beatSeries(100, 3000, func(int) float64 { return 60 }))
	if got.Valid {
		t.Fatal("gap-filtered series must be invalid")
	}
}

func TestFrequencyDomainLowFrequencyModulation(t *testing.T) {
	fd := NewFrequencyDomain()

	// Heart rate modulated at 0.1 Hz, inside the 0.04-0.15 Hz LF band,
	// sampled every second for two minutes.
	readings := beatSeries(121, 1000, func(i int) float64 {
		return 60.0 + 5.0*math.Sin(2.0*math.Pi*0.1*float64(i))
	})
	got := fd.Compute(readings)
	if !got.Valid {
		t.Fatal("121 beats over 120 s must be valid")
	}
	if got.LF <= 0 {
		t.Fatalf("LF = %v, want > 0", got.LF)
	}
	if got.LF <= got.HF {
		t.Errorf("LF modulation must dominate: LF=%v HF=%v", got.LF, got.HF)
	}
	if math.IsNaN(got.LFHFRatio) {
		t.Errorf("LF/HF is NaN")
	}
}

func TestFrequencyDomainInfiniteRatioOnZeroHF(t *testing.T) {
	fd := NewFrequencyDomain()

	// A constant heart rate detrends to an all-zero series: both bands
	// integrate to zero and the ratio degenerates to +Inf.
	got := fd.Compute(beatSeries(121, 1000, func(int) float64 { return 60 }))
	if !got.Valid {
		t.Fatal("constant series long enough must still be valid")
	}
	if got.HF != 0 {
		t.Fatalf("HF = %v, want 0 for constant series", got.HF)
	}
	if !math.IsInf(got.LFHFRatio, 1) {
		t.Errorf("LF/HF = %v, want +Inf when HF is zero", got.LFHFRatio)
	}
}

func TestFrequencyDomainDeterministic(t *testing.T) {
	fd := NewFrequencyDomain()
	readings := beatSeries(121, 1000, func(i int) float64 {
		return 62.0 + 4.0*math.Sin(2.0*math.Pi*0.25*float64(i))
	})
	a := fd.Compute(readings)
	b := fd.Compute(readings)
	if a != b {
		t.Errorf("identical inputs produced different spectra: %+v vs %+v", a, b)
	}
}
