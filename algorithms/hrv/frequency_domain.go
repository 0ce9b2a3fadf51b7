package hrv

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

// FrequencyResult holds spectral HRV band powers. LFHFRatio is +Inf
// when HF power is zero. Valid is false when the sample count or the
// session span was too small for a meaningful spectrum.
type FrequencyResult struct {
	LF        float64 `json:"LF"`
	HF        float64 `json:"HF"`
	LFHFRatio float64 `json:"LF/HF"`
	Valid     bool    `json:"valid"`
}

// FrequencyDomain computes LF/HF band powers from the RR series. The
// beat stream is deduplicated and gap-filtered, resampled onto a
// uniform grid by linear interpolation, mean-detrended, zero-padded
// to a power of two and transformed with a real FFT.
type FrequencyDomain struct {
	sampleRate    float64
	minGridPoints int
	minSamples    int
	minSpanSec    float64
	lfBand        [2]float64
	hfBand        [2]float64
}

// NewFrequencyDomain creates a spectral HRV calculator with the
// conventional short-term settings: 4 Hz resampling, a 256-point grid
// floor, at least 4 beats spanning at least 60 seconds, LF 0.04-0.15
// Hz and HF 0.15-0.4 Hz.
func NewFrequencyDomain() *FrequencyDomain {
	return NewFrequencyDomainWithParams(4.0, 256, 4, 60.0, [2]float64{0.04, 0.15}, [2]float64{0.15, 0.4})
}

// NewFrequencyDomainWithParams creates a calculator with custom parameters
func NewFrequencyDomainWithParams(sampleRate float64, minGridPoints, minSamples int, minSpanSec float64, lfBand, hfBand [2]float64) *FrequencyDomain {
	return &FrequencyDomain{
		sampleRate:    sampleRate,
		minGridPoints: minGridPoints,
		minSamples:    minSamples,
		minSpanSec:    minSpanSec,
		lfBand:        lfBand,
		hfBand:        hfBand,
	}
}

// Compute returns the LF and HF band powers of the RR series, or an
// invalid result when fewer than the minimum accepted samples remain
// after dedupe and gap filtering, or when they span less than the
// minimum duration.
func (fd *FrequencyDomain) Compute(readings []timeline.HrPoint) FrequencyResult {
	timesMs, bpms := timeline.DedupeHr(readings)
	if len(timesMs) < fd.minSamples {
		return FrequencyResult{}
	}

	timesMs, bpms = timeline.FilterGaps(timesMs, bpms)
	if len(timesMs) < fd.minSamples {
		return FrequencyResult{}
	}

	// RR in seconds, timestamps in seconds relative to the first beat.
	timesSec := make([]float64, len(timesMs))
	rrSec := make([]float64, len(timesMs))
	t0 := float64(timesMs[0]) / 1000.0
	for i := range timesMs {
		timesSec[i] = float64(timesMs[i])/1000.0 - t0
		rrSec[i] = 60.0 / bpms[i]
	}

	duration := timesSec[len(timesSec)-1] - timesSec[0]
	if duration < fd.minSpanSec {
		return FrequencyResult{}
	}

	resampled := fd.resample(timesSec, rrSec, duration)

	// Detrend by removing the mean.
	mean := stat.Mean(resampled, nil)
	for i := range resampled {
		resampled[i] -= mean
	}

	// Zero-pad to the next power of two.
	padLen := 1
	for padLen < len(resampled) {
		padLen <<= 1
	}
	padded := make([]float64, padLen)
	copy(padded, resampled)

	spectrum := fft.FFTReal(padded)
	df := fd.sampleRate / float64(padLen)

	var lf, hf float64
	for i := 1; i < padLen/2; i++ {
		freq := float64(i) * df
		mag := cmplx.Abs(spectrum[i])
		power := mag * mag
		if freq >= fd.lfBand[0] && freq < fd.lfBand[1] {
			lf += power
		}
		if freq >= fd.hfBand[0] && freq < fd.hfBand[1] {
			hf += power
		}
	}

	ratio := math.Inf(1)
	if hf > 0 {
		ratio = lf / hf
	}
	return FrequencyResult{LF: lf, HF: hf, LFHFRatio: ratio, Valid: true}
}

// resample interpolates the irregular RR series onto a uniform grid
// at the configured rate. Grid points outside the observed range
// clamp to the nearest boundary value.
func (fd *FrequencyDomain) resample(timesSec, rrSec []float64, duration float64) []float64 {
	n := int(math.Round(math.Max(float64(fd.minGridPoints), math.Floor(fd.sampleRate*duration))))
	dt := 1.0 / fd.sampleRate
	start := timesSec[0]

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		t := start + float64(i)*dt
		idx := sort.SearchFloat64s(timesSec, t)
		switch {
		case idx < len(timesSec) && timesSec[idx] == t:
			out[i] = rrSec[idx]
		case idx == 0:
			out[i] = rrSec[0]
		case idx >= len(timesSec):
			out[i] = rrSec[len(rrSec)-1]
		default:
			lo, hi := idx-1, idx
			frac := (t - timesSec[lo]) / (timesSec[hi] - timesSec[lo])
			out[i] = rrSec[lo]*(1-frac) + rrSec[hi]*frac
		}
	}
	return out
}
