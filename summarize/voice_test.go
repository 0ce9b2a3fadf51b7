package summarize

import (
	"testing"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

func TestVoiceNoValidPoints(t *testing.T) {
	points := []timeline.VoicePoint{
		{Volume: 0.3, IsValid: false},
		{Volume: 0.5, IsValid: false},
	}
	got := Voice(points)
	if got.Sufficient {
		t.Fatal("no valid points must not be sufficient")
	}
	if got.AvgVolume != 0 || got.MaxVolume != 0 || got.AvgPitch != 0 {
		t.Errorf("result must be all-zero, got %+v", got)
	}
}

func TestVoiceExcludesUndetectedPitch(t *testing.T) {
	points := []timeline.VoicePoint{
		{Volume: 0.2, Pitch: nil, IsValid: true},
		{Volume: 0.4, Pitch: fp(-1), IsValid: true}, // no pitch detected
		{Volume: 0.3, Pitch: fp(220), IsValid: true},
		{Volume: 0.9, Pitch: fp(500), IsValid: false}, // invalid, ignored entirely
	}
	got := Voice(points)
	if !got.Sufficient {
		t.Fatal("valid points present, must be sufficient")
	}
	if !almostEqual(got.AvgVolume, 0.3, 1e-12) {
		t.Errorf("avgVolume = %v, want 0.3", got.AvgVolume)
	}
	if got.MaxVolume != 0.4 {
		t.Errorf("maxVolume = %v, want 0.4", got.MaxVolume)
	}
	if got.AvgPitch != 220 {
		t.Errorf("avgPitch = %v, want 220", got.AvgPitch)
	}
}

func TestVoiceNoDetectedPitchYieldsZeroAverage(t *testing.T) {
	points := []timeline.VoicePoint{
		{Volume: 0.2, Pitch: fp(0), IsValid: true},
		{Volume: 0.2, Pitch: nil, IsValid: true},
	}
	if got := Voice(points); got.AvgPitch != 0 {
		t.Errorf("avgPitch = %v, want 0 when no pitch detected", got.AvgPitch)
	}
}

func TestVoiceAdvancedSkipsMismatchedMfccLengths(t *testing.T) {
	points := []timeline.VoicePoint{
		{IsValid: true, Mfcc: []float64{1, 2, 3}, SpectralCentroid: 1000, Zcr: 100},
		{IsValid: true, Mfcc: []float64{9, 9}, SpectralCentroid: 2000, Zcr: 200}, // length mismatch
		{IsValid: true, Mfcc: []float64{3, 4, 5}, SpectralCentroid: 3000, Zcr: 300},
		{IsValid: false, Mfcc: []float64{7, 7, 7}},
		{IsValid: true, Mfcc: nil},
	}
	got := VoiceAdvanced(points)
	if !got.Sufficient {
		t.Fatal("valid mfcc points present, must be sufficient")
	}
	want := []float64{2, 3, 4}
	if len(got.AvgMfcc) != 3 {
		t.Fatalf("avgMfcc length = %d, want 3", len(got.AvgMfcc))
	}
	for i := range want {
		if !almostEqual(got.AvgMfcc[i], want[i], 1e-12) {
			t.Errorf("avgMfcc[%d] = %v, want %v", i, got.AvgMfcc[i], want[i])
		}
	}
	// Centroid and ZCR average over every valid frame with an MFCC
	// vector, including the length-mismatched one.
	if !almostEqual(got.AvgSpectralCentroid, 2000, 1e-12) {
		t.Errorf("avgSpectralCentroid = %v, want 2000", got.AvgSpectralCentroid)
	}
	if !almostEqual(got.AvgZcr, 200, 1e-12) {
		t.Errorf("avgZcr = %v, want 200", got.AvgZcr)
	}
}

func TestVoiceAdvancedEmpty(t *testing.T) {
	got := VoiceAdvanced([]timeline.VoicePoint{{IsValid: true, Mfcc: nil}})
	if got.Sufficient {
		t.Fatal("no mfcc-carrying points must not be sufficient")
	}
	if got.AvgMfcc == nil || len(got.AvgMfcc) != 0 {
		t.Errorf("avgMfcc must be an empty slice, got %v", got.AvgMfcc)
	}
}
