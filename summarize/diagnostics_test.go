package summarize

import (
	"testing"

	"github.com/RyanBlaney/vital-sonar/timeline"
)

func TestDiagnoseEmptyTimeline(t *testing.T) {
	got := Diagnose(nil, "three words here")
	if got.TranscriptWords != 3 {
		t.Errorf("transcriptWords = %d, want 3", got.TranscriptWords)
	}
	if got.BeatsUsed != 0 || got.MeanBpm != 0 || got.DurationS != 0 {
		t.Errorf("empty timeline must yield zero HR stats, got %+v", got)
	}
	if Diagnose(nil, "   ").TranscriptWords != 0 {
		t.Error("blank transcript must count zero words")
	}
}

func TestDiagnoseMixedTimeline(t *testing.T) {
	entries := []timeline.Entry{
		{
			Time:       1000,
			Voice:      &timeline.VoicePoint{Time: 1000, Volume: 0.2, Pitch: fp(220), IsValid: true},
			Expression: &timeline.ExpressionPoint{Time: 1000, Emotion: "neutral", Confidence: 0.9},
		},
		{
			Time:       3000,
			Hr:         &timeline.HrPoint{Time: 2000, Bpm: fp(72)},
			Voice:      &timeline.VoicePoint{Time: 3000, Volume: 0.25, Pitch: fp(210), IsValid: true},
			Expression: &timeline.ExpressionPoint{Time: 3000, Emotion: "sad", Confidence: 0.8},
		},
	}

	got := Diagnose(entries, "hello world")

	if got.BeatsUsed != 1 {
		t.Errorf("beatsUsed = %d, want 1", got.BeatsUsed)
	}
	if !almostEqual(got.MeanBpm, 72, 1e-9) {
		t.Errorf("meanBpm = %v, want 72", got.MeanBpm)
	}
	if !almostEqual(got.DurationS, 2.0, 1e-9) {
		t.Errorf("duration_s = %v, want 2.0", got.DurationS)
	}
	if !almostEqual(got.AudioValidFraction, 1.0, 1e-12) {
		t.Errorf("audioValidFraction = %v, want 1", got.AudioValidFraction)
	}
	if !almostEqual(got.VoiceActivityFrac, 1.0, 1e-12) {
		t.Errorf("voiceActivityFrac = %v, want 1", got.VoiceActivityFrac)
	}
	if got.MaxPitch != 220 {
		t.Errorf("maxPitch = %v, want 220", got.MaxPitch)
	}
	// Sample variance of [220, 210] is 50.
	if !almostEqual(got.PitchVar, 50, 1e-9) {
		t.Errorf("pitchVar = %v, want 50", got.PitchVar)
	}
	if !almostEqual(got.FaceConfidence, 0.85, 1e-12) {
		t.Errorf("faceConfidence = %v, want 0.85", got.FaceConfidence)
	}
	if got.TranscriptWords != 2 {
		t.Errorf("transcriptWords = %d, want 2", got.TranscriptWords)
	}
	// The single 2000 ms voice gap does not exceed the threshold.
	if got.LongPauseFrac != 0 {
		t.Errorf("longPauseFrac = %v, want 0", got.LongPauseFrac)
	}
}

func TestDiagnoseNoHeartRate(t *testing.T) {
	entries := []timeline.Entry{
		{Time: 1000, Voice: &timeline.VoicePoint{Time: 1000, Volume: 0.1, Pitch: fp(120), IsValid: true}},
		{Time: 2500, Voice: &timeline.VoicePoint{Time: 2500, Volume: 0.15, Pitch: fp(110), IsValid: true}},
	}
	got := Diagnose(entries, "some transcript")
	if got.BeatsUsed != 0 {
		t.Errorf("beatsUsed = %d, want 0", got.BeatsUsed)
	}
	if got.MeanBpm != 0 {
		t.Errorf("meanBpm = %v, want 0", got.MeanBpm)
	}
}

func TestDiagnoseLongPauses(t *testing.T) {
	entries := []timeline.Entry{
		{Time: 0, Voice: &timeline.VoicePoint{Time: 0, IsValid: true}},
		{Time: 1000, Voice: &timeline.VoicePoint{Time: 1000, IsValid: true}},
		{Time: 4000, Voice: &timeline.VoicePoint{Time: 4000, IsValid: true}},
	}
	got := Diagnose(entries, "")
	// Gaps are 1000 and 3000 ms; one of two exceeds 2000 ms.
	if !almostEqual(got.LongPauseFrac, 0.5, 1e-12) {
		t.Errorf("longPauseFrac = %v, want 0.5", got.LongPauseFrac)
	}
}

func TestDiagnoseDuplicateHrTimestampsCountOnce(t *testing.T) {
	entries := []timeline.Entry{
		{Time: 1000, Hr: &timeline.HrPoint{Time: 1000, Bpm: fp(60)}},
		{Time: 1000, Hr: &timeline.HrPoint{Time: 1000, Bpm: fp(90)}},
		{Time: 2000, Hr: &timeline.HrPoint{Time: 2000, Bpm: fp(70)}},
	}
	got := Diagnose(entries, "")
	if got.BeatsUsed != 2 {
		t.Fatalf("beatsUsed = %d, want 2", got.BeatsUsed)
	}
	// Last bpm per timestamp wins: mean of 90 and 70.
	if !almostEqual(got.MeanBpm, 80, 1e-9) {
		t.Errorf("meanBpm = %v, want 80", got.MeanBpm)
	}
}
