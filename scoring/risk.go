package scoring

import (
	"math"
	"strings"

	"github.com/RyanBlaney/vital-sonar/algorithms/hrv"
	"github.com/RyanBlaney/vital-sonar/summarize"
)

// RiskSummary is the heuristic composite risk result. It is an
// illustrative weighted score, not a diagnostic instrument.
type RiskSummary struct {
	Score       int    `json:"score"`
	Level       string `json:"level"`
	Explanation string `json:"explanation"`
}

// Risk levels in ascending severity.
const (
	RiskLevelLow       = "LOW"
	RiskLevelMedium    = "MEDIUM"
	RiskLevelHigh      = "HIGH"
	RiskLevelEmergency = "EMERGENCY"
)

var riskExplanations = map[string]string{
	RiskLevelEmergency: "High-risk language detected and physiological markers indicate high stress.",
	RiskLevelHigh:      "Significant stress markers or concerning language detected.",
	RiskLevelMedium:    "Moderate stress markers observed.",
	RiskLevelLow:       "No significant stress markers detected.",
}

// RiskScorer combines HRV, face, voice and transcript keyword signals
// into a 0-100 score and a discrete severity level.
type RiskScorer struct {
	dangerKeywords []string
	keywordWeight  float64
	lowVolumeBelow float64
	highPitchAbove float64
}

// NewRiskScorer creates a scorer with the given keyword list and
// voice thresholds. Keywords are matched as case-insensitive
// substrings of the transcript.
func NewRiskScorer(dangerKeywords []string, keywordWeight, lowVolumeBelow, highPitchAbove float64) *RiskScorer {
	lowered := make([]string, len(dangerKeywords))
	for i, k := range dangerKeywords {
		lowered[i] = strings.ToLower(k)
	}
	return &RiskScorer{
		dangerKeywords: lowered,
		keywordWeight:  keywordWeight,
		lowVolumeBelow: lowVolumeBelow,
		highPitchAbove: highPitchAbove,
	}
}

// Compute applies the additive heuristic:
//
//	max(0, 50-SDNN)*0.8 + max(0, 30-RMSSD)*1.0
//	+ sadness share*50 + disgust share*20
//	+ 5 if the voice is near-silent, + 5 if the mean pitch is elevated
//	+ keywordWeight per danger keyword found in the transcript
//
// clamped to [0,100]. Emotion shares missing from the face summary
// contribute zero.
func (rs *RiskScorer) Compute(face summarize.FaceSummary, hrvTime hrv.TimeDomainResult, voice summarize.VoiceSummary, transcript string) RiskSummary {
	score := 0.0

	score += math.Max(0, 50.0-hrvTime.SDNN) * 0.8
	score += math.Max(0, 30.0-hrvTime.RMSSD) * 1.0

	score += face.PercentTime["sadness"] * 50.0
	score += face.PercentTime["disgusted"] * 20.0

	if voice.AvgVolume < rs.lowVolumeBelow {
		score += 5
	}
	if voice.AvgPitch > rs.highPitchAbove {
		score += 5
	}

	lower := strings.ToLower(transcript)
	for _, k := range rs.dangerKeywords {
		if strings.Contains(lower, k) {
			score += rs.keywordWeight
		}
	}

	final := math.Max(0, math.Min(100, score))
	level := riskLevel(final)
	return RiskSummary{
		Score:       int(math.Round(final)),
		Level:       level,
		Explanation: riskExplanations[level],
	}
}

func riskLevel(score float64) string {
	switch {
	case score >= 80:
		return RiskLevelEmergency
	case score >= 60:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
