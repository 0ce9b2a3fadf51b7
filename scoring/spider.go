package scoring

import (
	"math"

	"github.com/RyanBlaney/vital-sonar/algorithms/hrv"
	"github.com/RyanBlaney/vital-sonar/summarize"
)

// AxisNames is the fixed order of the six spider axes, shared by the
// deterministic engine and the model-line parser.
var AxisNames = [6]string{
	"Stress",
	"LowMood",
	"SocialWithdrawal",
	"Irritability",
	"CognitiveFatigue",
	"Arousal",
}

// SpiderScore is the six-axis behavioral-state summary. Every axis
// and the confidence are integers in [0,100].
type SpiderScore struct {
	Stress           int `json:"Stress"`
	LowMood          int `json:"LowMood"`
	SocialWithdrawal int `json:"SocialWithdrawal"`
	Irritability     int `json:"Irritability"`
	CognitiveFatigue int `json:"CognitiveFatigue"`
	Arousal          int `json:"Arousal"`
	Confidence       int `json:"confidence"`
}

// Axes returns the six axis values in AxisNames order.
func (s SpiderScore) Axes() [6]int {
	return [6]int{s.Stress, s.LowMood, s.SocialWithdrawal, s.Irritability, s.CognitiveFatigue, s.Arousal}
}

// SpiderFromAxes builds a score from values in AxisNames order,
// clamping everything to [0,100].
func SpiderFromAxes(axes [6]int, confidence int) SpiderScore {
	return SpiderScore{
		Stress:           clampInt(axes[0], 0, 100),
		LowMood:          clampInt(axes[1], 0, 100),
		SocialWithdrawal: clampInt(axes[2], 0, 100),
		Irritability:     clampInt(axes[3], 0, 100),
		CognitiveFatigue: clampInt(axes[4], 0, 100),
		Arousal:          clampInt(axes[5], 0, 100),
		Confidence:       clampInt(confidence, 0, 100),
	}
}

// SpiderInputs are the upstream metrics feeding the axis formulas.
type SpiderInputs struct {
	Face        summarize.FaceSummary
	HRVTime     hrv.TimeDomainResult
	HRVFreq     hrv.FrequencyResult
	Voice       summarize.VoiceSummary
	VoiceDetail summarize.VoiceDetail
	Diagnostics summarize.Diagnostics
}

// ComputeSpider maps the inputs into the six bounded axes using the
// fixed linear weighting formulas, scaled by an overall confidence
// derived from signal quality. Non-finite inputs (including an
// infinite LF/HF ratio) are treated as zero before normalization.
func ComputeSpider(in SpiderInputs) SpiderScore {
	lfhf := finiteOrZero(in.HRVFreq.LFHFRatio)
	rmssd := finiteOrZero(in.HRVTime.RMSSD)
	sdnn := finiteOrZero(in.HRVTime.SDNN)
	meanBpm := finiteOrZero(in.Diagnostics.MeanBpm)
	avgPitch := finiteOrZero(in.Voice.AvgPitch)
	avgVol := finiteOrZero(in.Voice.AvgVolume)

	sadPct := finiteOrZero(in.Face.PercentTime["sad"])
	angryPct := finiteOrZero(in.Face.PercentTime["angry"])
	happyPct := finiteOrZero(in.Face.PercentTime["happy"])

	beatsUsed := float64(in.Diagnostics.BeatsUsed)
	audioValid := finiteOrZero(in.Diagnostics.AudioValidFraction)
	faceConf := finiteOrZero(in.Diagnostics.FaceConfidence)
	words := float64(in.Diagnostics.TranscriptWords)
	voiceActivity := finiteOrZero(in.Diagnostics.VoiceActivityFrac)
	maxPitch := finiteOrZero(in.Diagnostics.MaxPitch)
	longPause := finiteOrZero(in.Diagnostics.LongPauseFrac)
	pitchVar := finiteOrZero(in.Diagnostics.PitchVar)
	avgZcr := finiteOrZero(in.VoiceDetail.AvgZcr)
	centroid := finiteOrZero(in.VoiceDetail.AvgSpectralCentroid)

	conf := clamp01(0.4*math.Min(1.0, beatsUsed/120.0) +
		0.3*clamp01(audioValid) +
		0.2*clamp01(faceConf) +
		0.1*math.Min(1.0, words/30.0))

	stress := clamp01(0.4*norm(lfhf, 0, 20) +
		0.3*(1.0-norm(rmssd, 0, 50)) +
		0.2*norm(meanBpm, 40, 150) +
		0.1*clamp01(angryPct))

	lowMood := clamp01(0.35*clamp01(sadPct) +
		0.25*(1.0-norm(avgPitch, 50, 300)) +
		0.20*(1.0-norm(avgVol, 0, 0.5)) +
		0.20*(1.0-norm(sdnn, 0, 60)))

	social := clamp01(0.4*(1.0-clamp01(voiceActivity)) +
		0.3*(1.0-norm(avgVol, 0, 0.5)) +
		0.3*(1.0-clamp01(happyPct)))

	irritability := clamp01(0.5*clamp01(angryPct) +
		0.3*norm(maxPitch, 50, 300) +
		0.2*norm(lfhf, 0, 20))

	fatigue := clamp01(0.4*clamp01(longPause) +
		0.3*(1.0-clamp01(avgZcr/2000.0)) +
		0.3*(1.0-norm(pitchVar, 0, 100)))

	arousal := clamp01(0.5*norm(meanBpm, 40, 150) +
		0.3*norm(lfhf, 0, 20) +
		0.2*clamp01(centroid/5000.0))

	return SpiderScore{
		Stress:           scaleAxis(stress, conf),
		LowMood:          scaleAxis(lowMood, conf),
		SocialWithdrawal: scaleAxis(social, conf),
		Irritability:     scaleAxis(irritability, conf),
		CognitiveFatigue: scaleAxis(fatigue, conf),
		Arousal:          scaleAxis(arousal, conf),
		Confidence:       int(math.Round(conf * 100.0)),
	}
}

func scaleAxis(sub, conf float64) int {
	return int(math.Round(sub * 100.0 * conf))
}

// norm maps v linearly from [min,max] onto [0,1], clamped. Non-finite
// values and degenerate ranges map to zero.
func norm(v, min, max float64) float64 {
	if !isFinite(v) || max <= min {
		return 0
	}
	return clamp01((v - min) / (max - min))
}

func clamp01(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
