package analytics

import (
	"github.com/RyanBlaney/vital-sonar/algorithms/hrv"
	"github.com/RyanBlaney/vital-sonar/config"
	"github.com/RyanBlaney/vital-sonar/logging"
	"github.com/RyanBlaney/vital-sonar/scoring"
	"github.com/RyanBlaney/vital-sonar/summarize"
	"github.com/RyanBlaney/vital-sonar/timeline"
)

// SessionMetrics is everything the engine derives from one session
// timeline. The field layout matches what the response layer
// serializes directly to JSON.
type SessionMetrics struct {
	Face        summarize.FaceSummary  `json:"face"`
	FaceDetail  summarize.FaceDetail   `json:"faceAdv"`
	HRVTime     hrv.TimeDomainResult   `json:"hrvTime"`
	HRVFreq     hrv.FrequencyResult    `json:"hrvFreq"`
	Voice       summarize.VoiceSummary `json:"voiceTime"`
	VoiceDetail summarize.VoiceDetail  `json:"voiceAdv"`
	Diagnostics summarize.Diagnostics  `json:"diagnostics"`
	Risk        scoring.RiskSummary    `json:"risk"`
	Spider      scoring.SpiderScore    `json:"spider"`
}

// Engine is the session analytics pipeline: timeline normalization,
// time- and frequency-domain HRV, face/voice summaries, diagnostics,
// risk scoring, the deterministic spider score and model
// reconciliation. It is stateless across invocations; one Engine may
// serve concurrent requests.
type Engine struct {
	cfg        *config.Config
	timeDomain *hrv.TimeDomain
	freqDomain *hrv.FrequencyDomain
	risk       *scoring.RiskScorer
	validator  *scoring.Validator
	logger     logging.Logger
}

// NewEngine creates an engine from the given configuration, falling
// back to config.Default when nil.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}

	logger := logging.WithFields(logging.Fields{
		"component": "analytics_engine",
	})
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	return &Engine{
		cfg:        cfg,
		timeDomain: hrv.NewTimeDomain(),
		freqDomain: hrv.NewFrequencyDomainWithParams(
			cfg.HRV.ResampleRateHz,
			cfg.HRV.MinGridPoints,
			cfg.HRV.MinSamples,
			cfg.HRV.MinSpanSec,
			cfg.HRV.LFBand,
			cfg.HRV.HFBand,
		),
		risk: scoring.NewRiskScorer(
			cfg.Risk.DangerKeywords,
			cfg.Risk.KeywordWeight,
			cfg.Risk.LowVolumeBelow,
			cfg.Risk.HighPitchAbove,
		),
		validator: scoring.NewValidator(
			cfg.Reconcile.MinModelConfidence,
			cfg.Reconcile.DisagreementThreshold,
		),
		logger: logger,
	}
}

// Analyze runs the full pipeline over one session timeline and
// transcript. Malformed samples never fail the computation; affected
// metrics degrade to their defined defaults.
func (e *Engine) Analyze(entries []timeline.Entry, transcript string) *SessionMetrics {
	expr, hrPoints, voicePoints := timeline.Split(entries)

	m := &SessionMetrics{
		Face:        summarize.Face(expr),
		FaceDetail:  summarize.FaceAdvanced(expr),
		HRVTime:     e.timeDomain.Compute(hrPoints),
		HRVFreq:     e.freqDomain.Compute(hrPoints),
		Voice:       summarize.Voice(voicePoints),
		VoiceDetail: summarize.VoiceAdvanced(voicePoints),
		Diagnostics: summarize.Diagnose(entries, transcript),
	}
	m.Risk = e.risk.Compute(m.Face, m.HRVTime, m.Voice, transcript)
	m.Spider = scoring.ComputeSpider(scoring.SpiderInputs{
		Face:        m.Face,
		HRVTime:     m.HRVTime,
		HRVFreq:     m.HRVFreq,
		Voice:       m.Voice,
		VoiceDetail: m.VoiceDetail,
		Diagnostics: m.Diagnostics,
	})

	e.logger.Debug("session analyzed", logging.Fields{
		"entries":     len(entries),
		"beats_used":  m.Diagnostics.BeatsUsed,
		"duration_s":  m.Diagnostics.DurationS,
		"hrv_valid":   m.HRVFreq.Valid,
		"risk_level":  m.Risk.Level,
		"spider_conf": m.Spider.Confidence,
	})
	return m
}

// ValidateModelReply reconciles an externally produced model reply
// against the deterministic spider score of the session.
func (e *Engine) ValidateModelReply(reply string, m *SessionMetrics) scoring.ValidatedScore {
	return e.validator.Validate(reply, m.Spider)
}
