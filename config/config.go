package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HRVConfig tunes the heart-rate-variability calculators.
type HRVConfig struct {
	// ResampleRateHz is the uniform grid rate the RR series is
	// interpolated onto before the FFT.
	ResampleRateHz float64 `json:"resample_rate_hz" yaml:"resample_rate_hz"`
	// MinGridPoints floors the grid length to keep spectral
	// resolution usable on short sessions.
	MinGridPoints int `json:"min_grid_points" yaml:"min_grid_points"`
	// MinSamples and MinSpanSec gate the spectral computation.
	MinSamples int     `json:"min_samples" yaml:"min_samples"`
	MinSpanSec float64 `json:"min_span_sec" yaml:"min_span_sec"`
	// LFBand and HFBand are [low, high) integration bands in Hz.
	LFBand [2]float64 `json:"lf_band" yaml:"lf_band"`
	HFBand [2]float64 `json:"hf_band" yaml:"hf_band"`
}

// RiskConfig tunes the heuristic risk scorer.
type RiskConfig struct {
	// DangerKeywords are matched as case-insensitive substrings of
	// the transcript; each listed keyword found adds KeywordWeight.
	DangerKeywords []string `json:"danger_keywords" yaml:"danger_keywords"`
	KeywordWeight  float64  `json:"keyword_weight" yaml:"keyword_weight"`
	// LowVolumeBelow and HighPitchAbove each add a small penalty
	// when the voice summary crosses them.
	LowVolumeBelow float64 `json:"low_volume_below" yaml:"low_volume_below"`
	HighPitchAbove float64 `json:"high_pitch_above" yaml:"high_pitch_above"`
}

// ReconcileConfig tunes the model-reconciliation validator.
type ReconcileConfig struct {
	// MinModelConfidence is the floor below which a model-provided
	// score is discarded in favor of the deterministic one.
	MinModelConfidence int `json:"min_model_confidence" yaml:"min_model_confidence"`
	// DisagreementThreshold is the largest mean absolute per-axis
	// difference at which the model score is still trusted.
	DisagreementThreshold float64 `json:"disagreement_threshold" yaml:"disagreement_threshold"`
}

// Config holds every tunable of the analytics engine.
type Config struct {
	HRV       HRVConfig       `json:"hrv" yaml:"hrv"`
	Risk      RiskConfig      `json:"risk" yaml:"risk"`
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
}

// Default returns the engine configuration used when no file is
// provided. The HRV values follow standard short-term spectral-HRV
// conventions (4 Hz resample, 60 s minimum span, 0.04-0.15 / 0.15-0.4
// Hz bands).
func Default() *Config {
	return &Config{
		HRV: HRVConfig{
			ResampleRateHz: 4.0,
			MinGridPoints:  256,
			MinSamples:     4,
			MinSpanSec:     60.0,
			LFBand:         [2]float64{0.04, 0.15},
			HFBand:         [2]float64{0.15, 0.4},
		},
		Risk: RiskConfig{
			DangerKeywords: []string{
				"suicide",
				"kill myself",
				"i can't go on",
				"don't want to live",
				"end my life",
				"hopeless",
			},
			KeywordWeight:  30.0,
			LowVolumeBelow: 0.01,
			HighPitchAbove: 200.0,
		},
		Reconcile: ReconcileConfig{
			MinModelConfidence:    30,
			DisagreementThreshold: 15.0,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file over the defaults, so a partial file
// only overrides what it names.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
