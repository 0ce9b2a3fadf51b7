package timeline

// Entry is one tick of a recorded session. Any subset of the three
// modalities may be present; an entry with none is legal and ignored
// by every aggregate.
type Entry struct {
	Time       int64            `json:"time"`
	Expression *ExpressionPoint `json:"expression,omitempty"`
	Hr         *HrPoint         `json:"hr,omitempty"`
	Voice      *VoicePoint      `json:"voice,omitempty"`
}

// ExpressionPoint is a single facial-expression frame.
// Ear is the eye-aspect-ratio, a proxy for eye openness.
type ExpressionPoint struct {
	Time           int64   `json:"time"`
	Emotion        string  `json:"emotion"`
	Confidence     float64 `json:"confidence"`
	FaceConfidence float64 `json:"faceConfidence"`
	Ear            float64 `json:"ear"`
	BlinkRate      float64 `json:"blinkRate"`
}

// HrPoint is a single heart-rate reading. Bpm is nil when the sensor
// produced no value for this tick.
type HrPoint struct {
	Time int64    `json:"time"`
	Bpm  *float64 `json:"bpm"`
}

// Valid reports whether the reading carries a usable bpm.
func (p HrPoint) Valid() bool {
	return p.Bpm != nil && *p.Bpm > 0
}

// VoicePoint is a single voice-feature frame. A nil or non-positive
// Pitch means no pitch was detected and is excluded from pitch
// averages even when IsValid is true.
type VoicePoint struct {
	Time             int64     `json:"time"`
	Volume           float64   `json:"volume"`
	Pitch            *float64  `json:"pitch"`
	Mfcc             []float64 `json:"mfcc"`
	SpectralCentroid float64   `json:"spectralCentroid"`
	Zcr              float64   `json:"zcr"`
	IsValid          bool      `json:"isValid"`
}

// PitchValue returns the detected pitch and whether one is present.
func (p VoicePoint) PitchValue() (float64, bool) {
	if p.Pitch == nil || *p.Pitch <= 0 {
		return 0, false
	}
	return *p.Pitch, true
}
