package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/RyanBlaney/vital-sonar/logging"
)

// Provenance records which branch of the reconciliation policy
// produced a validated score. ModelDiff is the mean absolute per-axis
// difference between the model and deterministic scores, or +Inf when
// no comparison was made.
type Provenance struct {
	Source    string  `json:"source"`
	RawLine   string  `json:"rawLine"`
	ModelDiff float64 `json:"modelDiff"`
}

// Source values of the reconciliation outcome.
const (
	SourceModel                  = "model"
	SourceFallbackNoModelLine    = "fallback_no_model_line"
	SourceFallbackLowModelConf   = "fallback_low_model_conf"
	SourceFallbackModelDisagrees = "fallback_model_disagrees"
	SourceFallbackException      = "fallback_exception"
)

// ValidatedScore is the trusted six-axis result plus its provenance.
type ValidatedScore struct {
	Scores SpiderScore `json:"scores"`
	Provenance
}

// spiderLinePattern matches the model's machine-readable line:
// SPIDER_DATA:i1,i2,i3,i4,i5,i6,CONF:c with six axis integers in
// AxisNames order followed by a confidence integer.
var spiderLinePattern = regexp.MustCompile(`SPIDER_DATA:([0-9]{1,3}(?:,[0-9]{1,3}){5}),CONF:([0-9]{1,3})`)

// Validator decides whether an externally produced six-axis estimate
// can be trusted over the deterministic one.
type Validator struct {
	minModelConf  int
	diffThreshold float64
	logger        logging.Logger
}

// NewValidator creates a validator that rejects model scores below
// minModelConf confidence or deviating from the deterministic score
// by more than diffThreshold on average.
func NewValidator(minModelConf int, diffThreshold float64) *Validator {
	return &Validator{
		minModelConf:  minModelConf,
		diffThreshold: diffThreshold,
		logger:        logging.WithFields(logging.Fields{"component": "spider_validator"}),
	}
}

// Validate scans the model reply for the last SPIDER_DATA line and
// reconciles it against the deterministic fallback score. The guard
// order is fixed: no line, unparseable line, low model confidence,
// disagreement, accept. No branch returns an error; a malformed line
// degrades to a zero result tagged fallback_exception.
func (v *Validator) Validate(reply string, fallback SpiderScore) ValidatedScore {
	line, ok := lastSpiderLine(reply)
	if !ok {
		return ValidatedScore{
			Scores:     fallback,
			Provenance: Provenance{Source: SourceFallbackNoModelLine, RawLine: "", ModelDiff: math.Inf(1)},
		}
	}

	model, parseErr := parseSpiderLine(line)
	if parseErr != nil {
		v.logger.Warn("unparseable model spider line", logging.Fields{
			"raw_line": line,
			"reason":   parseErr.Error(),
		})
		return ValidatedScore{
			Scores:     SpiderScore{},
			Provenance: Provenance{Source: SourceFallbackException, RawLine: "", ModelDiff: math.Inf(1)},
		}
	}

	out := Reconcile(model, fallback, v.minModelConf, v.diffThreshold)
	out.RawLine = line
	if out.Source != SourceModel {
		v.logger.Debug("model spider score rejected", logging.Fields{
			"source":     out.Source,
			"model_diff": out.ModelDiff,
		})
	}
	return out
}

// Reconcile applies the trust policy between a parsed model score and
// the deterministic fallback. Pure: the guard clauses run in a fixed
// priority order and no parsing happens here.
func Reconcile(model SpiderScore, fallback SpiderScore, minModelConf int, diffThreshold float64) ValidatedScore {
	if model.Confidence < minModelConf {
		return ValidatedScore{
			Scores:     fallback,
			Provenance: Provenance{Source: SourceFallbackLowModelConf, ModelDiff: math.Inf(1)},
		}
	}

	modelAxes := model.Axes()
	fallbackAxes := fallback.Axes()
	sumAbs := 0.0
	for i := range modelAxes {
		sumAbs += math.Abs(float64(modelAxes[i] - fallbackAxes[i]))
	}
	avgAbsDiff := sumAbs / float64(len(modelAxes))

	if avgAbsDiff > diffThreshold {
		return ValidatedScore{
			Scores:     fallback,
			Provenance: Provenance{Source: SourceFallbackModelDisagrees, ModelDiff: avgAbsDiff},
		}
	}

	return ValidatedScore{
		Scores:     model,
		Provenance: Provenance{Source: SourceModel, ModelDiff: avgAbsDiff},
	}
}

// lastSpiderLine returns the last SPIDER_DATA match in the reply.
// Later occurrences override earlier ones: the artifact is assumed
// append-only, so the freshest line wins.
func lastSpiderLine(reply string) (string, bool) {
	matches := spiderLinePattern.FindAllString(reply, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1], true
}

// parseSpiderLine extracts the six axis integers and the confidence
// from a matched line, clamping each to [0,100].
func parseSpiderLine(line string) (SpiderScore, error) {
	groups := spiderLinePattern.FindStringSubmatch(line)
	if groups == nil {
		return SpiderScore{}, errBadLine{line}
	}

	parts := strings.Split(groups[1], ",")
	if len(parts) != len(AxisNames) {
		return SpiderScore{}, errBadLine{line}
	}

	var axes [6]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return SpiderScore{}, errBadLine{line}
		}
		axes[i] = n
	}
	conf, err := strconv.Atoi(strings.TrimSpace(groups[2]))
	if err != nil {
		return SpiderScore{}, errBadLine{line}
	}

	return SpiderFromAxes(axes, conf), nil
}

type errBadLine struct {
	line string
}

func (e errBadLine) Error() string {
	return "malformed spider data line: " + e.line
}
