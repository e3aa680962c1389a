package model

import "strings"

// Label thresholds for mapping a risk score to a discrete verdict.
// A score below LabelMediumThreshold is low risk, a score below
// LabelHighThreshold is medium risk, and anything at or above it is high.
const (
	LabelMediumThreshold = 0.34
	LabelHighThreshold   = 0.67
)

// BreachScoreFloor is the minimum risk score reported for a password found
// in a breach corpus, offline or online. A breached password is never
// reported as safe regardless of how well it scores heuristically.
const BreachScoreFloor = 0.9

// RiskLabel represents the discrete risk verdict for a password.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output, and MarshalJSON emits the lowercase string form
// expected by consumers of the JSON report.
type RiskLabel int

const (
	// LabelLow indicates the password scores below the medium threshold.
	LabelLow RiskLabel = iota

	// LabelMedium indicates a score between the medium and high thresholds.
	LabelMedium

	// LabelHigh indicates a score at or above the high threshold, or any
	// password found in a breach corpus.
	LabelHigh
)

// String returns the lowercase human-readable form of the label.
func (l RiskLabel) String() string {
	switch l {
	case LabelLow:
		return "low"
	case LabelMedium:
		return "medium"
	case LabelHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the label as its lowercase string form.
func (l RiskLabel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON parses the lowercase string form of a label.
// Unknown values map to LabelHigh so that a corrupted stored record is
// surfaced as risky rather than silently safe.
func (l *RiskLabel) UnmarshalJSON(data []byte) error {
	*l = ParseLabel(strings.Trim(string(data), `"`))
	return nil
}

// ParseLabel maps the lowercase string form back to a RiskLabel.
// Unknown values map to LabelHigh, matching UnmarshalJSON.
func ParseLabel(s string) RiskLabel {
	switch s {
	case "low":
		return LabelLow
	case "medium":
		return LabelMedium
	default:
		return LabelHigh
	}
}

// LabelForScore maps a clamped risk score to its discrete label.
func LabelForScore(score float64) RiskLabel {
	switch {
	case score < LabelMediumThreshold:
		return LabelLow
	case score < LabelHighThreshold:
		return LabelMedium
	default:
		return LabelHigh
	}
}
