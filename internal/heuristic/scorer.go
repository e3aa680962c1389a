package heuristic

import (
	"fmt"

	"github.com/nao1215/passaudit/internal/model"
)

// Breach-related reason strings appended after the factor reasons.
const (
	reasonOfflineBreach     = "Matches a password found in known breach corpora"
	reasonOnlineMiss        = "Not found in the Have I Been Pwned corpus"
	reasonOnlineUnavailable = "Online breach lookup was unavailable"
)

// Score combines extracted factors and the breach outcome into a clamped
// risk score, a discrete label, and an ordered reasons list.
//
// Each triggered negative factor adds its weight; the diversity factor
// subtracts its weight when triggered and adds it when not. The accumulator
// is clamped to [0,1]. A breach hit (offline or online) forces the score to
// at least model.BreachScoreFloor and the label to high.
//
// Reasons contain one sentence per triggered factor in extraction order,
// then the offline-breach reason, then the online-lookup reason when the
// lookup was requested (hit, miss, or unavailable).
func Score(factors []model.RiskFactor, breach model.BreachResult, onlineRequested bool) (float64, model.RiskLabel, []string) {
	var score float64
	reasons := make([]string, 0, len(factors)+2)

	for _, factor := range factors {
		switch {
		case factor.Positive && factor.Triggered:
			score -= factor.Weight
			reasons = append(reasons, factor.Detail)
		case factor.Positive:
			score += factor.Weight
		case factor.Triggered:
			score += factor.Weight
			reasons = append(reasons, factor.Detail)
		}
	}

	score = clamp(score)

	if breach.OfflineHit {
		reasons = append(reasons, reasonOfflineBreach)
	}

	if onlineRequested {
		switch {
		case breach.OnlineChecked && breach.OnlineHit:
			count := uint64(0)
			if breach.OnlineCount != nil {
				count = *breach.OnlineCount
			}
			reasons = append(reasons, fmt.Sprintf("Found in the Have I Been Pwned corpus (%d occurrences)", count))
		case breach.OnlineChecked:
			reasons = append(reasons, reasonOnlineMiss)
		default:
			reasons = append(reasons, reasonOnlineUnavailable)
		}
	}

	if breach.Breached() {
		if score < model.BreachScoreFloor {
			score = model.BreachScoreFloor
		}
		return score, model.LabelHigh, reasons
	}

	return score, model.LabelForScore(score), reasons
}

// clamp bounds a score to [0,1].
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
