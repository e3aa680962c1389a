package model

import "time"

// RedactedPassword replaces the analyzed password wherever a result is
// persisted or displayed in a context that must not reveal it.
const RedactedPassword = "***REDACTED***"

// BreachResult holds the outcome of the offline and online breach lookups.
//
// OnlineChecked reports whether the online lookup actually completed. A
// skipped or failed lookup leaves OnlineChecked false, which must never be
// conflated with OnlineHit=false: the former means "unknown", the latter
// means "checked and absent".
type BreachResult struct {
	// OfflineHit reports whether a normalized form of the password was
	// found in the offline breach corpus.
	OfflineHit bool `json:"breached_offline"`

	// OnlineHit reports whether the online k-anonymity lookup found the
	// password. Only meaningful when OnlineChecked is true.
	OnlineHit bool `json:"breached_online"`

	// OnlineChecked reports whether the online lookup completed.
	OnlineChecked bool `json:"online_checked"`

	// OnlineCount is the occurrence count reported by the breach service.
	// Present only when an online hit occurred.
	OnlineCount *uint64 `json:"hibp_count,omitempty"`
}

// Breached reports whether the password was found in any breach corpus.
func (b BreachResult) Breached() bool {
	return b.OfflineHit || b.OnlineHit
}

// AnalysisResult is the complete, immutable result of one password analysis.
// It is constructed once per call by the analysis pipeline and returned to
// the caller; no shared mutable state survives between calls except the
// loaded breach corpus.
//
// The JSON form is flat: password, risk_score, label, reasons, suggestions,
// and the breach fields from the embedded BreachResult.
type AnalysisResult struct {
	// Password echoes the analyzed input. It is opaque to the engine and
	// must never be logged or persisted; use Redacted before storing.
	Password string `json:"password"`

	// RiskScore is the clamped heuristic score in [0,1].
	RiskScore float64 `json:"risk_score"`

	// Label is the discrete verdict derived from RiskScore and the
	// breach outcome.
	Label RiskLabel `json:"label"`

	// Reasons lists one human-readable sentence per triggered factor in
	// the fixed extraction order, followed by breach-related reasons.
	Reasons []string `json:"reasons"`

	// Suggestions are generated replacement candidates. Each satisfies
	// the strength thresholds the scorer enforces and is absent from the
	// offline corpus.
	Suggestions []string `json:"suggestions"`

	// Factors records every evaluated heuristic, triggered or not, for
	// detailed reporting.
	Factors []RiskFactor `json:"factors,omitempty"`

	// AnalyzedAt is the time the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	BreachResult
}

// NewAnalysisResult creates an AnalysisResult for the given password with
// the analysis timestamp set to now.
func NewAnalysisResult(password string) *AnalysisResult {
	return &AnalysisResult{
		Password:    password,
		Reasons:     make([]string, 0),
		Suggestions: make([]string, 0),
		AnalyzedAt:  time.Now().UTC(),
	}
}

// Redacted returns a copy of the result with the plaintext password replaced
// by RedactedPassword. Storage and log-adjacent callers must use this copy.
func (r *AnalysisResult) Redacted() *AnalysisResult {
	redacted := *r
	redacted.Password = RedactedPassword
	return &redacted
}
