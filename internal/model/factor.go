package model

// Factor name constants. The extractor emits factors in exactly this order
// so that downstream reason strings are deterministic and testable.
const (
	// FactorLength triggers when the password is shorter than 12 characters.
	FactorLength = "length"

	// FactorDiversity is the only positive factor. It triggers when at
	// least three character classes are present and then reduces risk;
	// when untriggered it contributes its weight to risk instead.
	FactorDiversity = "character_diversity"

	// FactorSequentialRun triggers on ascending, descending, or flat
	// character-code runs of three or more, and on keyboard-adjacency runs.
	FactorSequentialRun = "sequential_run"

	// FactorRepeatedRun triggers when any character repeats three or more
	// times consecutively.
	FactorRepeatedRun = "repeated_run"

	// FactorSubstitution triggers when reversing leetspeak substitutions
	// reveals a common dictionary word, signalling a predictable pattern.
	FactorSubstitution = "predictable_substitution"

	// FactorDictionaryWord triggers when the desubstituted form contains a
	// common word of four or more characters as a substring.
	FactorDictionaryWord = "dictionary_word"
)

// RiskFactor is one named, weighted heuristic signal contributing to the
// overall risk score. Weights are fixed constants chosen by the scorer;
// Detail is a deterministic, human-readable explanation suitable for the
// reasons list.
type RiskFactor struct {
	// Name identifies the heuristic (one of the Factor* constants).
	Name string `json:"name"`

	// Weight is the factor's fixed contribution to the risk score.
	// For the diversity factor the weight is subtracted when triggered
	// and added when not; for all others it is added when triggered.
	Weight float64 `json:"weight"`

	// Triggered reports whether the heuristic fired for this password.
	Triggered bool `json:"triggered"`

	// Positive marks factors that reduce risk when triggered.
	Positive bool `json:"positive,omitempty"`

	// Detail is the human-readable explanation for the reasons list.
	Detail string `json:"detail"`
}
