package heuristic

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nao1215/passaudit/internal/model"
	"github.com/nao1215/passaudit/internal/normalize"
)

// RecommendedMinLength is the password length below which the length factor
// triggers. 12 characters tracks current NIST and OWASP guidance for
// user-chosen passwords.
const RecommendedMinLength = 12

// MinCharClasses is the number of distinct character classes (lowercase,
// uppercase, digit, symbol) required for the diversity factor to count as a
// positive signal. It is also the threshold suggestion candidates must meet.
const MinCharClasses = 3

// Factor weights. These are fixed, documented constants; they were tuned so
// that the label thresholds (0.34 / 0.67) separate obviously weak inputs
// from decorated-but-guessable ones. The length factor is tiered: an empty
// or near-empty password carries enough weight to reach a high verdict on
// its own.
const (
	weightLengthVeryShort = 0.60 // fewer than 4 characters, including empty
	weightLengthShort     = 0.45 // fewer than 8 characters
	weightLengthBelowMin  = 0.25 // fewer than RecommendedMinLength characters
	weightDiversity       = 0.15 // subtracted when triggered, added otherwise
	weightSequentialRun   = 0.15
	weightRepeatedRun     = 0.15
	weightSubstitution    = 0.20
	weightDictionaryWord  = 0.25
)

// keyboardRows are the physical key rows checked for adjacency runs.
// Three adjacent characters from any row, forward or reverse, count as a
// sequential pattern ("qwe", "lkj").
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// Extract derives the fixed, ordered set of risk factors for a password.
// It is a deterministic, pure function of the password and its normalized
// forms: length, character diversity, sequential runs, repeated runs,
// predictable substitutions, dictionary-word containment, in that order.
func Extract(password string, forms normalize.Forms) []model.RiskFactor {
	factors := make([]model.RiskFactor, 0, 6)
	factors = append(factors, lengthFactor(password))
	factors = append(factors, diversityFactor(password))
	factors = append(factors, sequentialFactor(forms))
	factors = append(factors, repeatedFactor(forms))
	factors = append(factors, substitutionFactor(forms))
	factors = append(factors, dictionaryFactor(forms))
	return factors
}

// lengthFactor evaluates the tiered length heuristic on the raw password.
func lengthFactor(password string) model.RiskFactor {
	length := len([]rune(password))

	factor := model.RiskFactor{
		Name:      model.FactorLength,
		Weight:    weightLengthBelowMin,
		Triggered: length < RecommendedMinLength,
	}

	switch {
	case length < 4:
		factor.Weight = weightLengthVeryShort
		factor.Detail = "Far too short (under 4 characters)"
	case length < 8:
		factor.Weight = weightLengthShort
		factor.Detail = "Too short (under 8 characters)"
	case length < RecommendedMinLength:
		factor.Detail = fmt.Sprintf("Shorter than the recommended %d characters", RecommendedMinLength)
	default:
		factor.Detail = "Length meets the recommended minimum"
	}

	return factor
}

// diversityFactor evaluates character-class diversity on the raw password.
// This is the only positive factor: triggered means the password is diverse
// and its weight reduces risk; untriggered means limited variety and the
// same weight contributes to risk instead.
func diversityFactor(password string) model.RiskFactor {
	classes := CountCharClasses(password)

	factor := model.RiskFactor{
		Name:      model.FactorDiversity,
		Weight:    weightDiversity,
		Positive:  true,
		Triggered: classes >= MinCharClasses,
	}

	if factor.Triggered {
		factor.Detail = "Uses multiple character classes"
	} else {
		factor.Detail = fmt.Sprintf("Limited character variety (%d of 4 classes)", classes)
	}

	return factor
}

// sequentialFactor evaluates sequential and keyboard-adjacency runs on the
// lowercase form.
func sequentialFactor(forms normalize.Forms) model.RiskFactor {
	return model.RiskFactor{
		Name:      model.FactorSequentialRun,
		Weight:    weightSequentialRun,
		Triggered: HasSequentialRun(forms.Lowercase),
		Detail:    "Contains sequential or keyboard patterns",
	}
}

// repeatedFactor evaluates consecutive character repetition on the lowercase
// form, so "AAaa" counts the same as "aaaa".
func repeatedFactor(forms normalize.Forms) model.RiskFactor {
	return model.RiskFactor{
		Name:      model.FactorRepeatedRun,
		Weight:    weightRepeatedRun,
		Triggered: HasRepeatedRun(forms.Lowercase),
		Detail:    "Contains repeated character runs",
	}
}

// substitutionFactor triggers when reversing leetspeak substitutions reveals
// a bundled common word. A substitution that does not resolve to a known
// word is treated as genuine entropy, not a predictable pattern.
func substitutionFactor(forms normalize.Forms) model.RiskFactor {
	factor := model.RiskFactor{
		Name:   model.FactorSubstitution,
		Weight: weightSubstitution,
		Detail: "No predictable character substitutions",
	}

	if !forms.Substituted() {
		return factor
	}

	if word, ok := FindCommonWord(forms.Desubstituted); ok {
		factor.Triggered = true
		factor.Detail = fmt.Sprintf("Disguises the common word %q with predictable substitutions", word)
	}

	return factor
}

// dictionaryFactor triggers when the desubstituted form contains a bundled
// common word as a substring.
func dictionaryFactor(forms normalize.Forms) model.RiskFactor {
	factor := model.RiskFactor{
		Name:   model.FactorDictionaryWord,
		Weight: weightDictionaryWord,
		Detail: "No common dictionary words",
	}

	if word, ok := FindCommonWord(forms.Desubstituted); ok {
		factor.Triggered = true
		factor.Detail = fmt.Sprintf("Contains the common word %q", word)
	}

	return factor
}

// CountCharClasses counts the distinct character classes present among
// lowercase letters, uppercase letters, digits, and symbols.
func CountCharClasses(s string) int {
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	classes := 0
	for _, present := range []bool{lower, upper, digit, symbol} {
		if present {
			classes++
		}
	}
	return classes
}

// HasSequentialRun reports whether s contains three or more consecutive
// characters forming a run: a constant character-code step of +1 (ascending,
// "abc"), -1 (descending, "321"), or 0 (flat, "aaa"), or three adjacent keys
// from a keyboard row in either direction ("qwe", "lkj").
//
// The flat case deliberately overlaps with HasRepeatedRun: a password like
// "aaaa1111" is both a repetition and a degenerate sequence, and both
// factors should fire for it.
func HasSequentialRun(s string) bool {
	runes := []rune(s)
	for i := 2; i < len(runes); i++ {
		d1 := runes[i-1] - runes[i-2]
		d2 := runes[i] - runes[i-1]
		if d1 == d2 && d1 >= -1 && d1 <= 1 {
			return true
		}
	}

	for _, row := range keyboardRows {
		for i := 0; i+3 <= len(row); i++ {
			chunk := row[i : i+3]
			if strings.Contains(s, chunk) || strings.Contains(s, reverse(chunk)) {
				return true
			}
		}
	}

	return false
}

// HasRepeatedRun reports whether any character repeats three or more times
// consecutively in s.
func HasRepeatedRun(s string) bool {
	runes := []rune(s)
	for i := 2; i < len(runes); i++ {
		if runes[i] == runes[i-1] && runes[i-1] == runes[i-2] {
			return true
		}
	}
	return false
}

// reverse returns s with its bytes in reverse order. Keyboard rows are
// ASCII, so byte reversal is safe here.
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
