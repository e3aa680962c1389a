package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// substitutions maps leetspeak characters to the letters they commonly stand
// in for. The table is fixed; it is applied greedily left-to-right in a
// single pass with no backtracking. The "1" entry maps to "l" rather than
// "i" because "l" is by far the more common substitution in leaked
// credential corpora ("pa55w0rd1" style suffixes aside, "h3ll0" patterns
// dominate); "!" covers the "i" case.
var substitutions = map[rune]rune{
	'@': 'a',
	'0': 'o',
	'1': 'l',
	'3': 'e',
	'$': 's',
	'7': 't',
	'!': 'i',
	'4': 'a',
	'5': 's',
}

// Forms holds the canonical comparison forms of a password.
// Both the extractor and the breach matcher operate on these forms rather
// than the raw input so that trivially disguised passwords compare equal.
type Forms struct {
	// Lowercase is the NFKC-normalized, lowercased input.
	Lowercase string

	// Desubstituted is the lowercase form with the leetspeak substitution
	// table applied. Equal to Lowercase when no substitution characters
	// are present.
	Desubstituted string
}

// Substituted reports whether reversing substitutions changed the password.
func (f Forms) Substituted() bool {
	return f.Lowercase != f.Desubstituted
}

// Normalize derives the comparison forms for a password.
//
// Any input string, including empty, is legal and returns both forms.
// Unicode input is canonicalized with NFKC first so that visually equivalent
// sequences (full-width characters, combining marks) compare equal; NFKC is
// idempotent, so normalizing an already-normalized form is a no-op.
func Normalize(password string) Forms {
	lower := strings.ToLower(norm.NFKC.String(password))

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if sub, ok := substitutions[r]; ok {
			b.WriteRune(sub)
		} else {
			b.WriteRune(r)
		}
	}

	return Forms{
		Lowercase:     lower,
		Desubstituted: b.String(),
	}
}
