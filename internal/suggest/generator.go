package suggest

import (
	"crypto/rand"
	"log/slog"
	"math/big"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/passaudit/internal/breach"
	"github.com/nao1215/passaudit/internal/heuristic"
	"github.com/nao1215/passaudit/internal/normalize"
)

// DefaultCount is the number of suggestions generated per analysis.
const DefaultCount = 3

// defaultMaxRetries bounds the random draws per candidate before falling
// back to a fully randomized password. 32 draws make the fallback path
// vanishingly rare in practice while keeping the worst case cheap.
const defaultMaxRetries = 32

// Character alphabets used for decoration and the randomized fallback.
// The symbol set deliberately avoids characters adjacent in ASCII ("#$%")
// appearing together is fine; runs are rejected per candidate anyway.
const (
	lowerAlphabet  = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet  = "0123456789"
	symbolAlphabet = "!@#$%^&*?-_+="
)

// fallbackLength is the length of fully randomized fallback passwords.
// Longer than the minimum so the fallback is unambiguously strong.
const fallbackLength = 16

// titleCaser capitalizes base words; shared because cases.Caser allocation
// is not free.
var titleCaser = cases.Title(language.English)

// Generator synthesizes replacement password candidates that satisfy the
// strength constraints the scorer enforces and are absent from the offline
// breach corpus.
type Generator struct {
	// corpus is consulted so that no suggestion is itself a known-leaked
	// password.
	corpus *breach.Corpus

	// maxRetries bounds the random draws per candidate.
	maxRetries int

	// logger records fallback usage at debug level.
	logger *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxRetries overrides the per-candidate retry bound.
func WithMaxRetries(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxRetries = n
		}
	}
}

// WithGeneratorLogger sets a custom logger.
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator backed by the given offline corpus.
func NewGenerator(corpus *breach.Corpus, opts ...GeneratorOption) *Generator {
	g := &Generator{
		corpus:     corpus,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Generate produces count distinct candidate passwords. Each candidate is
// derived from the input's detected dictionary word when one exists, or
// from a neutral themed word otherwise, then decorated with random digits,
// symbols, and capitalization. Candidates that fail a constraint are
// redrawn up to the retry bound; after that a fully randomized strong
// password is used instead.
func (g *Generator) Generate(password string, forms normalize.Forms, count int) []string {
	if count <= 0 {
		count = DefaultCount
	}

	detected, _ := heuristic.FindCommonWord(forms.Desubstituted)

	suggestions := make([]string, 0, count)
	seen := make(map[string]struct{}, count+1)
	seen[password] = struct{}{}

	for len(suggestions) < count {
		candidate := g.drawCandidate(detected, seen)
		suggestions = append(suggestions, candidate)
		seen[candidate] = struct{}{}
	}

	return suggestions
}

// drawCandidate runs the retry-bounded search for one valid candidate.
func (g *Generator) drawCandidate(detected string, seen map[string]struct{}) string {
	for range g.maxRetries {
		candidate := g.decorate(g.pickBase(detected))
		if g.valid(candidate, seen) {
			return candidate
		}
	}

	// Retry bound exhausted: fall back to a fully randomized password.
	// Fallback candidates are longer than the longest corpus entry and
	// grow by one character per attempt, so within the bound some attempt
	// has a length no earlier suggestion shares and must be accepted.
	g.logger.Debug("suggestion retry bound exhausted, using randomized fallback")
	for attempt := range g.maxRetries {
		candidate := g.buildRandom(attempt)
		if g.valid(candidate, seen) {
			return candidate
		}
	}
	return g.buildRandom(g.maxRetries)
}

// pickBase chooses the suggestion's base token. When the input contained a
// dictionary word, a themed word sharing its first letter is preferred so
// the suggestion feels loosely related without reusing the guessable word.
func (g *Generator) pickBase(detected string) string {
	if detected != "" {
		related := make([]string, 0, 4)
		for _, word := range wordBank {
			if word[0] == detected[0] {
				related = append(related, word)
			}
		}
		if len(related) > 0 {
			return related[g.randIndex(len(related))]
		}
	}
	return wordBank[g.randIndex(len(wordBank))]
}

// decorate turns a base word into a candidate: title case, a symbol, two
// digits, and random letters up to the minimum length.
func (g *Generator) decorate(base string) string {
	var b strings.Builder
	b.WriteString(titleCaser.String(base))
	b.WriteByte(symbolAlphabet[g.randIndex(len(symbolAlphabet))])
	b.WriteByte(digitAlphabet[g.randIndex(len(digitAlphabet))])
	b.WriteByte(digitAlphabet[g.randIndex(len(digitAlphabet))])

	for b.Len() < heuristic.RecommendedMinLength {
		alphabet := lowerAlphabet
		if g.randIndex(2) == 0 {
			alphabet = upperAlphabet
		}
		b.WriteByte(alphabet[g.randIndex(len(alphabet))])
	}

	return b.String()
}

// valid checks one candidate against every suggestion constraint.
func (g *Generator) valid(candidate string, seen map[string]struct{}) bool {
	if _, dup := seen[candidate]; dup {
		return false
	}
	if len([]rune(candidate)) < heuristic.RecommendedMinLength {
		return false
	}
	if heuristic.CountCharClasses(candidate) < heuristic.MinCharClasses {
		return false
	}

	forms := normalize.Normalize(candidate)
	if heuristic.HasSequentialRun(forms.Lowercase) || heuristic.HasRepeatedRun(forms.Lowercase) {
		return false
	}
	return !g.corpus.IsBreached(forms)
}

// buildRandom constructs a fully randomized strong password of
// fallbackLength+extra characters, never shorter than one character past
// the longest corpus entry so corpus membership is impossible. Character
// classes rotate position by position so at least three classes are always
// present, and each draw excludes characters that would extend the previous
// two into a sequential, flat, or keyboard run. The alphabets are large
// enough that the exclusion can never empty them, so construction always
// succeeds in exactly one pass.
func (g *Generator) buildRandom(extra int) string {
	length := fallbackLength + extra
	if floor := g.corpus.LongestEntry() + 1; length < floor {
		length = floor + extra
	}

	classes := []string{upperAlphabet, lowerAlphabet, digitAlphabet, symbolAlphabet}
	// Random rotation so fallbacks don't share a fixed shape.
	offset := g.randIndex(len(classes))

	runes := make([]rune, 0, length)
	for i := range length {
		alphabet := classes[(i+offset)%len(classes)]
		for {
			r := rune(alphabet[g.randIndex(len(alphabet))])
			if !extendsRun(runes, r) {
				runes = append(runes, r)
				break
			}
		}
	}
	return string(runes)
}

// extendsRun reports whether appending r to runes would complete a
// three-character sequential, flat, or keyboard run. Comparison happens on
// the lowercase forms, matching the extractor's rules.
func extendsRun(runes []rune, r rune) bool {
	if len(runes) < 2 {
		return false
	}
	tail := strings.ToLower(string(runes[len(runes)-2:]) + string(r))
	return heuristic.HasSequentialRun(tail) || heuristic.HasRepeatedRun(tail)
}

// randIndex draws a uniform index in [0, n) from crypto/rand. Suggestions
// are passwords; math/rand is not acceptable here.
func (g *Generator) randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is
		// broken; there is no useful recovery for a password generator.
		panic("suggest: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}
