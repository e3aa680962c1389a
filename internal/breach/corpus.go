package breach

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/nao1215/passaudit/internal/normalize"
)

// defaultEntries seeds the corpus with the passwords that top every public
// leak compilation. External corpus files extend this set; they never
// replace it, so the matcher gives sane verdicts even with no data files
// installed.
var defaultEntries = []string{
	"123456", "123456789", "12345678", "1234567", "12345", "1234567890",
	"password", "password1", "password123", "passw0rd", "p@ssw0rd",
	"qwerty", "qwerty123", "qwertyuiop", "abc123", "111111", "123123",
	"000000", "654321", "666666", "121212", "112233",
	"iloveyou", "letmein", "welcome", "welcome1", "admin", "admin123",
	"monkey", "dragon", "sunshine", "princess", "football", "baseball",
	"superman", "batman", "starwars", "pokemon", "master", "shadow",
	"trustno1", "whatever", "freedom", "secret", "login", "hunter2",
	"mypassword", "mypass", "pass123", "test123", "root", "toor",
	"michael", "jordan", "harley", "ranger", "soccer", "hockey",
	"jennifer", "jessica", "charlie", "daniel", "matthew", "ashley",
}

// Corpus is the offline breach matcher: a set-like membership structure over
// known-leaked passwords, keyed by lowercase form to match the storage
// convention of public leak files.
//
// Loading is lazy and happens at most once per Corpus (and the CLI holds one
// per process): the first membership test triggers the load, later calls
// reuse the built set. The set is immutable after the load completes, so
// concurrent lookups need no further synchronization.
type Corpus struct {
	// paths are external line-delimited corpus files, loaded in order.
	// Files that do not exist or cannot be read are skipped.
	paths []string

	// logger records skipped files and load statistics at debug level.
	logger *slog.Logger

	once    sync.Once
	set     map[string]struct{}
	longest int
}

// CorpusOption configures a Corpus.
type CorpusOption func(*Corpus)

// WithCorpusLogger sets a custom logger for corpus loading.
func WithCorpusLogger(logger *slog.Logger) CorpusOption {
	return func(c *Corpus) {
		c.logger = logger
	}
}

// NewCorpus creates a Corpus backed by the built-in seed list plus the given
// external corpus files. Nothing is read until the first lookup.
func NewCorpus(paths []string, opts ...CorpusOption) *Corpus {
	c := &Corpus{paths: paths}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// IsBreached reports whether either normalized form of a password appears in
// the corpus. The desubstituted form is checked as well as the lowercase one
// so that "MyP@ssw0rd" matches a corpus entry "mypassword".
func (c *Corpus) IsBreached(forms normalize.Forms) bool {
	return c.Contains(forms.Lowercase) || c.Contains(forms.Desubstituted)
}

// Contains reports whether the exact lowercase entry appears in the corpus.
// The empty string is never considered breached.
func (c *Corpus) Contains(entry string) bool {
	if entry == "" {
		return false
	}
	c.load()
	_, ok := c.set[strings.ToLower(entry)]
	return ok
}

// Size returns the number of loaded corpus entries, forcing the load.
func (c *Corpus) Size() int {
	c.load()
	return len(c.set)
}

// LongestEntry returns the length in runes of the longest corpus entry,
// forcing the load. Any candidate longer than this provably cannot be a
// corpus member; the suggestion generator relies on that for its bounded
// fallback.
func (c *Corpus) LongestEntry() int {
	c.load()
	return c.longest
}

// load builds the membership set exactly once. External files that are
// missing or truncated degrade to whatever was readable; the offline corpus
// is a soft dependency.
func (c *Corpus) load() {
	c.once.Do(func() {
		c.set = make(map[string]struct{}, len(defaultEntries))
		for _, entry := range defaultEntries {
			c.insert(entry)
		}

		for _, path := range c.paths {
			n, err := c.loadFile(path)
			if err != nil {
				// Entries read before the failure stay in the set.
				c.logger.Debug("breach corpus file unreadable", "path", path, "loaded", n, "error", err)
				continue
			}
			c.logger.Debug("loaded breach corpus file", "path", path, "entries", n)
		}
	})
}

// insert adds one lowercase entry, tracking the longest entry length.
// Only called during load, under the once barrier.
func (c *Corpus) insert(entry string) {
	c.set[entry] = struct{}{}
	if n := len([]rune(entry)); n > c.longest {
		c.longest = n
	}
}

// loadFile streams one line-delimited corpus file into the set. Lines are
// trimmed and lowercased; blanks and "#" comments are skipped. A read error
// mid-file keeps the entries already inserted.
func (c *Corpus) loadFile(path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // Corpus paths come from user config
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.insert(strings.ToLower(line))
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	return n, nil
}
