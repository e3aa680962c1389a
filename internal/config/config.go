package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for responsive interactive use while respecting
// the rate expectations of the public breach service.
const (
	// DefaultOnlineEndpoint is the k-anonymity range endpoint of the
	// Have I Been Pwned Pwned Passwords service.
	DefaultOnlineEndpoint = "https://api.pwnedpasswords.com/range"

	// DefaultOnlineTimeout bounds each online breach lookup. The range
	// endpoint typically answers well under a second; five seconds keeps
	// the tool responsive even on slow links while never hanging.
	DefaultOnlineTimeout = 5 * time.Second

	// DefaultSuggestionCount is the number of replacement candidates
	// generated per analyzed password.
	DefaultSuggestionCount = 3

	// DefaultBatchSize of 8 concurrent analyses balances throughput with
	// resource usage. The analyses themselves are cheap; the bound mainly
	// limits concurrent online lookups against the breach service.
	DefaultBatchSize = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "passaudit"
)

// Config holds all configuration options for passaudit.
// This struct is designed to be populated from CLI flags and the optional
// config file, and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// Passwords is the list of passwords to analyze, from positional
	// arguments or stdin. Must contain at least one entry.
	Passwords []string

	// Online enables the k-anonymity breach lookup. Off by default; the
	// offline corpus is always consulted.
	Online bool

	// OnlineEndpoint is the range endpoint base URL for the online lookup.
	OnlineEndpoint string

	// OnlineTimeout bounds each online lookup. After the timeout the
	// lookup counts as failed, never as a hang.
	OnlineTimeout time.Duration

	// SuggestionCount is the number of replacement candidates generated
	// per password.
	SuggestionCount int

	// BatchSize is the number of concurrent analyses when processing
	// multiple passwords.
	BatchSize int

	// CorpusFiles are extra line-delimited breach corpus files merged
	// into the built-in offline corpus.
	CorpusFiles []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .passaudit in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout and
	// the analyzed passwords are redacted in the output.
	ReportFile string

	// DBDir is the directory path for storing the SQLite history database.
	// When set, redacted analysis records are saved for later review.
	// When empty, nothing is persisted.
	DBDir string

	// SaveHistory indicates whether to save analysis records to the
	// history database. Automatically true when DBDir is configured.
	SaveHistory bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, endpoint).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		OnlineEndpoint:  DefaultOnlineEndpoint,
		OnlineTimeout:   DefaultOnlineTimeout,
		SuggestionCount: DefaultSuggestionCount,
		BatchSize:       DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for passaudit.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/passaudit
// On macOS: ~/Library/Application Support/passaudit
// On Windows: %LOCALAPPDATA%\passaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for passaudit.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultCorpusFiles returns the user corpus drop-in paths under the XDG
// data directory. The corpus loader skips files that do not exist, so these
// are always safe to pass.
func DefaultCorpusFiles() []string {
	dir := XDGDataDir()
	return []string{
		filepath.Join(dir, "breached_passwords.txt"),
		filepath.Join(dir, "rockyou.txt"),
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one password to analyze
	if len(c.Passwords) == 0 {
		return ErrNoPassword
	}

	// Timeout must be positive; zero timeout would fail every lookup
	if c.OnlineTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// SuggestionCount must be positive
	if c.SuggestionCount <= 0 {
		return ErrInvalidSuggestionCount
	}

	// BatchSize must be positive; zero would mean no analyses run
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
