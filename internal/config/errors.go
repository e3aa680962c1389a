package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoPassword is returned when no password is given to analyze.
	// This error occurs when neither positional arguments nor --stdin
	// provide a password.
	ErrNoPassword = errors.New("no password specified: provide a password argument or use --stdin")

	// ErrInvalidTimeout is returned when the online lookup timeout is not
	// positive. A zero or negative timeout would fail every lookup.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidSuggestionCount is returned when the suggestion count is
	// not positive.
	ErrInvalidSuggestionCount = errors.New("invalid suggestion count: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent analyses, effectively
	// stopping processing.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
