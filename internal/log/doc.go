// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (passwords, tokens, secrets)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - Password attributes, regardless of spelling variant
//   - Secret values detected by pattern matching (tokens, keys)
//   - Session identifiers and authentication tokens
//
// A tool whose input is passwords must never echo them into its own logs.
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("analysis complete",
//	    "password", "hunter2",  // Will be sanitized to "***REDACTED***"
//	    "label", "high",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
