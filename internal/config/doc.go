// Package config provides configuration structures and utilities for
// passaudit. It defines the main configuration options for password analysis,
// the online breach lookup, and report generation preferences.
package config
