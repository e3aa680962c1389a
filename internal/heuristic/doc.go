// Package heuristic derives risk factors from a password and combines them
// into a weighted risk score.
//
// The extractor is a pure function of the password and its normalized forms.
// It emits a fixed, ordered set of factors (length, character diversity,
// sequential runs, repeated runs, predictable substitutions, dictionary
// words) so that downstream reason strings are deterministic and testable.
//
// The scorer accumulates the fixed factor weights, clamps the result to
// [0,1], and maps it to a discrete label. A breach hit forces the score to
// at least 0.9 and the label to high: a password found in a breach corpus is
// never reported as safe.
package heuristic
