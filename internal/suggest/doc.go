// Package suggest synthesizes replacement password candidates.
//
// Every suggestion satisfies the same strength thresholds the heuristic
// scorer enforces: at least 12 characters, at least three character classes,
// no sequential or repeated runs, and absence from the offline breach
// corpus. Candidates are derived loosely from the input's detected
// dictionary word (or a neutral themed word) and decorated with
// cryptographically random digits, symbols, and capitalization.
//
// Generation is a retry-bounded search: each candidate gets a fixed number
// of random draws, and when the bound is exhausted a fully randomized strong
// password is constructed instead. The fallback builds the candidate one
// position at a time from an alphabet filtered to exclude run-forming
// characters, so it cannot loop open-endedly.
package suggest
