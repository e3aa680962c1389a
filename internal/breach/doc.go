// Package breach tests passwords against known-leaked credential corpora.
//
// Two collaborators are implemented:
//
//   - Corpus: an offline, process-wide membership set of leaked passwords.
//     It is loaded lazily behind a single initialization barrier and is
//     read-only afterwards, so concurrent analyses share one instance
//     without locking. Missing or unreadable corpus files degrade to "no
//     matches" rather than failing the analysis.
//
//   - OnlineChecker: the k-anonymity range lookup against a breach
//     intelligence service (Have I Been Pwned compatible). Only the first
//     five characters of the password's SHA-1 digest ever leave the
//     process; the suffix comparison happens locally. Any network failure
//     degrades to "not checked".
package breach
