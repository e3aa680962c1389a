// Package database provides SQLite-based storage for passaudit.
//
// This package implements the HistoryDB, which stores redacted analysis
// records for later review. Records are keyed by the 5-character SHA-1
// prefix of the analyzed password, the same value the k-anonymity protocol
// transmits; the plaintext password and the full digest are never written
// to disk.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
