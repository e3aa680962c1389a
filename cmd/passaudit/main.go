// Package main provides the entry point for the passaudit CLI.
//
// passaudit is a password risk and breach intelligence tool. It scores
// passwords against weakness heuristics, matches them against breach
// corpora, and generates stronger replacement candidates.
//
// Usage:
//
//	passaudit analyze <password>
//	passaudit analyze --stdin
//
// See --help for all available options.
package main

// main is the entry point for passaudit.
func main() {
	Execute()
}
