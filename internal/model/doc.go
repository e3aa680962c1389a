// Package model defines the core data structures used throughout passaudit.
//
// This package contains the following main types:
//   - RiskFactor: One named, weighted heuristic signal
//   - RiskLabel: The discrete low/medium/high verdict
//   - BreachResult: Offline and online breach-lookup outcome
//   - AnalysisResult: The complete result of one password analysis
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (heuristic, pipeline, report, database) need
// to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. The analyzed password itself is echoed in AnalysisResult
// for the caller's benefit but must never be logged or persisted; callers that
// store results use Redacted to strip it first.
package model
