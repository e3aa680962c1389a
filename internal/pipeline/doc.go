// Package pipeline orchestrates one password analysis as a sequence of
// steps: normalization, factor extraction, offline breach matching, the
// optional online breach lookup, scoring, and suggestion generation.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context for the network-bound step
//
// The online lookup is the only step permitted to block on external I/O;
// every other step is pure, synchronous, in-process computation.
//
// The package also provides batch processing of multiple passwords with
// concurrency control using errgroup. Concurrent analyses share one loaded
// breach corpus; no other state crosses analysis boundaries.
package pipeline
