// Package normalize canonicalizes a raw password into the comparison forms
// shared by the heuristic extractor and the breach matcher.
//
// Two forms are produced per analysis: a lowercase form and a desubstituted
// form with common leetspeak substitutions reversed. Both forms are derived
// once, owned by the analysis call, and discarded after use.
package normalize
