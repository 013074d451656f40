package check

import "errors"

// Failure taxonomy. Nothing in this package panics or aborts a run;
// every failure degrades to fewer results plus a diagnostic.
var (
	// ErrParse marks an upstream document that failed to parse. The
	// file produces zero pairs and one diagnostic.
	ErrParse = errors.New("document parse failed")

	// ErrColorResolve marks a pair with at least one side that could
	// not be resolved to a color. The pair is excluded from pass/fail
	// counts and recorded as a warning.
	ErrColorResolve = errors.New("unresolvable color")

	// ErrSelectorMatch is reserved for forward compatibility; no code
	// path currently returns it.
	ErrSelectorMatch = errors.New("selector match failed")
)
