package scanner

import (
	"time"

	"github.com/lecternapp/lectern/internal/manifest"
)

// Level classifies a scan diagnostic.
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Diagnostic is one noteworthy condition from a scan: an unreadable
// collection directory, or a collection with nothing usable in it.
// Diagnostics never abort a scan.
type Diagnostic struct {
	Level      Level
	Collection string
	Message    string
}

// Result is the outcome of one scan.
type Result struct {
	// Manifest holds the surviving collections with their page
	// identifiers sorted ascending. Collections that produced
	// diagnostics are absent.
	Manifest manifest.Manifest

	// Diagnostics in collection-name order, for the run report.
	Diagnostics []Diagnostic

	// Matched counts recordings that contributed a page identifier,
	// Skipped counts files that were present but did not fit the
	// naming scheme.
	Matched int
	Skipped int

	StartedAt   time.Time
	CompletedAt time.Time
}

// Warnings counts warning-level diagnostics.
func (r *Result) Warnings() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == LevelWarning {
			n++
		}
	}
	return n
}

// Errors counts error-level diagnostics.
func (r *Result) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == LevelError {
			n++
		}
	}
	return n
}
