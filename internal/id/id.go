// Package id generates the short identifiers stamped on reports and
// server requests.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Run IDs show up in log lines and report headers; twelve characters of
// the URL-safe alphabet is plenty to tell runs apart.
const runIDLength = 12

// NewRunID returns an identifier for one build or validation run,
// e.g. "run-Uakgb_J5m9g9".
func NewRunID() string {
	return Must("run", runIDLength)
}

// New creates a prefixed unique ID using NanoID, e.g. "req-V1StGXR8_Z5j".
// Returns an error if the system has insufficient entropy for secure
// random generation.
func New(prefix string, length int) (string, error) {
	id, err := gonanoid.New(length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// Must is like New but panics if ID generation fails. Entropy exhaustion
// is not something a catalog run can recover from anyway.
func Must(prefix string, length int) string {
	id, err := New(prefix, length)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
