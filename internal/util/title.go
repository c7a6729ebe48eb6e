// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches a lowercase-to-uppercase boundary ("aB").
	caseBoundaryRe = regexp.MustCompile(`([a-z])([A-Z])`)
	// Matches an acronym running into a capitalized word ("ABDef").
	acronymBoundaryRe = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	// Matches a letter-to-digit boundary ("a4").
	digitBoundaryRe = regexp.MustCompile(`([A-Za-z])([0-9])`)
)

// DisplayTitle renders a collection name for humans by spacing out its
// capitalized words. It is a fallback for collections the reference
// list carries no localized title for.
//
// Examples:
//
//	"BavaBatra"    → "Bava Batra"
//	"Berakhot"     → "Berakhot"
//	"RoshHashanah" → "Rosh Hashanah"
//	"BavaBatra2"   → "Bava Batra 2"
//
// Purely presentational; catalog identity always uses the raw name.
func DisplayTitle(name string) string {
	s := strings.TrimSpace(name)
	s = acronymBoundaryRe.ReplaceAllString(s, "$1 $2")
	s = caseBoundaryRe.ReplaceAllString(s, "$1 $2")
	s = digitBoundaryRe.ReplaceAllString(s, "$1 $2")
	return s
}
