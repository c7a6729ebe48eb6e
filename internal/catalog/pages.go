package catalog

import (
	"slices"
	"strconv"
	"strings"
)

// Page identifiers are digit strings and compare by numeric value, so
// "10" sorts after "2". Values are compared without converting to int:
// strip leading zeros, then shorter means smaller, then lexicographic.
// That keeps absurdly long identifiers from overflowing anything.

// comparePages orders two identifiers numerically, falling back to the
// original strings when the values are equal ("2" before "02" never
// happens in practice, but the order must still be deterministic).
func comparePages(a, b string) int {
	ta := canonicalPage(a)
	tb := canonicalPage(b)
	if len(ta) != len(tb) {
		return len(ta) - len(tb)
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func canonicalPage(p string) string {
	t := strings.TrimLeft(p, "0")
	if t == "" {
		return "0"
	}
	return t
}

// SortPages orders identifiers ascending by numeric value, in place.
// The sort is stable with a string tiebreak, so equal inputs always
// produce byte-identical output.
func SortPages(pages []string) {
	slices.SortStableFunc(pages, comparePages)
}

// DedupePages drops identifiers that repeat an already-seen numeric
// value, keeping the first spelling encountered. Input order is
// preserved.
func DedupePages(pages []string) []string {
	seen := make(map[string]struct{}, len(pages))
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		key := canonicalPage(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// PageNumber parses an identifier into its numeric value.
func PageNumber(page string) (int, error) {
	return strconv.Atoi(page)
}

// Numbers converts identifiers to ints for gap analysis. Identifiers
// too large for int are skipped; the parser only ever produces digit
// runs, so in practice nothing is dropped.
func Numbers(pages []string) []int {
	nums := make([]int, 0, len(pages))
	for _, p := range pages {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}
