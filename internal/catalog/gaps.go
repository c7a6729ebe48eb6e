package catalog

import "slices"

// FindGaps returns the integers missing between the smallest and
// largest values of nums, ascending. Fewer than two values means no
// range to inspect, so the result is empty. Input order and duplicates
// do not matter, and nums is never modified.
func FindGaps(nums []int) []int {
	if len(nums) < 2 {
		return nil
	}

	lo := slices.Min(nums)
	hi := slices.Max(nums)

	present := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		present[n] = struct{}{}
	}

	var gaps []int
	for n := lo + 1; n < hi; n++ {
		if _, ok := present[n]; !ok {
			gaps = append(gaps, n)
		}
	}
	return gaps
}
