package hwe

import "github.com/BenLubar/memoize"

var memoizedExactP = memoize.Memoize(ExactP).(func(int64, int64, int64, bool) float64)

// Memoized is ExactP behind a cache keyed on its arguments. Large cohorts
// contain many markers with identical counts (most rare variants look alike),
// so batch scans can avoid recomputing them. The cache is never evicted. It is
// safe to call from concurrent goroutines.
func Memoized(AA, Aa, aa int64, midP bool) float64 {
	return memoizedExactP(AA, Aa, aa, midP)
}
