package hwe

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
)

// MaxCount bounds the total genotype count: twice the sum of the three counts
// must fit in an int64.
const MaxCount = math.MaxInt64 / 2

// CheckCounts returns an error unless the counts are nonnegative and small
// enough for the package's integer arithmetic. The test functions themselves
// do not check their inputs.
func CheckCounts(AA, Aa, aa int64) error {
	if AA < 0 || Aa < 0 || aa < 0 {
		return pfx.Err(fmt.Errorf("Genotype counts must be nonnegative (AA=%d Aa=%d aa=%d)", AA, Aa, aa))
	}

	if AA > MaxCount || Aa > MaxCount-AA || aa > MaxCount-AA-Aa {
		return pfx.Err(fmt.Errorf("Genotype counts sum to more than %d (AA=%d Aa=%d aa=%d)", int64(MaxCount), AA, Aa, aa))
	}

	return nil
}

// CheckThreshold returns an error unless alpha can be passed to Reject, or to
// RejectMidP if midP is set.
func CheckThreshold(alpha float64, midP bool) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
		return pfx.Err(fmt.Errorf("HWE threshold must be strictly between 0 and 1, got %g", alpha))
	}

	if midP && alpha >= 0.5 {
		return pfx.Err(fmt.Errorf("Mid-p HWE threshold must be below 0.5, got %g", alpha))
	}

	return nil
}
