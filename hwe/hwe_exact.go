package hwe

import "math"

// Exact computes an exact Hardy-Weinberg equilibrium P-value, based on the
// Abecasis paper, itself based on RA Fisher's method. AA and aa are the two
// homozygote counts and Aa is the heterozygote count. Exact is safe to call
// from concurrent goroutines. Use https://www.cog-genomics.org/software/stats
// for sanity checks.
//
// If you only need to know whether the P-value falls below a cutoff, Reject is
// usually much faster.
func Exact(AA, Aa, aa int64) float64 {
	return ExactP(AA, Aa, aa, false)
}

// ExactMidP computes the mid-p variant of Exact: configurations exactly as
// likely as the observed one contribute half of their probability.
func ExactMidP(AA, Aa, aa int64) float64 {
	return ExactP(AA, Aa, aa, true)
}

// ExactP computes the exact Hardy-Weinberg P-value, or its mid-p variant when
// midP is set. With no genotypes at all, it returns 1 (0.5 for mid-p).
func ExactP(AA, Aa, aa int64, midP bool) float64 {
	c := canonicalize(AA, Aa, aa)
	if c.empty() {
		if midP {
			return 0.5
		}
		return 1
	}

	inner, outer := c.cursors(c.observedSide())
	s := exactSum{
		inner: inner,
		outer: outer,
		last:  unitMass,
		tail:  unitMass,
		ties:  1,
	}

	if !s.sumNearSide() {
		// The center overflowed, so the tail is negligible.
		return 0
	}

	if s.center == 0 && !midP {
		// Nothing is more likely than the observed configuration.
		return 1
	}

	s.sumFarSide()

	return s.decide(midP)
}

// exactSum holds the partial sums of the full P-value computation. Relative
// probabilities are scaled so that the observed configuration has mass
// unitMass.
type exactSum struct {
	inner cursor
	outer cursor

	// last is the most recent term produced by inner.
	last float64

	// tail accumulates configurations no more likely than the observed one;
	// center accumulates the rest.
	tail   float64
	center float64

	// ties counts configurations with the same probability as the observed
	// one, including itself.
	ties int
}

// sumNearSide walks the inner cursor toward the mode, adding every term to the
// center until the first term that is less likely than the observed
// configuration, which goes to the tail. It returns false if the center
// overflowed.
func (s *exactSum) sumNearSide() bool {
	for s.inner.canStep() {
		s.last = mul(s.last, s.inner.step())
		if s.last < exactTestBias {
			if s.last > tieFloor {
				s.ties++
			}
			s.tail += s.last
			return true
		}

		s.center += s.last
		if math.IsInf(s.center, 1) {
			return false
		}
	}

	return true
}

// sumFarSide sums the rest of the opposite tail, then the observed tail beyond
// the observed configuration.
func (s *exactSum) sumFarSide() {
	s.tail = sumTail(&s.inner, s.last, s.tail)
	s.tail = sumTail(&s.outer, unitMass, s.tail)
}

func (s *exactSum) decide(midP bool) float64 {
	if !midP {
		return s.tail / (s.tail + s.center)
	}

	tied := float64(unitMass * 0.5 * float64(s.ties))
	return (s.tail - tied) / (s.tail + s.center)
}
