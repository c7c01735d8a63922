package hwe

import "math"

// Reject reports whether the exact Hardy-Weinberg P-value of the counts is
// below alpha, which must lie strictly between 0 and 1. It returns the same
// answer as Exact(AA, Aa, aa) < alpha but usually exits long before the full
// P-value is known.
//
// Suppose the observed het count is above expectation (the other case is the
// mirror image). Reject sums the relative likelihoods of the more likely,
// smaller het counts, which fixes the tail mass needed to pass the threshold.
// Usually the tail boundary terms alone settle it. When they do not, the
// geometric series through each tail's boundary ratio bounds the tail sums, and
// only if that is inconclusive are the tails walked.
func Reject(AA, Aa, aa int64, alpha float64) bool {
	return rejects(AA, Aa, aa, alpha, wholeTies)
}

// RejectMidP reports whether the mid-p Hardy-Weinberg P-value of the counts is
// below alpha. alpha must be strictly between 0 and 0.5.
func RejectMidP(AA, Aa, aa int64, alpha float64) bool {
	return rejects(AA, Aa, aa, alpha, splitTies)
}

// ties decides how configurations exactly as likely as the observed one are
// counted.
type ties int

const (
	// wholeTies puts all of a tie's mass in the tail.
	wholeTies ties = iota
	// splitTies puts half of a tie's mass in the tail and half in the center,
	// for the mid-p test.
	splitTies
)

type verdict int

const (
	undecided verdict = iota
	accept
	reject
)

func rejects(AA, Aa, aa int64, alpha float64, policy ties) bool {
	c := canonicalize(AA, Aa, aa)
	if c.empty() {
		return false
	}

	observed := c.observedSide()

	// If the inner cursor cannot move, the observed configuration is the mode.
	if observed == upper && c.hets < 2 {
		return false
	}
	if observed == lower && c.homr == 0 {
		return false
	}

	// For a subnormal alpha the odds overflow, and with them every bound.
	odds := (1 - alpha) / alpha
	if math.IsInf(odds, 1) {
		return ExactP(AA, Aa, aa, policy == splitTies) < alpha
	}

	inner, outer := c.cursors(observed)
	t := thresholdTest{
		policy:    policy,
		odds:      odds,
		inner:     inner,
		outer:     outer,
		lastInner: unitMass,
	}

	t.tailOuter = unitMass
	if policy == splitTies {
		t.tailOuter = unitMass * 0.5
		t.center = t.tailOuter
	}

	return t.decide(c.rareCopies)
}

// thresholdTest compares unnormalized partial sums against bounds derived from
// alpha in odds form, so the normalizing sum is never needed: the counts are in
// equilibrium when tail >= center/odds.
type thresholdTest struct {
	policy ties

	// odds is (1-alpha)/alpha.
	odds float64

	inner cursor
	outer cursor

	lastInner float64
	lastOuter float64

	// tailOuter starts with the observed configuration.
	tailInner float64
	tailOuter float64
	center    float64

	// exit is the tail mass needed to accept, once the center is known.
	exit float64

	// innerCeil bounds the whole inner tail.
	innerCeil float64
}

// decide runs the phases in order and stops at the first conclusive one.
func (t *thresholdTest) decide(rareCopies int64) bool {
	v := t.sumNearSide(rareCopies)
	if v == undecided {
		v = t.computeTailCeilings()
	}
	if v == undecided {
		v = t.sumFarSide()
	}

	return v == reject
}

// sumNearSide sums the center by walking toward the mode, and stops at the
// first term less likely than the observed configuration: the inner tail's
// boundary term.
//
// Each tail term is at most the observed mass, and there can be no more than
// rareCopies of them, so a center above rareCopies*odds*bias can be rejected
// without going further.
func (t *thresholdTest) sumNearSide(rareCopies int64) verdict {
	bound := float64(rareCopies) * t.odds * exactTestBias

	for {
		t.lastInner = mul(t.lastInner, t.inner.step())
		if t.lastInner < exactTestBias {
			if t.policy == splitTies && t.lastInner > tieFloor {
				// A tie with the observed configuration is split like the
				// observed configuration itself.
				t.tailInner = t.tailOuter
				t.center += t.tailOuter
			} else {
				t.tailInner = t.lastInner
			}
			break
		}

		t.center += t.lastInner
		if t.center > bound {
			return reject
		}

		if !t.inner.canStep() {
			break
		}
	}

	t.exit = t.center / t.odds
	if t.tailOuter+t.tailInner >= t.exit {
		return accept
	}

	return undecided
}

// computeTailCeilings bounds both tails with geometric series through their
// boundary terms: c + cr + cr^2 + ... = c/(1-r). Ratios only shrink moving away
// from the mode, so the boundary ratio bounds every later one. It then takes
// the first step of the outer tail.
func (t *thresholdTest) computeTailCeilings() verdict {
	ratio := t.inner.peek()
	if t.policy == splitTies {
		// Holds whether or not the inner boundary term was a tie.
		t.innerCeil = t.tailInner + t.lastInner*ratio/(1-ratio)
	} else {
		t.innerCeil = t.tailInner / (1 - ratio)
	}

	// The observed configuration is always a tie with itself.
	observed := t.tailOuter
	ratio = t.outer.peek()
	var outerCeil float64
	if t.policy == splitTies {
		observed = t.tailOuter * 2
		outerCeil = observed/(1-ratio) - t.tailOuter
	} else {
		outerCeil = observed / (1 - ratio)
	}

	if outerCeil+t.innerCeil < t.exit {
		return reject
	}

	t.lastOuter = mul(ratio, observed)
	if t.outer.canStep() {
		t.outer.step()
	}
	t.tailOuter += t.lastOuter

	return undecided
}

// sumFarSide walks the outer tail and then the rest of the inner tail exactly,
// testing the running tail mass after every term.
func (t *thresholdTest) sumFarSide() verdict {
	need := t.exit - t.tailInner
	if t.tailOuter >= need {
		return accept
	}

	for t.outer.canStep() {
		t.lastOuter = mul(t.lastOuter, t.outer.step())
		prev := t.tailOuter
		t.tailOuter += t.lastOuter
		if t.tailOuter >= need {
			return accept
		}
		if t.tailOuter <= prev {
			break
		}
	}

	if t.tailOuter+t.innerCeil < t.exit {
		return reject
	}

	need = t.exit - t.tailOuter
	for t.inner.canStep() {
		t.lastInner = mul(t.lastInner, t.inner.step())
		prev := t.tailInner
		t.tailInner += t.lastInner
		if t.tailInner >= need {
			return accept
		}
		if t.tailInner <= prev {
			return reject
		}
	}

	return reject
}
