package hwe

import (
	"math"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	for _, v := range []struct {
		AA, Aa, aa int64
		expected   counts
		side       side
	}{
		{83, 13, 4, counts{hets: 13, homr: 4, homc: 83, rareCopies: 21, genotypes2: 200}, lower},
		{4, 13, 83, counts{hets: 13, homr: 4, homc: 83, rareCopies: 21, genotypes2: 200}, lower},
		{10, 100, 0, counts{hets: 100, homr: 0, homc: 10, rareCopies: 100, genotypes2: 220}, upper},
		{25, 50, 25, counts{hets: 50, homr: 25, homc: 25, rareCopies: 100, genotypes2: 200}, lower},
		{0, 0, 0, counts{}, lower},
	} {
		c := canonicalize(v.AA, v.Aa, v.aa)
		if c != v.expected {
			t.Fatalf("canonicalize(%d, %d, %d) = %+v, expected %+v", v.AA, v.Aa, v.aa, c, v.expected)
		}
		if s := c.observedSide(); s != v.side {
			t.Fatalf("canonicalize(%d, %d, %d) observed side %v, expected %v", v.AA, v.Aa, v.aa, s, v.side)
		}
	}
}

// The products in the side test exceed 64 bits for counts this large.
func TestObservedSideLargeCounts(t *testing.T) {
	big := int64(1) << 40

	if s := canonicalize(big, 4*big, big).observedSide(); s != upper {
		t.Errorf("Expected a heterozygote excess on the upper side, got %v", s)
	}

	if s := canonicalize(big, big/2, big).observedSide(); s != lower {
		t.Errorf("Expected a heterozygote deficit on the lower side, got %v", s)
	}
}

func TestCursorStepMatchesPeek(t *testing.T) {
	c := canonicalize(40, 30, 20)
	for _, dir := range []side{lower, upper} {
		cur := newCursor(c, dir)
		steps := 0
		for cur.canStep() {
			peeked := cur.peek()
			if stepped := cur.step(); stepped != peeked {
				t.Fatalf("direction %v step %d: peek %v but step %v", dir, steps, peeked, stepped)
			}
			if cur.hets < 0 || cur.homr < 0 || cur.homc < 0 {
				t.Fatalf("direction %v step %d: negative count %+v", dir, steps, cur)
			}
			steps++
		}

		if peeked := cur.peek(); peeked != 0 {
			t.Errorf("direction %v: expected a zero ratio at the boundary, got %v", dir, peeked)
		}

		// 30 hets can drop 15 times; 20 rare homozygotes can rise 20 times
		if expected := map[side]int{lower: 15, upper: 20}[dir]; steps != expected {
			t.Errorf("direction %v: took %d steps, expected %d", dir, steps, expected)
		}
	}
}

func TestCursorRatio(t *testing.T) {
	// From 2 hets, 4 and 9 homozygotes, stepping down reaches 0 hets with 5
	// and 10 homozygotes: 2*1 / (4*5*10).
	cur := newCursor(canonicalize(4, 2, 9), lower)
	if r := cur.step(); math.Abs(r-0.01) > 1e-15 {
		t.Errorf("Expected ratio 0.01, got %v", r)
	}

	// And back up again.
	cur.up = true
	if r := cur.step(); math.Abs(r-100) > 1e-12 {
		t.Errorf("Expected ratio 100, got %v", r)
	}
}

func TestCheckCounts(t *testing.T) {
	for _, v := range []struct {
		AA, Aa, aa int64
		ok         bool
	}{
		{0, 0, 0, true},
		{500, 2, 2, true},
		{MaxCount, 0, 0, true},
		{-1, 0, 0, false},
		{0, -1, 0, false},
		{0, 0, -1, false},
		{MaxCount, 1, 0, false},
		{1, MaxCount, 0, false},
		{MaxCount / 2, MaxCount / 2, 2, false},
	} {
		if err := CheckCounts(v.AA, v.Aa, v.aa); (err == nil) != v.ok {
			t.Errorf("CheckCounts(%d, %d, %d) = %v, expected ok=%v", v.AA, v.Aa, v.aa, err, v.ok)
		}
	}
}

func TestCheckThreshold(t *testing.T) {
	for _, v := range []struct {
		alpha float64
		midP  bool
		ok    bool
	}{
		{0.05, false, true},
		{0.05, true, true},
		{0.7, false, true},
		{0.7, true, false},
		{0.5, true, false},
		{0, false, false},
		{1, false, false},
		{-0.1, false, false},
		{math.NaN(), false, false},
	} {
		if err := CheckThreshold(v.alpha, v.midP); (err == nil) != v.ok {
			t.Errorf("CheckThreshold(%v, %v) = %v, expected ok=%v", v.alpha, v.midP, err, v.ok)
		}
	}
}
