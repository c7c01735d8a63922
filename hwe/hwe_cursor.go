package hwe

// cursor walks the conditional distribution of heterozygote counts given fixed
// allele counts, two heterozygotes at a time. Stepping up converts one homr
// and one homc genotype into two heterozygotes; stepping down does the
// reverse. The counts are kept as float64 because they only ever feed the
// probability ratios.
//
// The ratio of adjacent terms is
//
//	P(hets-2) / P(hets) = hets*(hets-1) / (4*(homr+1)*(homc+1))
//
// so no factorial or binomial coefficient is ever computed.
type cursor struct {
	hets float64
	homr float64
	homc float64

	up bool
}

func newCursor(c counts, direction side) cursor {
	return cursor{
		hets: float64(c.hets),
		homr: float64(c.homr),
		homc: float64(c.homc),
		up:   direction == upper,
	}
}

// canStep reports whether another step keeps every count nonnegative.
func (c *cursor) canStep() bool {
	if c.up {
		return c.homr > 0.5
	}

	return c.hets > 1.5
}

// peek returns the ratio that the next step would apply, without moving. At a
// boundary the ratio is 0.
func (c *cursor) peek() float64 {
	if c.up {
		return (4 * c.homr * c.homc) / ((c.hets + 2) * (c.hets + 1))
	}

	return (c.hets * (c.hets - 1)) / (4 * (c.homr + 1) * (c.homc + 1))
}

// step moves one configuration further and returns the probability of the new
// configuration relative to the previous one. Callers must check canStep
// first.
func (c *cursor) step() float64 {
	if c.up {
		c.hets += 2
		ratio := (4 * c.homr * c.homc) / (c.hets * (c.hets - 1))
		c.homr--
		c.homc--
		return ratio
	}

	c.homr++
	c.homc++
	ratio := (c.hets * (c.hets - 1)) / (4 * c.homr * c.homc)
	c.hets -= 2
	return ratio
}

// sumTail adds successive terms to sum, starting from the term last at the
// cursor's current position, until the cursor reaches a boundary or a term no
// longer changes the sum. Terms only shrink from here on, so nothing that is
// skipped could have changed the result.
func sumTail(c *cursor, last, sum float64) float64 {
	for c.canStep() {
		last = mul(last, c.step())
		prev := sum
		sum += last
		if sum <= prev {
			break
		}
	}

	return sum
}
