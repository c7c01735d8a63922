package hwe

import "lukechampine.com/uint128"

// side identifies one half of the conditional distribution of heterozygote
// counts, relative to its mode.
type side int

const (
	// lower holds configurations with fewer heterozygotes than expected.
	lower side = iota
	// upper holds configurations with more heterozygotes than expected.
	upper
)

func (s side) opposite() side {
	if s == upper {
		return lower
	}
	return upper
}

// counts is a genotype count triple with the homozygote classes ordered by
// raw count. homr is not necessarily the homozygote class of the rarer allele
// in small samples; it only decides which side the recurrence starts from.
type counts struct {
	hets int64
	homr int64
	homc int64

	// rareCopies is the number of copies of the allele of the homr class.
	rareCopies int64

	// genotypes2 is twice the number of genotypes, or the allele count.
	genotypes2 int64
}

func canonicalize(AA, Aa, aa int64) counts {
	homr, homc := AA, aa
	if homc < homr {
		homr, homc = homc, homr
	}

	return counts{
		hets:       Aa,
		homr:       homr,
		homc:       homc,
		rareCopies: 2*homr + Aa,
		genotypes2: 2 * (Aa + homr + homc),
	}
}

// empty reports whether no genotypes were observed.
func (c counts) empty() bool {
	return c.genotypes2 == 0
}

// observedSide reports the side of the distribution on which the observed
// configuration lies. The observed configuration is on the upper side when
//
//	hets * genotypes2 > rareCopies * (genotypes2 - rareCopies)
//
// which is hets > expected hets, with both sides multiplied by genotypes2.
// Both products are taken in 128 bits.
func (c counts) observedSide() side {
	observed := uint128.From64(uint64(c.hets)).Mul64(uint64(c.genotypes2))
	expected := uint128.From64(uint64(c.rareCopies)).Mul64(uint64(c.genotypes2 - c.rareCopies))

	if observed.Cmp(expected) > 0 {
		return upper
	}

	return lower
}

// cursors returns two cursors parked on the observed configuration. inner
// walks toward the mode and on into the opposite tail; outer walks away from
// the mode, deeper into the observed tail.
func (c counts) cursors(observed side) (inner, outer cursor) {
	return newCursor(c, observed.opposite()), newCursor(c, observed)
}
