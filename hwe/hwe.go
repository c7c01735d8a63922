// Package hwe computes exact tests of Hardy-Weinberg equilibrium for
// biallelic markers, following Wigginton, Cutler and Abecasis (2005) "A Note
// on Exact Tests of Hardy-Weinberg Equilibrium" with the floating point
// refinements of Christopher Chang's SNPHWE2. The mid-p variant follows
// Graffelman and Moreno (2013).
//
// Throughout the package, AA and aa are the two homozygote class counts and Aa
// is the heterozygote count. Which homozygote class is the "major" one does
// not matter; every result is symmetric in AA and aa.
//
// Every function in this package is pure, does not allocate, and is safe to
// call from concurrent goroutines.
package hwe

const (
	// smallEpsilon is 2^-44.
	smallEpsilon = 0.00000000000005684341886080801486968994140625

	// exactTestBias is 2^-83. Relative probabilities are scaled by it so that
	// p-values down to the smallest positive float64 can be represented.
	exactTestBias = 0.00000000000000000000000010339757656912845935892608650874535669572651386260986328125

	// unitMass is the scaled relative probability of the observed
	// configuration. It sits just below exactTestBias so that comparing a later
	// term against exactTestBias decides tail membership without rounding
	// noise.
	unitMass = (1 - smallEpsilon) * exactTestBias

	// A boundary term above tieFloor has the same probability as the observed
	// configuration.
	tieFloor = (1 - 2*smallEpsilon) * exactTestBias
)

// mul returns p*ratio rounded to float64. The explicit conversion keeps the
// compiler from fusing the product into a later addition, which would change
// the convergence tests.
func mul(p, ratio float64) float64 {
	return float64(p * ratio)
}
