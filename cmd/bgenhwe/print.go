package main

import (
	"fmt"
	"io"
	"log"

	"github.com/carbocation/bgen"
)

type printer struct {
	w io.Writer

	// alpha is the exclusion threshold, or 0 to not flag variants
	alpha float64
	midP  bool

	flagged int
}

func (p *printer) header() {
	fmt.Fprintf(p.w, "SNP\tCHR\tBP\tA1\tA2\tAC\tMAF\tAA\tAa\taa\tHWE_Exact_P")
	if p.alpha > 0 {
		fmt.Fprintf(p.w, "\tEXCLUDE")
	}
	fmt.Fprintf(p.w, "\n")
}

func (p *printer) variant(variant *bgen.Variant, subset sampler) {
	if len(variant.Alleles) != 2 {
		log.Printf("Skipping %s: %d alleles, but only biallelic variants can be tested\n", variant.RSID, len(variant.Alleles))
		return
	}

	g := sumGenotypes(variant.SampleProbabilities, subset)
	N := g.N()
	if N == 0 {
		log.Printf("Skipping %s: no diploid samples were counted\n", variant.RSID)
		return
	}
	exactP := g.ExactP(p.midP)

	fmt.Fprintf(p.w, "%s\t%s\t%d\t%s\t%s\t%.6e\t%.3e\t%.3e\t%.3e\t%.3e\t%.3e",
		variant.RSID, variant.Chromosome, variant.Position, variant.Alleles[0], variant.Alleles[1],
		2.0*N, g.MinorAlleleFrequency(), g.AA/N, g.Aa/N, g.aa/N, exactP)

	if p.alpha > 0 {
		exclude := exactP < p.alpha
		if exclude {
			p.flagged++
		}
		fmt.Fprintf(p.w, "\t%v", exclude)
	}

	fmt.Fprintf(p.w, "\n")
}
