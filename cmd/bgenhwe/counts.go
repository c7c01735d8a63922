package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bgen"
	"github.com/carbocation/pfx"
	"github.com/carbocation/snpqc"
	"github.com/carbocation/snpqc/hwe"
)

// sampler decides which BGEN samples are counted. The zero value counts all
// of them.
type sampler struct {
	keep []bool
}

func (s sampler) counts(i int) bool {
	if s.keep == nil {
		return true
	}

	return i < len(s.keep) && s.keep[i]
}

// Count is the number of samples kept.
func (s sampler) Count() int {
	n := 0
	for _, k := range s.keep {
		if k {
			n++
		}
	}

	return n
}

// SampleLookup reads an Oxford .sample file, whose rows map onto the samples
// of the BGEN, and a list of sample IDs to keep.
func SampleLookup(ctx context.Context, client *storage.Client, sampleFile, sampleIDFile string) (sampler, error) {
	recs, err := readDelimited(ctx, client, sampleFile, ' ')
	if err != nil {
		return sampler{}, err
	}

	// The first two lines of a .sample file are the header and column types
	truthMap := make([]bool, 0, len(recs))
	lookups := make(map[string]int)
	for i, line := range recs {
		if i <= 1 {
			continue
		}

		lookups[line[0]] = len(truthMap)
		truthMap = append(truthMap, false)
	}

	// Set the values to true if we want that sample
	subsetRecs, err := readDelimited(ctx, client, sampleIDFile, ',')
	if err != nil {
		return sampler{}, err
	}

	unknown := 0
	for i, sample := range subsetRecs {
		if i == 0 {
			// Header
			continue
		}

		idx, ok := lookups[sample[0]]
		if !ok {
			unknown++
			continue
		}
		truthMap[idx] = true
	}
	if unknown > 0 {
		log.Printf("%d sample IDs in %s are not in %s and were ignored\n", unknown, sampleIDFile, sampleFile)
	}

	return sampler{keep: truthMap}, nil
}

func readDelimited(ctx context.Context, client *storage.Client, path string, comma rune) ([][]string, error) {
	rc, err := snpqc.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.Comma = comma
	r.FieldsPerRecord = -1

	recs, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return recs, nil
}

// genotypeCounts are expected genotype counts, summed over genotype
// probabilities.
type genotypeCounts struct {
	AA float64
	Aa float64
	aa float64
}

// sumGenotypes sums the genotype probabilities of the counted samples. Samples
// without exactly three genotype probabilities (not diploid and biallelic) are
// skipped.
func sumGenotypes(samples []bgen.SampleProbability, subset sampler) genotypeCounts {
	var out genotypeCounts
	for i, v := range samples {
		if !subset.counts(i) || len(v.Probabilities) != 3 {
			continue
		}

		out.AA += v.Probabilities[0]
		out.Aa += v.Probabilities[1]
		out.aa += v.Probabilities[2]
	}

	return out
}

// N is the observed sample count, which may be smaller than the number of
// samples in the BGEN.
func (g genotypeCounts) N() float64 {
	return g.AA + g.Aa + g.aa
}

// ExactP truncates the expected counts to integers and computes the HWE exact
// P-value.
func (g genotypeCounts) ExactP(midP bool) float64 {
	return hwe.ExactP(int64(g.AA), int64(g.Aa), int64(g.aa), midP)
}

// MinorAlleleFrequency depends on the allele count, not the sample count.
func (g genotypeCounts) MinorAlleleFrequency() float64 {
	alleleCount := 2.0 * g.N()
	A := (2.0*g.AA + g.Aa) / alleleCount
	a := (g.Aa + 2.0*g.aa) / alleleCount

	if A < a {
		return A
	}

	return a
}
