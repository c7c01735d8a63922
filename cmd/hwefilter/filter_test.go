package main

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/carbocation/snpqc"
	"github.com/carbocation/snpqc/hwe"
)

func TestTestRow(t *testing.T) {
	row := snpqc.CountRow{SNP: "rs1", A1: "A", A2: "G", HOM1: 83, HET: 13, HOM2: 4}

	for _, v := range []struct {
		opts    options
		exclude bool
	}{
		{options{Alpha: 0.05}, true},
		{options{Alpha: 0.01}, false},
		{options{Alpha: 0.05, PValues: true}, true},
		{options{Alpha: 0.01, PValues: true}, false},
		// Mid-p P is 0.0056
		{options{Alpha: 0.01, MidP: true}, true},
		{options{Alpha: 0.005, MidP: true, PValues: true}, false},
		{options{Alpha: 0.05, PValues: true, Memoize: true}, true},
		{options{Alpha: 0.005, MidP: true, PValues: true, Memoize: true}, false},
	} {
		result := testRow(row, v.opts)
		if result.Exclude != v.exclude {
			t.Errorf("testRow(%+v, %+v).Exclude = %v, expected %v", row, v.opts, result.Exclude, v.exclude)
		}

		if result.SNP != row.SNP || result.HOM1 != row.HOM1 || result.HET != row.HET || result.HOM2 != row.HOM2 {
			t.Errorf("testRow did not carry over the counts: %+v", result)
		}

		if v.opts.PValues != (result.P != "") {
			t.Errorf("testRow(%+v) P = %q", v.opts, result.P)
		}
	}
}

func TestFilterRowsOrderAndConsistency(t *testing.T) {
	rows := []snpqc.CountRow{}
	for AA := int64(0); AA < 20; AA++ {
		for Aa := int64(0); Aa < 20; Aa++ {
			for aa := int64(0); aa < 20; aa++ {
				rows = append(rows, snpqc.CountRow{SNP: fmt.Sprintf("%d:%d:%d", AA, Aa, aa), HOM1: AA, HET: Aa, HOM2: aa})
			}
		}
	}

	fast, err := filterRows(rows, options{Alpha: 1e-3}, 4)
	if err != nil {
		t.Fatal(err)
	}

	full, err := filterRows(rows, options{Alpha: 1e-3, PValues: true}, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i, row := range rows {
		if fast[i].SNP != row.SNP || full[i].SNP != row.SNP {
			t.Fatalf("Row %d: results out of order (%s, %s, expected %s)", i, fast[i].SNP, full[i].SNP, row.SNP)
		}

		p, err := strconv.ParseFloat(full[i].P, 64)
		if err != nil {
			t.Fatal(err)
		}

		// The printed P-value is rounded, so compare against the engine
		if expected := hwe.Exact(row.HOM1, row.HET, row.HOM2) < 1e-3; fast[i].Exclude != expected || full[i].Exclude != expected {
			t.Fatalf("Row %+v: fast %v, full %v (P=%v), expected %v", row, fast[i].Exclude, full[i].Exclude, p, expected)
		}
	}
}

func TestFilterRowsMemoizeMatches(t *testing.T) {
	rows := cohortRows(5000)

	plain, err := filterRows(rows, options{Alpha: 1e-3, PValues: true}, 2)
	if err != nil {
		t.Fatal(err)
	}

	memoized, err := filterRows(rows, options{Alpha: 1e-3, PValues: true, Memoize: true}, 2)
	if err != nil {
		t.Fatal(err)
	}

	for i := range rows {
		if plain[i] != memoized[i] {
			t.Fatalf("Row %d: %+v without memoization, %+v with", i, plain[i], memoized[i])
		}
	}
}

// cohortRows resembles a large cohort: mostly rare variants, so many markers
// share their counts.
func cohortRows(n int) []snpqc.CountRow {
	rows := make([]snpqc.CountRow, n)
	for i := range rows {
		het := int64(i % 37)
		hom2 := int64(i % 3)
		rows[i] = snpqc.CountRow{SNP: fmt.Sprintf("rs%d", i), HOM1: 20000 - het - hom2, HET: het, HOM2: hom2}
	}

	return rows
}

func benchmarkFilterRows(b *testing.B, opts options) {
	rows := cohortRows(100000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := filterRows(rows, opts, 4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilterRowsThreshold(b *testing.B) {
	benchmarkFilterRows(b, options{Alpha: 1e-6})
}

func BenchmarkFilterRowsPValues(b *testing.B) {
	benchmarkFilterRows(b, options{Alpha: 1e-6, PValues: true})
}

func BenchmarkFilterRowsPValuesMemoized(b *testing.B) {
	benchmarkFilterRows(b, options{Alpha: 1e-6, PValues: true, Memoize: true})
}

func TestFilterRowsRejectsNegativeCounts(t *testing.T) {
	rows := []snpqc.CountRow{
		{SNP: "rs1", HOM1: 1, HET: 2, HOM2: 3},
		{SNP: "rs2", HOM1: 1, HET: -2, HOM2: 3},
	}

	if _, err := filterRows(rows, options{Alpha: 0.05}, 2); err == nil {
		t.Fatalf("Expected an error for negative counts")
	}
}

func TestFilterRowsEmpty(t *testing.T) {
	results, err := filterRows(nil, options{Alpha: 0.05}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}
