package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"cloud.google.com/go/storage"
	"github.com/carbocation/snpqc"
	_ "github.com/carbocation/snpqc/compileinfoprint"
	"github.com/carbocation/snpqc/hwe"
)

// Filter markers by their exact Hardy-Weinberg equilibrium P-value, like
// plink's --hwe
func main() {
	var countsPath string
	var alpha float64
	var midP, pValues, memoized, excludeOnly bool
	var concurrency int

	flag.StringVar(&countsPath, "counts", "", "Delimited file with a header row and columns HOM1, HET and HOM2 (SNP, A1 and A2 are optional). May be compressed, and may be a gs:// path.")
	flag.Float64Var(&alpha, "hwe", 1e-6, "Markers whose HWE exact P-value is below this threshold are flagged for exclusion.")
	flag.BoolVar(&midP, "midp", false, "Use the mid-p variant of the exact test. Requires -hwe below 0.5.")
	flag.BoolVar(&pValues, "pvalues", false, "Compute and print the full P-value for every marker. Otherwise only the (faster) threshold test runs.")
	flag.BoolVar(&memoized, "memoize", false, "With -pvalues, cache P-values by count triple. Helps when many markers share counts, at the cost of memory that grows with every distinct triple.")
	flag.BoolVar(&excludeOnly, "exclude", false, "Print only the SNP IDs of failing markers, one per line, suitable for plink --exclude.")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of markers to test in parallel.")
	flag.Parse()

	if countsPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -counts")
	}

	if err := hwe.CheckThreshold(alpha, midP); err != nil {
		log.Fatalln(err)
	}

	if concurrency < 1 {
		concurrency = 1
	}

	ctx := context.Background()

	var client *storage.Client
	if snpqc.IsGoogleStoragePath(countsPath) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	rows, err := readCounts(ctx, countsPath, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d markers from %s\n", len(rows), countsPath)

	results, err := filterRows(rows, options{Alpha: alpha, MidP: midP, PValues: pValues, Memoize: memoized}, concurrency)
	if err != nil {
		log.Fatalln(err)
	}

	excluded := 0
	for _, result := range results {
		if result.Exclude {
			excluded++
		}
	}
	log.Printf("%d of %d markers have HWE P < %g (midp: %v)\n", excluded, len(results), alpha, midP)

	if excludeOnly {
		for _, result := range results {
			if result.Exclude {
				fmt.Println(result.SNP)
			}
		}
		return
	}

	if err := snpqc.WriteResults(os.Stdout, results); err != nil {
		log.Fatalln(err)
	}
}

func readCounts(ctx context.Context, path string, client *storage.Client) ([]snpqc.CountRow, error) {
	rc, err := snpqc.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return snpqc.ReadCountTable(rc)
}
