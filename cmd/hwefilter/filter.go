package main

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/carbocation/snpqc"
	"github.com/carbocation/snpqc/hwe"
)

type options struct {
	Alpha float64
	MidP  bool

	// PValues requests the full P-value. Without it, only the threshold
	// test runs.
	PValues bool

	// Memoize caches full P-values by count triple. The cache is never
	// evicted.
	Memoize bool
}

// testRow maps HOM1, HET, HOM2 onto AA, Aa, aa and tests the marker.
func testRow(row snpqc.CountRow, opts options) snpqc.Result {
	result := snpqc.NewResult(row)

	if opts.PValues {
		var p float64
		if opts.Memoize {
			p = hwe.Memoized(row.HOM1, row.HET, row.HOM2, opts.MidP)
		} else {
			p = hwe.ExactP(row.HOM1, row.HET, row.HOM2, opts.MidP)
		}
		result.P = strconv.FormatFloat(p, 'g', 6, 64)
		result.Exclude = p < opts.Alpha
		return result
	}

	if opts.MidP {
		result.Exclude = hwe.RejectMidP(row.HOM1, row.HET, row.HOM2, opts.Alpha)
	} else {
		result.Exclude = hwe.Reject(row.HOM1, row.HET, row.HOM2, opts.Alpha)
	}

	return result
}

// filterRows tests every row, concurrency rows at a time. Results come back in
// the order of rows. Rows with invalid counts are an error.
func filterRows(rows []snpqc.CountRow, opts options, concurrency int) ([]snpqc.Result, error) {
	for i, row := range rows {
		if err := hwe.CheckCounts(row.HOM1, row.HET, row.HOM2); err != nil {
			return nil, pfx.Err(fmt.Errorf("Row %d (%s): %v", i+1, row.SNP, err))
		}
	}

	results := make([]snpqc.Result, len(rows))

	// Manage concurrency. Each goroutine tests a contiguous chunk so that the
	// per-marker work, which is tiny, is not swamped by scheduling.
	chunkSize := (len(rows) + concurrency - 1) / concurrency
	if chunkSize < 1024 {
		chunkSize = 1024
	}

	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}

		semaphore <- struct{}{}
		wg.Add(1)
		go func(start, end int) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			for i := start; i < end; i++ {
				results[i] = testRow(rows[i], opts)
			}
		}(start, end)
	}
	wg.Wait()

	return results, nil
}
