package snpqc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Columns that a count table must carry. SNP, A1 and A2 are optional.
var requiredCountColumns = []string{"HOM1", "HET", "HOM2"}

// CountRow is one marker's genotype counts. HOM1 and HOM2 are the homozygote
// counts for A1 and A2; which of the two is rarer does not matter.
type CountRow struct {
	SNP  string `csv:"SNP"`
	A1   string `csv:"A1"`
	A2   string `csv:"A2"`
	HOM1 int64  `csv:"HOM1"`
	HET  int64  `csv:"HET"`
	HOM2 int64  `csv:"HOM2"`
}

// Result is a CountRow after HWE testing. P is blank when only the threshold
// test was run.
type Result struct {
	SNP     string `csv:"SNP"`
	A1      string `csv:"A1"`
	A2      string `csv:"A2"`
	HOM1    int64  `csv:"HOM1"`
	HET     int64  `csv:"HET"`
	HOM2    int64  `csv:"HOM2"`
	P       string `csv:"P"`
	Exclude bool   `csv:"EXCLUDE"`
}

// NewResult copies the counts of row into a Result.
func NewResult(row CountRow) Result {
	return Result{
		SNP:  row.SNP,
		A1:   row.A1,
		A2:   row.A2,
		HOM1: row.HOM1,
		HET:  row.HET,
		HOM2: row.HOM2,
	}
}

// ReadCountTable parses a delimited table of genotype counts with a header row.
// The delimiter is detected from the content.
func ReadCountTable(r io.Reader) ([]CountRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := DetermineDelimiter(bytes.NewReader(data))

	header, err := newCSVReader(data, delim).Read()
	if err == io.EOF {
		return nil, pfx.Err(fmt.Errorf("Count table is empty"))
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	if err := checkHeader(header); err != nil {
		return nil, pfx.Err(fmt.Errorf("Header parsing error (delimiter %q): %v", delim, err))
	}

	rows := []CountRow{}
	if err := gocsv.UnmarshalCSV(newCSVReader(data, delim), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}

func newCSVReader(data []byte, delim rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, col := range header {
		seen[strings.TrimSpace(col)] = struct{}{}
	}

	missing := []string{}
	for _, col := range requiredCountColumns {
		if _, ok := seen[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing column(s) %s in header %v", strings.Join(missing, ", "), header)
	}

	return nil
}

// WriteResults writes results as a tab-delimited table with a header row.
func WriteResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(&results, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
