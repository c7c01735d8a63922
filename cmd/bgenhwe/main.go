package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bgen"
	"github.com/carbocation/snpqc"
	_ "github.com/carbocation/snpqc/compileinfoprint"
	"github.com/carbocation/snpqc/hwe"
	_ "github.com/mattn/go-sqlite3"
)

// Compute HWE exact P-values for all SNPs in a BGEN, or for a list of SNPs
func main() {
	bgenPath, snpfile, bgiPath, sampleFile, sampleIDFile := "", "", "", "", ""
	var alpha float64
	var midP bool
	flag.StringVar(&bgenPath, "bgen", "", "Path to the BGEN file (if iterating over the full BGEN) or a template with %s in place of its chromosome number.")
	flag.StringVar(&bgiPath, "bgi", "", "Path to the BGEN index. If blank, will assume it's the BGEN path suffixed with .bgi")
	flag.StringVar(&snpfile, "snps", "", "Tab-delimited SNP file containing rsid and chromosome (in that order). If blank, and a proper BGEN is passed, then the full BGEN will be parsed.")
	flag.StringVar(&sampleFile, "sample", "", "File that maps samples to the blank rows in the BGEN. Must be in the Oxford .sample file format. May be a gs:// path.")
	flag.StringVar(&sampleIDFile, "sample_ids", "", "File that has one sample ID per row. (A subset of the IDs in the sample file.) Must have a header row (or will skip your first entry). May be a gs:// path.")
	flag.Float64Var(&alpha, "hwe", 0, "If set, adds an EXCLUDE column flagging variants whose HWE exact P-value is below this threshold.")
	flag.BoolVar(&midP, "midp", false, "Report the mid-p variant of the HWE exact P-value.")
	flag.Parse()

	if bgiPath == "" {
		bgiPath = bgenPath + ".bgi"
	}

	if bgenPath == "" {
		flag.PrintDefaults()
		log.Fatalln()
	}

	if alpha != 0 {
		if err := hwe.CheckThreshold(alpha, midP); err != nil {
			log.Fatalln(err)
		}
	}

	ctx := context.Background()

	var client *storage.Client
	if snpqc.IsGoogleStoragePath(sampleFile) || snpqc.IsGoogleStoragePath(sampleIDFile) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	subset := sampler{}
	if sampleFile != "" && sampleIDFile != "" {
		var err error
		subset, err = SampleLookup(ctx, client, sampleFile, sampleIDFile)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Counting %d of %d samples\n", subset.Count(), len(subset.keep))
	}

	out := printer{w: os.Stdout, alpha: alpha, midP: midP}
	out.header()

	if snpfile != "" {
		if !strings.Contains(bgenPath, "%s") {
			log.Printf("Iterating over a list of SNPs, but passed a full bgen path instead of a BGEN template path with %%s in place of the chromosome identifier\n")
			flag.PrintDefaults()
			log.Fatalln()
		}

		sites, err := readSites(ctx, client, snpfile)
		if err != nil {
			log.Fatalln(err)
		}

		for _, site := range sites {
			variant, err := readOneVariant(fmt.Sprintf(bgenPath, site.Chromosome), site.RSID)
			if err != nil {
				log.Fatalln(err)
			}

			out.variant(variant, subset)
		}

		return
	}

	// Else just iterating over a full bgen

	bg, err := bgen.Open(bgenPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer bg.Close()

	bgi, err := bgen.OpenBGI(bgiPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer bgi.Close()
	bgi.Metadata.FirstThousandBytes = nil
	log.Printf("%+v\n", *bgi.Metadata)

	rdr := bg.NewVariantReader()

	n := 0
	for {
		variant := rdr.Read()
		if err := rdr.Error(); err != nil {
			log.Fatalln(err)
		} else if variant == nil {
			break
		}

		out.variant(variant, subset)
		n++
	}

	log.Printf("Tested %d variants, %d flagged\n", n, out.flagged)
}
