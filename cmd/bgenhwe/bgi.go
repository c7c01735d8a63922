package main

import (
	"context"
	"encoding/csv"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/carbocation/bgen"
	"github.com/carbocation/pfx"
	"github.com/carbocation/snpqc"
)

const (
	// Columns in the SNP file
	SNP = iota
	CHR
)

type site struct {
	RSID       string
	Chromosome string
}

func readSites(ctx context.Context, client *storage.Client, path string) ([]site, error) {
	rc, err := snpqc.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.Comma = '\t'

	allSites, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]site, 0, len(allSites))
	for i, row := range allSites {
		if len(row) <= CHR {
			return nil, pfx.Err(fmt.Errorf("%s line %d: expected rsid and chromosome, got %v", path, i+1, row))
		}
		out = append(out, site{RSID: row[SNP], Chromosome: row[CHR]})
	}

	return out, nil
}

// readOneVariant looks up rsID in the BGEN's index and reads it.
func readOneVariant(bgPath, rsID string) (*bgen.Variant, error) {
	bg, err := bgen.Open(bgPath)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer bg.Close()

	bgi, err := bgen.OpenBGI(bgPath + ".bgi")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer bgi.Close()
	bgi.Metadata.FirstThousandBytes = nil

	idx, err := FindOneVariant(bgi, rsID)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", rsID, err))
	}

	rdr := bg.NewVariantReader()
	variant := rdr.ReadAt(int64(idx.FileStartPosition))
	if err := rdr.Error(); err != nil {
		return nil, pfx.Err(err)
	}

	return variant, nil
}

func FindOneVariant(bgi *bgen.BGIIndex, rsID string) (bgen.VariantIndex, error) {
	row := bgen.VariantIndex{}
	if err := bgi.DB.Get(&row, "SELECT * FROM Variant WHERE rsid=? LIMIT 1", rsID); err != nil {
		return row, err
	}

	return row, nil
}
