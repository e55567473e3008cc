// Package reads selects read names from alignments. The tiny FASTQ
// fixtures are defined by name lists produced here: names of reads that
// aligned into the subset region, plus a bounded number of unmapped read
// names so downstream tests see both mapping statuses.
package reads

import (
	"io"
	"log"
	"os"
	"sort"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
)

// ReadBamFile opens a BAM file and returns its header and a channel of
// records. The channel is closed after the last record; a read error
// mid-stream panics, as a truncated BAM is not recoverable here.
func ReadBamFile(fileName string) (*sam.Header, chan *sam.Record, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, nil, err
	}
	// If rd is zero concurrency is set to GOMAXPROCS.
	reader, err := bam.NewReader(f, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	c := make(chan *sam.Record, 64)
	go func() {
		defer close(c)
		defer f.Close()
		defer reader.Close()
		for {
			r, err := reader.Read()
			if err != nil {
				if err != io.EOF {
					log.Panic(err)
				}
				break
			}
			c <- r
		}
	}()

	return reader.Header(), c, nil
}

// SelectOptions controls which read names are selected.
type SelectOptions struct {
	MinMapQ     int // mapped records below this MAPQ are ignored.
	MaxUnmapped int // at most this many unmapped read names are included.
}

// SelectNames returns the sorted unique names of primary records that
// overlap region with sufficient mapping quality, plus up to
// opts.MaxUnmapped names of unmapped records. Secondary and supplementary
// records are skipped so a name is counted by its primary alignment only.
func SelectNames(fileName string, region lcdbdata.Region, opts SelectOptions) ([]string, error) {
	_, records, err := ReadBamFile(fileName)
	if err != nil {
		return nil, err
	}

	mapped := make(map[string]bool)
	unmapped := make(map[string]bool)
	for r := range records {
		if r.Flags&sam.Secondary != 0 || r.Flags&sam.Supplementary != 0 {
			continue
		}
		if r.Flags&sam.Unmapped != 0 {
			if len(unmapped) < opts.MaxUnmapped {
				unmapped[r.Name] = true
			}
			continue
		}
		if int(r.MapQ) < opts.MinMapQ {
			continue
		}
		if r.Ref == nil || r.Ref.Name() != region.Chrom {
			continue
		}
		if !region.Overlaps(r.Pos, r.End()) {
			continue
		}
		mapped[r.Name] = true
	}

	for name := range unmapped {
		mapped[name] = true
	}
	names := make([]string, 0, len(mapped))
	for name := range mapped {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ReadNames loads a name-per-line file into a set.
func ReadNames(fileName string) (map[string]bool, error) {
	lines, err := lcdbdata.ReadLines(fileName)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(lines))
	for _, line := range lines {
		names[line] = true
	}
	return names, nil
}
