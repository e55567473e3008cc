// Package gtf handles the subset of GTF needed to cut annotation fixtures:
// parsing the nine tab-separated columns, region filtering, and collecting
// transcript IDs from the attributes column.
package gtf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
)

// A Record is one GTF feature line. Start and End are 1-based inclusive.
type Record struct {
	Seqname    string
	Source     string
	Feature    string
	Start      int
	End        int
	Score      string
	Strand     string
	Frame      string
	Attributes string
}

// Parse parses a single feature line.
func Parse(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return Record{}, fmt.Errorf("gtf: expected 9 columns, got %d", len(fields))
	}
	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("gtf: bad start %q: %v", fields[3], err)
	}
	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return Record{}, fmt.Errorf("gtf: bad end %q: %v", fields[4], err)
	}
	return Record{
		Seqname:    fields[0],
		Source:     fields[1],
		Feature:    fields[2],
		Start:      start,
		End:        end,
		Score:      fields[5],
		Strand:     fields[6],
		Frame:      fields[7],
		Attributes: fields[8],
	}, nil
}

// String formats the record back into a GTF line without the newline.
func (r Record) String() string {
	return strings.Join([]string{
		r.Seqname, r.Source, r.Feature,
		strconv.Itoa(r.Start), strconv.Itoa(r.End),
		r.Score, r.Strand, r.Frame, r.Attributes,
	}, "\t")
}

// Attribute returns the value of a key in the attributes column, or ""
// when the key is absent. GTF attributes look like:
//
//	gene_id "FBgn0031208"; transcript_id "FBtr0300689";
func (r Record) Attribute(key string) string {
	for _, field := range strings.Split(r.Attributes, ";") {
		field = strings.TrimSpace(field)
		k, v, found := strings.Cut(field, " ")
		if !found || k != key {
			continue
		}
		return strings.Trim(v, `"`)
	}
	return ""
}

// SubsetRegion copies to w the comment lines and the features that lie
// entirely within region. When rebase is true, coordinates are shifted so
// the region start becomes position 1, keeping the output consistent with
// a FASTA extracted from the same region. Returns the number of features
// kept.
func SubsetRegion(rd io.Reader, w io.Writer, region lcdbdata.Region, rebase bool) (int, error) {
	offset := 0
	if rebase {
		offset = region.Start - 1
	}
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			fmt.Fprintln(bw, line)
			continue
		}
		rec, err := Parse(line)
		if err != nil {
			return n, err
		}
		if rec.Seqname != region.Chrom || !region.ContainsFeature(rec.Start, rec.End) {
			continue
		}
		rec.Start -= offset
		rec.End -= offset
		fmt.Fprintln(bw, rec.String())
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// TranscriptIDs collects the sorted unique transcript_id values from a GTF
// stream. Lines without a transcript_id (comments, gene features) are
// skipped.
func TranscriptIDs(rd io.Reader) ([]string, error) {
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := Parse(line)
		if err != nil {
			return nil, err
		}
		if id := rec.Attribute("transcript_id"); id != "" {
			seen[id] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
