package lcdbdata

import (
	"fmt"
	"strconv"
	"strings"
)

// A Region is a genomic interval with 1-based inclusive coordinates,
// the convention used by GTF and by samtools region strings.
// End == 0 means "to the end of the chromosome".
type Region struct {
	Chrom string
	Start int
	End   int
}

// ParseRegion parses "chrom:start-end" or a bare chromosome name.
func ParseRegion(s string) (Region, error) {
	if s == "" {
		return Region{}, fmt.Errorf("region: empty string")
	}
	chrom, span, found := strings.Cut(s, ":")
	if chrom == "" {
		return Region{}, fmt.Errorf("region %q: missing chromosome", s)
	}
	if !found {
		return Region{Chrom: chrom, Start: 1}, nil
	}
	first, second, found := strings.Cut(span, "-")
	if !found {
		return Region{}, fmt.Errorf("region %q: expected chrom:start-end", s)
	}
	start, err := strconv.Atoi(strings.ReplaceAll(first, ",", ""))
	if err != nil {
		return Region{}, fmt.Errorf("region %q: bad start: %v", s, err)
	}
	end, err := strconv.Atoi(strings.ReplaceAll(second, ",", ""))
	if err != nil {
		return Region{}, fmt.Errorf("region %q: bad end: %v", s, err)
	}
	if start < 1 {
		return Region{}, fmt.Errorf("region %q: start must be >= 1", s)
	}
	if end < start {
		return Region{}, fmt.Errorf("region %q: end before start", s)
	}
	return Region{Chrom: chrom, Start: start, End: end}, nil
}

// String formats the region in chrom:start-end form.
func (r Region) String() string {
	if r.End == 0 {
		if r.Start <= 1 {
			return r.Chrom
		}
		return fmt.Sprintf("%s:%d-", r.Chrom, r.Start)
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// ContainsFeature reports whether a feature with 1-based inclusive
// coordinates lies entirely within the region. The chromosome is not
// checked here; callers compare names themselves.
func (r Region) ContainsFeature(start, end int) bool {
	if start < r.Start {
		return false
	}
	return r.End == 0 || end <= r.End
}

// Overlaps reports whether a 0-based half-open interval, as used by BAM
// records, overlaps the region.
func (r Region) Overlaps(start, end int) bool {
	if end <= r.Start-1 {
		return false
	}
	return r.End == 0 || start < r.End
}
