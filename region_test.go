package lcdbdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("2L:1-500000")
	require.NoError(t, err)
	assert.Equal(t, Region{Chrom: "2L", Start: 1, End: 500000}, r)

	r, err = ParseRegion("chr2L:10,001-20,000")
	require.NoError(t, err)
	assert.Equal(t, Region{Chrom: "chr2L", Start: 10001, End: 20000}, r)

	r, err = ParseRegion("X")
	require.NoError(t, err)
	assert.Equal(t, Region{Chrom: "X", Start: 1}, r)

	for _, bad := range []string{"", ":1-2", "2L:5-2", "2L:0-10", "2L:abc-10", "2L:1"} {
		_, err := ParseRegion(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "2L:1-500000", Region{Chrom: "2L", Start: 1, End: 500000}.String())
	assert.Equal(t, "2L", Region{Chrom: "2L", Start: 1}.String())
}

func TestContainsFeature(t *testing.T) {
	r := Region{Chrom: "2L", Start: 100, End: 200}
	assert.True(t, r.ContainsFeature(100, 200))
	assert.True(t, r.ContainsFeature(150, 160))
	assert.False(t, r.ContainsFeature(99, 150))
	assert.False(t, r.ContainsFeature(150, 201))

	open := Region{Chrom: "2L", Start: 1}
	assert.True(t, open.ContainsFeature(1, 1000000))
}

func TestOverlaps(t *testing.T) {
	r := Region{Chrom: "2L", Start: 101, End: 200}
	// 0-based half-open intervals, as in BAM records.
	assert.True(t, r.Overlaps(100, 150))
	assert.True(t, r.Overlaps(199, 250))
	assert.False(t, r.Overlaps(50, 100))  // ends right before the region
	assert.False(t, r.Overlaps(200, 250)) // starts right after the region
}
