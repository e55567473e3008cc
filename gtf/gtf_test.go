package gtf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
)

const sampleGTF = `#!genome-build BDGP6.28
2L	FlyBase	gene	7529	9484	.	+	.	gene_id "FBgn0031208"; gene_name "CG11023";
2L	FlyBase	transcript	7529	9484	.	+	.	gene_id "FBgn0031208"; transcript_id "FBtr0300689";
2L	FlyBase	exon	7529	8116	.	+	.	gene_id "FBgn0031208"; transcript_id "FBtr0300689"; exon_number "1";
2L	FlyBase	transcript	7529	9276	.	+	.	gene_id "FBgn0031208"; transcript_id "FBtr0300690";
2L	FlyBase	transcript	9839	21376	.	-	.	gene_id "FBgn0002121"; transcript_id "FBtr0078169";
2R	FlyBase	transcript	100	500	.	+	.	gene_id "FBgn9999999"; transcript_id "FBtr9999999";
`

func TestParseRoundTrip(t *testing.T) {
	line := `2L	FlyBase	gene	7529	9484	.	+	.	gene_id "FBgn0031208";`
	rec, err := Parse(line)
	require.NoError(t, err)
	assert.Equal(t, "2L", rec.Seqname)
	assert.Equal(t, "gene", rec.Feature)
	assert.Equal(t, 7529, rec.Start)
	assert.Equal(t, 9484, rec.End)
	assert.Equal(t, line, rec.String())

	_, err = Parse("2L\tonly\tthree")
	assert.Error(t, err)
}

func TestAttribute(t *testing.T) {
	rec, err := Parse(`2L	FlyBase	exon	1	2	.	+	.	gene_id "FBgn0031208"; transcript_id "FBtr0300689"; exon_number "1";`)
	require.NoError(t, err)
	assert.Equal(t, "FBtr0300689", rec.Attribute("transcript_id"))
	assert.Equal(t, "FBgn0031208", rec.Attribute("gene_id"))
	assert.Equal(t, "", rec.Attribute("gene_name"))
}

func TestSubsetRegion(t *testing.T) {
	region := lcdbdata.Region{Chrom: "2L", Start: 7000, End: 10000}

	var out strings.Builder
	n, err := SubsetRegion(strings.NewReader(sampleGTF), &out, region, false)
	require.NoError(t, err)
	// Everything on 2L within 7000-10000; the 9839-21376 transcript pokes
	// out of the region and the 2R line is on the wrong chromosome.
	assert.Equal(t, 4, n)
	assert.Contains(t, out.String(), "#!genome-build")
	assert.NotContains(t, out.String(), "FBtr0078169")
	assert.NotContains(t, out.String(), "2R")
}

func TestSubsetRegionRebase(t *testing.T) {
	region := lcdbdata.Region{Chrom: "2L", Start: 7000, End: 10000}

	var out strings.Builder
	_, err := SubsetRegion(strings.NewReader(sampleGTF), &out, region, true)
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := Parse(line)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rec.Start, 1)
		assert.LessOrEqual(t, rec.End, 3001) // 10000 - (7000-1)
	}

	// 7529 shifted by 6999.
	assert.Contains(t, out.String(), "\t530\t")
}

func TestTranscriptIDs(t *testing.T) {
	ids, err := TranscriptIDs(strings.NewReader(sampleGTF))
	require.NoError(t, err)
	assert.Equal(t, []string{"FBtr0078169", "FBtr0300689", "FBtr0300690", "FBtr9999999"}, ids)
}
