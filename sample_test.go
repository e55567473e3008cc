package lcdbdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastqURLs(t *testing.T) {
	paired := Sample{Name: "sample1", Assay: RNASeq, Run: "SRR948304", Paired: true}
	urls := paired.FastqURLs()
	require.Len(t, urls, 2)
	assert.Equal(t, "https://ftp.sra.ebi.ac.uk/vol1/fastq/SRR948/SRR948304/SRR948304_1.fastq.gz", urls[0])
	assert.Equal(t, "https://ftp.sra.ebi.ac.uk/vol1/fastq/SRR948/SRR948304/SRR948304_2.fastq.gz", urls[1])

	single := Sample{Name: "input1", Assay: ChIPSeq, Run: "SRR504954"}
	urls = single.FastqURLs()
	require.Len(t, urls, 1)
	assert.Equal(t, "https://ftp.sra.ebi.ac.uk/vol1/fastq/SRR504/SRR504954/SRR504954.fastq.gz", urls[0])
}

func TestSampleSets(t *testing.T) {
	rnaseq := RNASeqSamples()
	require.Len(t, rnaseq, 4)
	for _, s := range rnaseq {
		assert.Equal(t, RNASeq, s.Assay)
		assert.True(t, s.Paired)
	}

	chipseq := ChIPSeqSamples()
	require.Len(t, chipseq, 4)
	for _, s := range chipseq {
		assert.Equal(t, ChIPSeq, s.Assay)
		assert.False(t, s.Paired)
	}

	// Names must be unique across the whole set.
	seen := make(map[string]bool)
	for _, s := range AllSamples() {
		assert.False(t, seen[s.Name], "duplicate sample name %s", s.Name)
		seen[s.Name] = true
	}
}
