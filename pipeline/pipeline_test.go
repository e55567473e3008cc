package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, lcdbdata.Region{Chrom: "2L", Start: 1, End: 500000}, cfg.Region)
	assert.Equal(t, 25000, cfg.MaxReads)
	assert.Equal(t, 20, cfg.MinMapQ)
	assert.Equal(t, 100, cfg.MaxUnmapped)
	assert.Contains(t, cfg.GenomeURL, "BDGP6.28")
	assert.Contains(t, cfg.GTFURL, ".gtf.gz")
	assert.Contains(t, cfg.CdnaURL, "cdna")
}

func TestBuildProcs(t *testing.T) {
	wf := Build(DefaultConfig())
	procs := wf.Procs()

	// Reference side of the graph.
	for _, name := range []string{
		"download_genome", "download_gtf", "download_cdna",
		"gunzip_genome", "hisat2_index", "bowtie2_index",
		"subset_genome", "faidx_genome", "subset_gtf",
		"transcript_ids", "subset_transcriptome",
		"hisat2_index_tiny", "bowtie2_index_tiny",
	} {
		assert.Contains(t, procs, name)
	}

	// Each paired RNA-seq sample gets eight procs.
	for _, s := range lcdbdata.RNASeqSamples() {
		for _, name := range []string{
			"download_" + s.Name + "_R1",
			"download_" + s.Name + "_R2",
			"align_" + s.Name,
			"select_names_" + s.Name,
			"filter_fastq_" + s.Name + "_R1",
			"filter_fastq_" + s.Name + "_R2",
			"align_tiny_" + s.Name,
			"index_tiny_" + s.Name,
		} {
			assert.Contains(t, procs, name)
		}
	}

	// Each single-end ChIP-seq sample gets six.
	for _, s := range lcdbdata.ChIPSeqSamples() {
		for _, name := range []string{
			"download_" + s.Name,
			"align_" + s.Name,
			"select_names_" + s.Name,
			"filter_fastq_" + s.Name,
			"align_tiny_" + s.Name,
			"index_tiny_" + s.Name,
		} {
			assert.Contains(t, procs, name)
		}
	}

	rna := len(lcdbdata.RNASeqSamples())
	chip := len(lcdbdata.ChIPSeqSamples())
	assert.Len(t, procs, 13+8*rna+6*chip)
}

func TestIndexPlaceholders(t *testing.T) {
	require.Len(t, hisatExts, 8)
	require.Len(t, bowtieExts, 6)

	assert.Equal(t, "{o:idx1} {o:idx2}", idxOuts(2))
	assert.Equal(t, "{i:idx1} {i:idx2} {i:idx3}", idxRefs(3))

	for i, ext := range hisatExts {
		assert.Equal(t, fmt.Sprintf(".%d.ht2", i+1), ext)
	}
}
