package lcdbdata

import "fmt"

// Assay types.
const (
	RNASeq  = "rnaseq"
	ChIPSeq = "chipseq"
)

// A Sample is one sequencing run to be turned into a fixture.
type Sample struct {
	Name   string // fixture name, e.g. "sample1" or "input1".
	Assay  string // RNASeq or ChIPSeq.
	Run    string // ENA/SRA run accession.
	Paired bool
}

// Base URL of the ENA fastq mirror.
const enaBase = "https://ftp.sra.ebi.ac.uk/vol1/fastq"

// FastqURLs returns the download URLs for a sample's raw reads,
// one URL for single-end runs and two for paired-end runs.
// The ENA layout groups runs by the first six characters of the
// accession; all accessions used here are nine characters long,
// so no extra grouping level is needed.
func (s Sample) FastqURLs() []string {
	dir := fmt.Sprintf("%s/%s/%s", enaBase, s.Run[:6], s.Run)
	if s.Paired {
		return []string{
			fmt.Sprintf("%s/%s_1.fastq.gz", dir, s.Run),
			fmt.Sprintf("%s/%s_2.fastq.gz", dir, s.Run),
		}
	}
	return []string{fmt.Sprintf("%s/%s.fastq.gz", dir, s.Run)}
}

// RNASeqSamples returns the fixed set of paired-end RNA-seq runs
// (modENCODE pasilla knockdown series) used for the RNA-seq fixtures.
func RNASeqSamples() []Sample {
	return []Sample{
		{Name: "sample1", Assay: RNASeq, Run: "SRR948304", Paired: true},
		{Name: "sample2", Assay: RNASeq, Run: "SRR948305", Paired: true},
		{Name: "sample3", Assay: RNASeq, Run: "SRR948306", Paired: true},
		{Name: "sample4", Assay: RNASeq, Run: "SRR948307", Paired: true},
	}
}

// ChIPSeqSamples returns the fixed set of single-end ChIP-seq runs
// (two input replicates and two IP replicates) used for the ChIP-seq
// fixtures.
func ChIPSeqSamples() []Sample {
	return []Sample{
		{Name: "input1", Assay: ChIPSeq, Run: "SRR504954"},
		{Name: "input2", Assay: ChIPSeq, Run: "SRR504955"},
		{Name: "ip1", Assay: ChIPSeq, Run: "SRR504958"},
		{Name: "ip2", Assay: ChIPSeq, Run: "SRR504959"},
	}
}

// AllSamples returns the RNA-seq samples followed by the ChIP-seq samples.
func AllSamples() []Sample {
	return append(RNASeqSamples(), ChIPSeqSamples()...)
}
