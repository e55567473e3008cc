package lcdbdata

import (
	"fmt"
	"path/filepath"
)

// Layout maps pipeline inputs and fixture outputs to paths relative to the
// data directory. The build command chdirs into the data directory before
// running, so everything below is relative.
//
//	refs/        downloads, full-genome indexes
//	work/        full alignments and read-name lists (intermediate)
//	seq/         subset genome and transcriptome FASTA
//	annotation/  subset GTF and transcript ID list
//	rnaseq_samples/<name>/   tiny FASTQ + BAM per RNA-seq sample
//	chipseq_samples/<name>/  tiny FASTQ + BAM per ChIP-seq sample
type Layout struct {
	Region Region
}

func (l Layout) GenomeGz() string { return "refs/dm6.fa.gz" }
func (l Layout) Genome() string   { return "refs/dm6.fa" }
func (l Layout) GTFGz() string    { return "refs/dm6.gtf.gz" }
func (l Layout) CdnaGz() string   { return "refs/dm6.cdna.fa.gz" }

// TinyFasta is the subset genome fixture, named after the chromosome.
func (l Layout) TinyFasta() string {
	return fmt.Sprintf("seq/%s.fa", l.Region.Chrom)
}

func (l Layout) TinyGTF() string { return "annotation/dm6.small.gtf" }

func (l Layout) TranscriptIDs() string {
	return "annotation/dm6.small.transcript_ids.txt"
}

func (l Layout) TinyTranscriptome() string {
	return "seq/dm6.small.transcriptome.fa"
}

// RawFastq is the downloaded reads file for a sample. mate is 1 or 2 for
// paired-end samples and ignored for single-end ones.
func (l Layout) RawFastq(s Sample, mate int) string {
	if s.Paired {
		return filepath.Join("work", s.Assay, fmt.Sprintf("%s_R%d.fastq.gz", s.Name, mate))
	}
	return filepath.Join("work", s.Assay, s.Name+".fastq.gz")
}

// FullBam is the whole-genome alignment of the raw reads.
func (l Layout) FullBam(s Sample) string {
	return filepath.Join("work", s.Assay, s.Name+".full.bam")
}

// Names is the list of read names selected for the tiny fixture.
func (l Layout) Names(s Sample) string {
	return filepath.Join("work", s.Assay, s.Name+".names.txt")
}

// SampleDir is the fixture directory for a sample.
func (l Layout) SampleDir(s Sample) string {
	return filepath.Join(s.Assay+"_samples", s.Name)
}

// TinyFastq is the subset reads fixture for a sample.
func (l Layout) TinyFastq(s Sample, mate int) string {
	if s.Paired {
		return filepath.Join(l.SampleDir(s), fmt.Sprintf("%s.tiny_R%d.fastq.gz", s.Name, mate))
	}
	return filepath.Join(l.SampleDir(s), s.Name+".tiny.fastq.gz")
}

// TinyBam is the sorted alignment of the tiny reads against the tiny genome.
func (l Layout) TinyBam(s Sample) string {
	return filepath.Join(l.SampleDir(s), s.Name+".tiny.sorted.bam")
}
