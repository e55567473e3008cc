// Package pipeline declares the fixture build as a scipipe workflow: a
// file-based task graph whose nodes shell out to hisat2, bowtie2, samtools,
// and back into the lcdb-test-data binary for the inline subsetting steps.
// Dependency resolution, parallel scheduling, skip-if-up-to-date semantics,
// and atomic output placement all come from scipipe.
package pipeline

import (
	"fmt"
	"strings"

	sp "github.com/scipipe/scipipe"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
)

// Config carries everything the task graph is parameterized on. All paths
// produced by the graph are relative to the data directory, which the
// caller must have made the working directory.
type Config struct {
	Region       lcdbdata.Region
	MaxReads     int // cap on reads kept per tiny FASTQ.
	MinMapQ      int // MAPQ floor for read-name selection.
	MaxUnmapped  int // unmapped read names kept per sample.
	AlignThreads int // threads passed to the aligners.
	MaxTasks     int // concurrent workflow tasks.
	GenomeURL    string
	GTFURL       string
	CdnaURL      string
	Tool         string // path to the lcdb-test-data binary itself.
}

// Reference files for the dm6 assembly (Ensembl BDGP6.28).
const (
	defaultGenomeURL = "https://ftp.ensembl.org/pub/release-99/fasta/drosophila_melanogaster/dna/Drosophila_melanogaster.BDGP6.28.dna_sm.toplevel.fa.gz"
	defaultGTFURL    = "https://ftp.ensembl.org/pub/release-99/gtf/drosophila_melanogaster/Drosophila_melanogaster.BDGP6.28.99.gtf.gz"
	defaultCdnaURL   = "https://ftp.ensembl.org/pub/release-99/fasta/drosophila_melanogaster/cdna/Drosophila_melanogaster.BDGP6.28.cdna.all.fa.gz"
)

func DefaultConfig() Config {
	return Config{
		Region:       lcdbdata.Region{Chrom: "2L", Start: 1, End: 500000},
		MaxReads:     25000,
		MinMapQ:      20,
		MaxUnmapped:  100,
		AlignThreads: 4,
		MaxTasks:     4,
		GenomeURL:    defaultGenomeURL,
		GTFURL:       defaultGTFURL,
		CdnaURL:      defaultCdnaURL,
		Tool:         "lcdb-test-data",
	}
}

// Index file suffixes written by the two index builders.
var (
	hisatExts  = []string{".1.ht2", ".2.ht2", ".3.ht2", ".4.ht2", ".5.ht2", ".6.ht2", ".7.ht2", ".8.ht2"}
	bowtieExts = []string{".1.bt2", ".2.bt2", ".3.bt2", ".4.bt2", ".rev.1.bt2", ".rev.2.bt2"}
)

// Build assembles the complete fixture workflow.
func Build(cfg Config) *sp.Workflow {
	wf := sp.NewWorkflow("lcdb-test-data", cfg.MaxTasks)
	lay := lcdbdata.Layout{Region: cfg.Region}

	// ------------------------------------------------------------------
	// Reference downloads
	// ------------------------------------------------------------------
	dlGenome := wf.NewProc("download_genome", fmt.Sprintf("%s fetch %s {o:fa}", cfg.Tool, cfg.GenomeURL))
	dlGenome.SetOut("fa", lay.GenomeGz())

	dlGTF := wf.NewProc("download_gtf", fmt.Sprintf("%s fetch %s {o:gtf}", cfg.Tool, cfg.GTFURL))
	dlGTF.SetOut("gtf", lay.GTFGz())

	dlCdna := wf.NewProc("download_cdna", fmt.Sprintf("%s fetch %s {o:fa}", cfg.Tool, cfg.CdnaURL))
	dlCdna.SetOut("fa", lay.CdnaGz())

	// The index builders want an uncompressed genome.
	gunzipGenome := wf.NewProc("gunzip_genome", "gzip -cd {i:gz} > {o:fa}")
	gunzipGenome.SetOut("fa", lay.Genome())
	gunzipGenome.In("gz").From(dlGenome.Out("fa"))

	// ------------------------------------------------------------------
	// Full-genome aligner indexes
	// ------------------------------------------------------------------
	hisatIdx := indexProc(wf, "hisat2_index",
		fmt.Sprintf("hisat2-build -p %d", cfg.AlignThreads), hisatExts, gunzipGenome)
	bowtieIdx := indexProc(wf, "bowtie2_index",
		fmt.Sprintf("bowtie2-build --threads %d", cfg.AlignThreads), bowtieExts, gunzipGenome)

	// ------------------------------------------------------------------
	// Reference fixtures: subset FASTA, GTF, transcriptome
	// ------------------------------------------------------------------
	subsetFasta := wf.NewProc("subset_genome",
		fmt.Sprintf("%s extract-region --region '%s' {i:infa} {o:fa}", cfg.Tool, cfg.Region))
	subsetFasta.SetOut("fa", lay.TinyFasta())
	subsetFasta.In("infa").From(dlGenome.Out("fa"))

	faidx := wf.NewProc("faidx_genome", "samtools faidx {i:fa} # {o:fai}")
	faidx.SetOut("fai", "{i:fa}.fai")
	faidx.In("fa").From(subsetFasta.Out("fa"))

	subsetGTF := wf.NewProc("subset_gtf",
		fmt.Sprintf("%s subset-gtf --region '%s' {i:ingtf} {o:gtf}", cfg.Tool, cfg.Region))
	subsetGTF.SetOut("gtf", lay.TinyGTF())
	subsetGTF.In("ingtf").From(dlGTF.Out("gtf"))

	transcriptIDs := wf.NewProc("transcript_ids",
		fmt.Sprintf("%s transcript-ids {i:gtf} {o:ids}", cfg.Tool))
	transcriptIDs.SetOut("ids", lay.TranscriptIDs())
	transcriptIDs.In("gtf").From(subsetGTF.Out("gtf"))

	subsetCdna := wf.NewProc("subset_transcriptome",
		fmt.Sprintf("%s filter-fasta --ids {i:ids} {i:infa} {o:fa}", cfg.Tool))
	subsetCdna.SetOut("fa", lay.TinyTranscriptome())
	subsetCdna.In("ids").From(transcriptIDs.Out("ids"))
	subsetCdna.In("infa").From(dlCdna.Out("fa"))

	// ------------------------------------------------------------------
	// Tiny-genome aligner indexes, for re-aligning the tiny reads
	// ------------------------------------------------------------------
	hisatTinyIdx := indexProc(wf, "hisat2_index_tiny",
		fmt.Sprintf("hisat2-build -p %d", cfg.AlignThreads), hisatExts, subsetFasta)
	bowtieTinyIdx := indexProc(wf, "bowtie2_index_tiny",
		fmt.Sprintf("bowtie2-build --threads %d", cfg.AlignThreads), bowtieExts, subsetFasta)

	// ------------------------------------------------------------------
	// Samples
	// ------------------------------------------------------------------
	for _, s := range lcdbdata.RNASeqSamples() {
		addPairedSample(wf, cfg, lay, s, gunzipGenome, hisatIdx, subsetFasta, hisatTinyIdx)
	}
	for _, s := range lcdbdata.ChIPSeqSamples() {
		addSingleSample(wf, cfg, lay, s, gunzipGenome, bowtieIdx, subsetFasta, bowtieTinyIdx)
	}

	return wf
}

// addPairedSample wires one paired-end RNA-seq sample: download both mates,
// align to the full genome with hisat2 (keeping unmapped records so the
// unmapped quota has candidates), select read names, filter both mates, and
// re-align the tiny pair against the tiny genome.
func addPairedSample(wf *sp.Workflow, cfg Config, lay lcdbdata.Layout, s lcdbdata.Sample,
	genome, idx, tinyFasta, tinyIdx *sp.Process) {

	urls := s.FastqURLs()
	dl1 := wf.NewProc("download_"+s.Name+"_R1", fmt.Sprintf("%s fetch %s {o:fq}", cfg.Tool, urls[0]))
	dl1.SetOut("fq", lay.RawFastq(s, 1))
	dl2 := wf.NewProc("download_"+s.Name+"_R2", fmt.Sprintf("%s fetch %s {o:fq}", cfg.Tool, urls[1]))
	dl2.SetOut("fq", lay.RawFastq(s, 2))

	align := wf.NewProc("align_"+s.Name,
		fmt.Sprintf("hisat2 -p %d -x {i:fa} -1 {i:r1} -2 {i:r2} | samtools sort -O bam -o {o:bam} - # %s",
			cfg.AlignThreads, idxRefs(len(hisatExts))))
	align.SetOut("bam", lay.FullBam(s))
	align.In("fa").From(genome.Out("fa"))
	align.In("r1").From(dl1.Out("fq"))
	align.In("r2").From(dl2.Out("fq"))
	connectIndex(align, idx, len(hisatExts))

	names := selectNamesProc(wf, cfg, lay, s, align)

	f1 := filterFastqProc(wf, cfg, s.Name+"_R1", lay.TinyFastq(s, 1), dl1, names)
	f2 := filterFastqProc(wf, cfg, s.Name+"_R2", lay.TinyFastq(s, 2), dl2, names)

	alignTiny := wf.NewProc("align_tiny_"+s.Name,
		fmt.Sprintf("hisat2 -p %d -x {i:fa} -1 {i:r1} -2 {i:r2} | samtools sort -O bam -o {o:bam} - # %s",
			cfg.AlignThreads, idxRefs(len(hisatExts))))
	alignTiny.SetOut("bam", lay.TinyBam(s))
	alignTiny.In("fa").From(tinyFasta.Out("fa"))
	alignTiny.In("r1").From(f1.Out("fq"))
	alignTiny.In("r2").From(f2.Out("fq"))
	connectIndex(alignTiny, tinyIdx, len(hisatExts))

	indexBamProc(wf, s, alignTiny)
}

// addSingleSample wires one single-end ChIP-seq sample through bowtie2.
func addSingleSample(wf *sp.Workflow, cfg Config, lay lcdbdata.Layout, s lcdbdata.Sample,
	genome, idx, tinyFasta, tinyIdx *sp.Process) {

	dl := wf.NewProc("download_"+s.Name, fmt.Sprintf("%s fetch %s {o:fq}", cfg.Tool, s.FastqURLs()[0]))
	dl.SetOut("fq", lay.RawFastq(s, 1))

	align := wf.NewProc("align_"+s.Name,
		fmt.Sprintf("bowtie2 -p %d -x {i:fa} -U {i:fq} | samtools sort -O bam -o {o:bam} - # %s",
			cfg.AlignThreads, idxRefs(len(bowtieExts))))
	align.SetOut("bam", lay.FullBam(s))
	align.In("fa").From(genome.Out("fa"))
	align.In("fq").From(dl.Out("fq"))
	connectIndex(align, idx, len(bowtieExts))

	names := selectNamesProc(wf, cfg, lay, s, align)

	filtered := filterFastqProc(wf, cfg, s.Name, lay.TinyFastq(s, 1), dl, names)

	alignTiny := wf.NewProc("align_tiny_"+s.Name,
		fmt.Sprintf("bowtie2 -p %d -x {i:fa} -U {i:fq} | samtools sort -O bam -o {o:bam} - # %s",
			cfg.AlignThreads, idxRefs(len(bowtieExts))))
	alignTiny.SetOut("bam", lay.TinyBam(s))
	alignTiny.In("fa").From(tinyFasta.Out("fa"))
	alignTiny.In("fq").From(filtered.Out("fq"))
	connectIndex(alignTiny, tinyIdx, len(bowtieExts))

	indexBamProc(wf, s, alignTiny)
}

// selectNamesProc picks the read names that define a sample's tiny fixture
// from its full alignment.
func selectNamesProc(wf *sp.Workflow, cfg Config, lay lcdbdata.Layout, s lcdbdata.Sample, align *sp.Process) *sp.Process {
	p := wf.NewProc("select_names_"+s.Name,
		fmt.Sprintf("%s select-names --region '%s' --min-mapq %d --unmapped %d {i:bam} {o:names}",
			cfg.Tool, cfg.Region, cfg.MinMapQ, cfg.MaxUnmapped))
	p.SetOut("names", lay.Names(s))
	p.In("bam").From(align.Out("bam"))
	return p
}

func filterFastqProc(wf *sp.Workflow, cfg Config, tag, outPath string, dl, names *sp.Process) *sp.Process {
	p := wf.NewProc("filter_fastq_"+tag,
		fmt.Sprintf("%s filter-fastq --names {i:names} --limit %d {i:infq} {o:fq}", cfg.Tool, cfg.MaxReads))
	p.SetOut("fq", outPath)
	p.In("names").From(names.Out("names"))
	p.In("infq").From(dl.Out("fq"))
	return p
}

func indexBamProc(wf *sp.Workflow, s lcdbdata.Sample, alignTiny *sp.Process) *sp.Process {
	p := wf.NewProc("index_tiny_"+s.Name, "samtools index {i:bam} # {o:bai}")
	p.SetOut("bai", "{i:bam}.bai")
	p.In("bam").From(alignTiny.Out("bam"))
	return p
}

// indexProc wraps hisat2-build or bowtie2-build. Both write their index
// files next to the FASTA they are given, so the index base is the FASTA
// path itself and every index file is a declared output; the aligner procs
// then take the FASTA plus the whole index set as inputs.
func indexProc(wf *sp.Workflow, name, builder string, exts []string, fasta *sp.Process) *sp.Process {
	p := wf.NewProc(name, fmt.Sprintf("%s {i:fa} {i:fa} # %s", builder, idxOuts(len(exts))))
	p.In("fa").From(fasta.Out("fa"))
	for i, ext := range exts {
		p.SetOut(fmt.Sprintf("idx%d", i+1), "{i:fa}"+ext)
	}
	return p
}

// connectIndex joins every index out-port of idx to the matching in-port of
// an aligner proc. The ports appear in the aligner command only as trailing
// comment placeholders; they exist to make scipipe stage the index files
// alongside the FASTA.
func connectIndex(p, idx *sp.Process, n int) {
	for i := 1; i <= n; i++ {
		port := fmt.Sprintf("idx%d", i)
		p.In(port).From(idx.Out(port))
	}
}

func idxOuts(n int) string {
	refs := make([]string, n)
	for i := range refs {
		refs[i] = fmt.Sprintf("{o:idx%d}", i+1)
	}
	return strings.Join(refs, " ")
}

func idxRefs(n int) string {
	refs := make([]string, n)
	for i := range refs {
		refs[i] = fmt.Sprintf("{i:idx%d}", i+1)
	}
	return strings.Join(refs, " ")
}
