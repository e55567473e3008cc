// Command lcdb-test-data builds a small genomics test data set: it
// downloads a reference genome, annotation, transcriptome, and raw reads
// for a fixed set of RNA-seq and ChIP-seq samples, aligns them, and subsets
// everything down to one small genomic region and a bounded read count.
//
// The build subcommand assembles and runs the workflow. The remaining
// subcommands are the inline scripting steps of that workflow (the workflow
// invokes this binary for them); they are exposed for reuse and debugging.
package main

import (
	"log"
	"os"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/alecthomas/kingpin.v2"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
	"github.com/njohnso6/lcdb-test-data/fetch"
	"github.com/njohnso6/lcdb-test-data/pipeline"
)

var (
	INFO = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	WARN = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
)

func main() {
	app := kingpin.New("lcdb-test-data",
		"Build a small genomics test data set (FASTA, GTF, FASTQ, BAM) for pipeline testing.")
	app.Version("v0.2")

	buildCmd := app.Command("build", "Build the data set in the given directory.")
	buildDir := buildCmd.Arg("data-dir", "directory in which to build the data set").Required().String()
	buildConfig := buildCmd.Flag("config", "config file name (without extension) looked up in the data directory").Default("config").String()
	buildProcs := buildCmd.Flag("procs", "run only processes matching this regex, plus their upstream dependencies").Default("").String()
	buildPlot := buildCmd.Flag("plot", "write the workflow graph to this dot file and exit").Default("").String()
	buildDry := buildCmd.Flag("dry-run", "list process names and exit").Bool()
	buildMaxTasks := buildCmd.Flag("maxtasks", "max concurrent tasks").Default("4").Int()

	fetchCmd := app.Command("fetch", "Download a URL to a file.")
	fetchURL := fetchCmd.Arg("url", "source URL").Required().String()
	fetchOut := fetchCmd.Arg("out", "output file").Required().String()

	extractCmd := app.Command("extract-region", "Extract a genomic region from a FASTA file.")
	extractRegion := extractCmd.Flag("region", "region as chrom:start-end").Required().String()
	extractIn := extractCmd.Arg("in", "input FASTA (.gz ok)").Required().String()
	extractOut := extractCmd.Arg("out", "output FASTA").Required().String()

	sgtfCmd := app.Command("subset-gtf", "Keep GTF features fully inside a region, rebased to the region start.")
	sgtfRegion := sgtfCmd.Flag("region", "region as chrom:start-end").Required().String()
	sgtfIn := sgtfCmd.Arg("in", "input GTF (.gz ok)").Required().String()
	sgtfOut := sgtfCmd.Arg("out", "output GTF").Required().String()

	idsCmd := app.Command("transcript-ids", "Collect the unique transcript_id values from a GTF file.")
	idsIn := idsCmd.Arg("gtf", "input GTF (.gz ok)").Required().String()
	idsOut := idsCmd.Arg("out", "output file, one ID per line").Required().String()

	ffaCmd := app.Command("filter-fasta", "Keep FASTA records whose ID appears in the ID file.")
	ffaIDs := ffaCmd.Flag("ids", "file with one sequence ID per line").Required().String()
	ffaIn := ffaCmd.Arg("in", "input FASTA (.gz ok)").Required().String()
	ffaOut := ffaCmd.Arg("out", "output FASTA").Required().String()

	ffqCmd := app.Command("filter-fastq", "Keep FASTQ records whose read name appears in the names file.")
	ffqNames := ffqCmd.Flag("names", "file with one read name per line").Required().String()
	ffqLimit := ffqCmd.Flag("limit", "stop after this many kept reads; 0 means no cap").Default("0").Int()
	ffqIn := ffqCmd.Arg("in", "input FASTQ (.gz ok)").Required().String()
	ffqOut := ffqCmd.Arg("out", "output FASTQ (.gz ok)").Required().String()

	selCmd := app.Command("select-names", "Select read names from a BAM file by mapping status.")
	selRegion := selCmd.Flag("region", "region as chrom:start-end").Required().String()
	selMapQ := selCmd.Flag("min-mapq", "min mapping quality").Default("20").Int()
	selUnmapped := selCmd.Flag("unmapped", "max unmapped read names to include").Default("0").Int()
	selBam := selCmd.Arg("bam", "input BAM").Required().String()
	selOut := selCmd.Arg("out", "output file, one read name per line").Required().String()

	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case buildCmd.FullCommand():
		runBuild(*buildDir, *buildConfig, *buildProcs, *buildPlot, *buildDry, *buildMaxTasks)
	case fetchCmd.FullCommand():
		if err := fetch.Download(*fetchURL, *fetchOut); err != nil {
			log.Fatalln(err)
		}
	case extractCmd.FullCommand():
		runExtractRegion(*extractRegion, *extractIn, *extractOut)
	case sgtfCmd.FullCommand():
		runSubsetGTF(*sgtfRegion, *sgtfIn, *sgtfOut)
	case idsCmd.FullCommand():
		runTranscriptIDs(*idsIn, *idsOut)
	case ffaCmd.FullCommand():
		runFilterFasta(*ffaIDs, *ffaIn, *ffaOut)
	case ffqCmd.FullCommand():
		runFilterFastq(*ffqNames, *ffqLimit, *ffqIn, *ffqOut)
	case selCmd.FullCommand():
		runSelectNames(*selRegion, *selMapQ, *selUnmapped, *selBam, *selOut)
	}
}

// runBuild chdirs into the data directory (everything the workflow touches
// is relative to it) and runs the task graph.
func runBuild(dataDir, configName, procsRegex, plotFile string, dryRun bool, maxTasks int) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalln(err)
	}
	if err := os.Chdir(dataDir); err != nil {
		log.Fatalln(err)
	}

	cfg := parseConfig(configName)
	cfg.MaxTasks = maxTasks

	wf := pipeline.Build(cfg)

	switch {
	case plotFile != "":
		wf.PlotGraph(plotFile)
		INFO.Printf("Wrote workflow graph to %s\n", plotFile)
	case dryRun:
		names := []string{}
		for name := range wf.Procs() {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			INFO.Println(name)
		}
	case procsRegex != "":
		INFO.Printf("Building %s up to processes matching %q\n", dataDir, procsRegex)
		wf.RunToRegex(procsRegex)
	default:
		INFO.Printf("Building data set in %s\n", dataDir)
		wf.Run()
	}
}

// parseConfig reads the optional config file from the data directory and
// overlays it on the defaults. Every key is optional.
func parseConfig(configName string) pipeline.Config {
	cfg := pipeline.DefaultConfig()
	if exe, err := os.Executable(); err == nil {
		cfg.Tool = exe
	} else {
		WARN.Printf("Cannot resolve own executable, relying on PATH: %v\n", err)
	}

	viper.SetConfigName(configName)
	viper.AddConfigPath(".")
	viper.SetDefault("region", cfg.Region.String())
	viper.SetDefault("reads.max", cfg.MaxReads)
	viper.SetDefault("reads.min_mapq", cfg.MinMapQ)
	viper.SetDefault("reads.unmapped", cfg.MaxUnmapped)
	viper.SetDefault("threads.align", cfg.AlignThreads)
	viper.SetDefault("urls.genome", cfg.GenomeURL)
	viper.SetDefault("urls.gtf", cfg.GTFURL)
	viper.SetDefault("urls.cdna", cfg.CdnaURL)
	if err := viper.ReadInConfig(); err == nil {
		INFO.Printf("Using config %s\n", viper.ConfigFileUsed())
	}

	region, err := lcdbdata.ParseRegion(viper.GetString("region"))
	if err != nil {
		log.Fatalln(err)
	}
	cfg.Region = region
	cfg.MaxReads = viper.GetInt("reads.max")
	cfg.MinMapQ = viper.GetInt("reads.min_mapq")
	cfg.MaxUnmapped = viper.GetInt("reads.unmapped")
	cfg.AlignThreads = viper.GetInt("threads.align")
	cfg.GenomeURL = viper.GetString("urls.genome")
	cfg.GTFURL = viper.GetString("urls.gtf")
	cfg.CdnaURL = viper.GetString("urls.cdna")
	return cfg
}
