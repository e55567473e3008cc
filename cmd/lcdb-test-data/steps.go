package main

import (
	"io"
	"log"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
	"github.com/njohnso6/lcdb-test-data/fasta"
	"github.com/njohnso6/lcdb-test-data/fastq"
	"github.com/njohnso6/lcdb-test-data/gtf"
	"github.com/njohnso6/lcdb-test-data/reads"
)

// The inline scripting steps of the workflow. Each one is a thin shell
// around a library function: parse arguments, open streams, run, report.

func runExtractRegion(regionStr, inPath, outPath string) {
	region := mustRegion(regionStr)
	in := mustOpen(inPath)
	defer in.Close()
	out := mustCreate(outPath)
	if err := fasta.ExtractRegion(in, out, region); err != nil {
		log.Fatalln(err)
	}
	closeOrDie(out)
	INFO.Printf("Wrote %s for region %s\n", outPath, region)
}

func runSubsetGTF(regionStr, inPath, outPath string) {
	region := mustRegion(regionStr)
	in := mustOpen(inPath)
	defer in.Close()
	out := mustCreate(outPath)
	n, err := gtf.SubsetRegion(in, out, region, true)
	if err != nil {
		log.Fatalln(err)
	}
	closeOrDie(out)
	INFO.Printf("Kept %d features in %s\n", n, outPath)
}

func runTranscriptIDs(inPath, outPath string) {
	in := mustOpen(inPath)
	defer in.Close()
	ids, err := gtf.TranscriptIDs(in)
	if err != nil {
		log.Fatalln(err)
	}
	if err := lcdbdata.WriteLines(outPath, ids); err != nil {
		log.Fatalln(err)
	}
	INFO.Printf("Collected %d transcript IDs into %s\n", len(ids), outPath)
}

func runFilterFasta(idsPath, inPath, outPath string) {
	lines, err := lcdbdata.ReadLines(idsPath)
	if err != nil {
		log.Fatalln(err)
	}
	ids := make(map[string]bool, len(lines))
	for _, line := range lines {
		ids[line] = true
	}
	in := mustOpen(inPath)
	defer in.Close()
	out := mustCreate(outPath)
	n, err := fasta.FilterByID(in, out, ids)
	if err != nil {
		log.Fatalln(err)
	}
	closeOrDie(out)
	INFO.Printf("Kept %d of %d sequences in %s\n", n, len(ids), outPath)
}

func runFilterFastq(namesPath string, limit int, inPath, outPath string) {
	names, err := reads.ReadNames(namesPath)
	if err != nil {
		log.Fatalln(err)
	}
	in := mustOpen(inPath)
	defer in.Close()
	out := mustCreate(outPath)
	n, err := fastq.Filter(in, out, names, limit)
	if err != nil {
		log.Fatalln(err)
	}
	closeOrDie(out)
	INFO.Printf("Kept %d reads in %s\n", n, outPath)
}

func runSelectNames(regionStr string, minMapQ, maxUnmapped int, bamPath, outPath string) {
	region := mustRegion(regionStr)
	names, err := reads.SelectNames(bamPath, region, reads.SelectOptions{
		MinMapQ:     minMapQ,
		MaxUnmapped: maxUnmapped,
	})
	if err != nil {
		log.Fatalln(err)
	}
	if err := lcdbdata.WriteLines(outPath, names); err != nil {
		log.Fatalln(err)
	}
	INFO.Printf("Selected %d read names from %s\n", len(names), bamPath)
}

func mustRegion(s string) lcdbdata.Region {
	region, err := lcdbdata.ParseRegion(s)
	if err != nil {
		log.Fatalln(err)
	}
	return region
}

func mustOpen(path string) io.ReadCloser {
	f, err := lcdbdata.OpenFile(path)
	if err != nil {
		log.Fatalln(err)
	}
	return f
}

func mustCreate(path string) io.WriteCloser {
	f, err := lcdbdata.CreateFile(path)
	if err != nil {
		log.Fatalln(err)
	}
	return f
}

func closeOrDie(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Fatalln(err)
	}
}
