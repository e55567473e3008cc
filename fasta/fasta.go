// Package fasta provides streaming FASTA reading and writing plus the two
// subsetting operations the fixtures need: extracting a genomic region from
// a chromosome and filtering a transcriptome by ID.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	lcdbdata "github.com/njohnso6/lcdb-test-data"
)

// A Record is one FASTA sequence. ID is the first whitespace-separated
// token of the header; Desc is the remainder, possibly empty.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// Reader streams records from FASTA input. Sequences may span any number
// of lines.
type Reader struct {
	scanner *bufio.Scanner
	header  string
	started bool
}

func NewReader(rd io.Reader) *Reader {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	return &Reader{scanner: scanner}
}

// Read returns the next record, or io.EOF after the last one.
func (r *Reader) Read() (Record, error) {
	for r.header == "" {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return Record{}, err
			}
			return Record{}, io.EOF
		}
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ">") {
			if !r.started {
				return Record{}, fmt.Errorf("fasta: sequence data before first header")
			}
			continue
		}
		r.header = line
	}
	r.started = true

	rec := parseHeader(r.header)
	r.header = ""
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			r.header = line
			return rec, nil
		}
		rec.Seq = append(rec.Seq, line...)
	}
	if err := r.scanner.Err(); err != nil {
		return rec, err
	}
	return rec, nil
}

func parseHeader(line string) Record {
	id, desc, _ := strings.Cut(strings.TrimPrefix(line, ">"), " ")
	return Record{ID: id, Desc: strings.TrimSpace(desc)}
}

// Writer writes records wrapped at a fixed width.
type Writer struct {
	bw    *bufio.Writer
	Width int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w), Width: 60}
}

func (w *Writer) Write(rec Record) error {
	header := ">" + rec.ID
	if rec.Desc != "" {
		header += " " + rec.Desc
	}
	if _, err := fmt.Fprintln(w.bw, header); err != nil {
		return err
	}
	for i := 0; i < len(rec.Seq); i += w.Width {
		end := i + w.Width
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if _, err := w.bw.Write(rec.Seq[i:end]); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error { return w.bw.Flush() }

// ExtractRegion writes the region slice of the matching chromosome as a
// single record named after the chromosome. It is an error if the
// chromosome is absent or shorter than the requested region.
func ExtractRegion(rd io.Reader, w io.Writer, region lcdbdata.Region) error {
	reader := NewReader(rd)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return fmt.Errorf("fasta: chromosome %q not found", region.Chrom)
		}
		if err != nil {
			return err
		}
		if rec.ID != region.Chrom {
			continue
		}
		end := region.End
		if end == 0 {
			end = len(rec.Seq)
		}
		if end > len(rec.Seq) {
			return fmt.Errorf("fasta: region %s extends past end of %s (%d bp)",
				region, rec.ID, len(rec.Seq))
		}
		writer := NewWriter(w)
		if err := writer.Write(Record{ID: region.Chrom, Seq: rec.Seq[region.Start-1 : end]}); err != nil {
			return err
		}
		return writer.Flush()
	}
}

// StripVersion removes a trailing ".N" version suffix from a sequence ID.
func StripVersion(id string) string {
	dot := strings.LastIndex(id, ".")
	if dot <= 0 {
		return id
	}
	for _, c := range id[dot+1:] {
		if c < '0' || c > '9' {
			return id
		}
	}
	if dot == len(id)-1 {
		return id
	}
	return id[:dot]
}

// FilterByID copies the records whose ID, with any version suffix
// stripped, is in ids. Returns the number of records kept.
func FilterByID(rd io.Reader, w io.Writer, ids map[string]bool) (int, error) {
	reader := NewReader(rd)
	writer := NewWriter(w)
	n := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if !ids[rec.ID] && !ids[StripVersion(rec.ID)] {
			continue
		}
		if err := writer.Write(rec); err != nil {
			return n, err
		}
		n++
	}
	return n, writer.Flush()
}
