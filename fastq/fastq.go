// Package fastq streams 4-line FASTQ records and filters them down to a
// named subset with a record cap, which is how the tiny read fixtures are
// cut from the full downloads.
package fastq

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Record is one read: the header line (with its leading @), the bases,
// and the quality string.
type Record struct {
	Header string
	Seq    string
	Qual   string
}

// Name returns the canonical read name: the first whitespace-separated
// token of the header without the leading @ and without a trailing /1 or
// /2 mate suffix. This matches the names an aligner writes into BAM.
func (r Record) Name() string {
	name, _, _ := strings.Cut(strings.TrimPrefix(r.Header, "@"), " ")
	name = strings.TrimSuffix(name, "/1")
	name = strings.TrimSuffix(name, "/2")
	return name
}

// Reader streams records from FASTQ input.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(rd io.Reader) *Reader {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner}
}

// Read returns the next record, or io.EOF after the last one.
func (r *Reader) Read() (Record, error) {
	lines, err := r.next4()
	if err != nil {
		return Record{}, err
	}
	if !strings.HasPrefix(lines[0], "@") {
		return Record{}, fmt.Errorf("fastq: line %d: header does not start with @", r.line-3)
	}
	if !strings.HasPrefix(lines[2], "+") {
		return Record{}, fmt.Errorf("fastq: line %d: separator does not start with +", r.line-1)
	}
	if len(lines[1]) != len(lines[3]) {
		return Record{}, fmt.Errorf("fastq: line %d: sequence and quality lengths differ", r.line-3)
	}
	return Record{Header: lines[0], Seq: lines[1], Qual: lines[3]}, nil
}

func (r *Reader) next4() ([4]string, error) {
	var lines [4]string
	for i := 0; i < 4; i++ {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return lines, err
			}
			if i == 0 {
				return lines, io.EOF
			}
			return lines, fmt.Errorf("fastq: truncated record at line %d", r.line+i)
		}
		lines[i] = r.scanner.Text()
	}
	r.line += 4
	return lines, nil
}

// Writer writes records.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{bw: bufio.NewWriter(w)} }

func (w *Writer) Write(rec Record) error {
	for _, line := range []string{rec.Header, rec.Seq, "+", rec.Qual} {
		if _, err := w.bw.WriteString(line); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error { return w.bw.Flush() }

// Filter copies the records whose canonical name is in names, preserving
// input order and stopping after limit kept records (limit <= 0 means no
// cap). Mate files filtered with the same name set and limit stay
// synchronized because ENA exports keep R1 and R2 in the same order.
// Returns the number of records kept.
func Filter(rd io.Reader, w io.Writer, names map[string]bool, limit int) (int, error) {
	reader := NewReader(rd)
	writer := NewWriter(w)
	n := 0
	for limit <= 0 || n < limit {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if !names[rec.Name()] {
			continue
		}
		if err := writer.Write(rec); err != nil {
			return n, err
		}
		n++
	}
	return n, writer.Flush()
}
