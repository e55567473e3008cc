package lcdbdata

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile opens a file for reading, transparently decompressing it when
// the name ends in .gz.
func OpenFile(fileName string) (io.ReadCloser, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(fileName, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzReadCloser{gz: gz, f: f}, nil
}

type gzReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (r *gzReadCloser) Read(p []byte) (int, error) { return r.gz.Read(p) }

func (r *gzReadCloser) Close() error {
	if err := r.gz.Close(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}

// CreateFile creates a file for writing, creating parent directories and
// compressing the stream when the name ends in .gz.
func CreateFile(fileName string) (io.WriteCloser, error) {
	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(fileName)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(fileName, ".gz") {
		return f, nil
	}
	return &gzWriteCloser{gz: gzip.NewWriter(f), f: f}, nil
}

type gzWriteCloser struct {
	gz *gzip.Writer
	f  *os.File
}

func (w *gzWriteCloser) Write(p []byte) (int, error) { return w.gz.Write(p) }

func (w *gzWriteCloser) Close() error {
	if err := w.gz.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// ReadLines reads a text file into a slice of lines, skipping empty ones.
func ReadLines(fileName string) ([]string, error) {
	f, err := OpenFile(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// WriteLines writes one string per line.
func WriteLines(fileName string, lines []string) error {
	w, err := CreateFile(fileName)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
