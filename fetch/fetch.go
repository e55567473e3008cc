// Package fetch downloads reference and read files over HTTP.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/cheggaaa/pb.v1"
)

// Download fetches url into dest. The file is written to dest + ".part"
// and renamed into place on success, so a partial download never appears
// at the final path. Progress is reported on stderr.
func Download(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch %s: %s", url, resp.Status)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return err
	}

	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	bar := pb.New64(size).SetUnits(pb.U_BYTES)
	bar.Output = os.Stderr
	bar.Prefix(filepath.Base(dest))
	bar.Start()
	_, err = io.Copy(f, bar.NewProxyReader(resp.Body))
	bar.Finish()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return fmt.Errorf("fetch %s: %v", url, err)
	}
	return os.Rename(part, dest)
}
