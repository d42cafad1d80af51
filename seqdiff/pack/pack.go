// Package pack writes a report and all of its renderings into a tar archive.
package pack

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"znkr.io/ext/seqdiff/report"
)

// File is a single file in the archive.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Files renders r in every supported format. runs are the entries of the Atom feed, r is used if
// runs is empty.
func Files(r *report.Report, runs []*report.Report, base string) ([]File, error) {
	if len(runs) == 0 {
		runs = []*report.Report{r}
	}

	html, err := r.HTML()
	if err != nil {
		return nil, err
	}
	md, err := r.Markdown()
	if err != nil {
		return nil, err
	}
	var js bytes.Buffer
	if err := r.Write(&js, report.JSON, report.Options{}); err != nil {
		return nil, err
	}
	feed, err := report.Feed(runs, base)
	if err != nil {
		return nil, err
	}
	feed, err = report.Minify("application/atom+xml", feed)
	if err != nil {
		return nil, err
	}

	return []File{
		{"index.html", "text/html", html},
		{"report.md", "text/markdown", []byte(md)},
		{"report.json", "application/json", js.Bytes()},
		{"feed.atom", "application/atom+xml", feed},
	}, nil
}

// Pack writes the renderings of r to filename.
func Pack(filename string, r *report.Report) (int64, error) {
	files, err := Files(r, nil, ".")
	if err != nil {
		return 0, err
	}

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("opening file: %v", err)
	}
	defer file.Close()

	if err := Write(file, files, r.Generated); err != nil {
		return 0, err
	}
	n, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	return n, file.Close()
}

// Write writes files as a tar archive to w.
func Write(w io.Writer, files []File, modTime time.Time) error {
	tw := tar.NewWriter(w)

	hdr := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     "./",
		Mode:     int64(0755),
		ModTime:  modTime,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}

	for _, f := range files {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     "./" + f.Name,
			Mode:     int64(0644),
			Size:     int64(len(f.Data)),
			ModTime:  modTime,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing header: %v", err)
		}
		if _, err := tw.Write(f.Data); err != nil {
			return fmt.Errorf("writing body: %v", err)
		}
	}
	return tw.Close()
}
