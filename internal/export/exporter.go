// Package export writes the selected version of every picked image into a
// single zip archive.
package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/slidechooser/internal/hasher"
)

// Resolver maps an image and folder to the file on disk. *catalog.Catalog
// implements it.
type Resolver interface {
	Resolve(image, folder string) (string, bool)
}

// ExportError reports a failure creating or writing the archive.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }

// Entry describes one file written to the archive.
type Entry struct {
	Name   string // entry name inside the zip, the bare image name
	Folder string
	Source string
	Size   int64
	Hash   string
}

// Skip reasons.
const (
	ReasonNotInCatalog = "not available in folder"
	ReasonMissing      = "missing on disk"
)

// Skipped is a selection that could not be exported.
type Skipped struct {
	Image  string
	Folder string
	Reason string
}

// Report summarises one export.
type Report struct {
	Path    string
	Written int
	Entries []Entry
	Skipped []Skipped
}

// Bytes is the total uncompressed size of the written entries.
func (r *Report) Bytes() int64 {
	var n int64
	for _, e := range r.Entries {
		n += e.Size
	}
	return n
}

// Exporter writes archives.
type Exporter struct {
	logger *slog.Logger
}

// New returns an Exporter logging to logger. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// Export writes one entry per selection to outPath, in image name order.
// Selections whose file cannot be found are skipped and listed in the report.
// With no selections nothing is written. The archive is assembled in a
// temporary file next to outPath and renamed into place on success.
func (x *Exporter) Export(ctx context.Context, selections map[string]string, res Resolver, outPath string) (*Report, error) {
	rep := &Report{Path: outPath}
	if len(selections) == 0 {
		return rep, nil
	}

	names := make([]string, 0, len(selections))
	for name := range selections {
		names = append(names, name)
	}
	sort.Strings(names)

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".slidechooser-*.zip")
	if err != nil {
		return nil, &ExportError{Path: outPath, Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, &ExportError{Path: outPath, Err: err}
		}
		folder := selections[name]
		src, ok := res.Resolve(name, folder)
		if !ok {
			rep.Skipped = append(rep.Skipped, Skipped{Image: name, Folder: folder, Reason: ReasonNotInCatalog})
			continue
		}
		entry, err := addFile(zw, name, src)
		if errors.Is(err, fs.ErrNotExist) {
			rep.Skipped = append(rep.Skipped, Skipped{Image: name, Folder: folder, Reason: ReasonMissing})
			x.logger.Warn("export skipped missing file", "image", name, "folder", folder, "path", src)
			continue
		}
		if err != nil {
			return nil, &ExportError{Path: outPath, Err: err}
		}
		entry.Folder = folder
		rep.Entries = append(rep.Entries, entry)
	}

	if err := zw.Close(); err != nil {
		return nil, &ExportError{Path: outPath, Err: fmt.Errorf("finish archive: %w", err)}
	}
	// CreateTemp makes the file 0600; the archive is an ordinary output file.
	if err := tmp.Chmod(0o644); err != nil {
		return nil, &ExportError{Path: outPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ExportError{Path: outPath, Err: err}
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		os.Remove(tmp.Name())
		return nil, &ExportError{Path: outPath, Err: err}
	}
	committed = true

	rep.Written = len(rep.Entries)
	x.logger.Info("export complete", "count", rep.Written, "skipped", len(rep.Skipped), "path", outPath)
	return rep, nil
}

// addFile streams src into the archive under name and hashes it on the way.
func addFile(zw *zip.Writer, name, src string) (Entry, error) {
	f, err := os.Open(src)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Entry{}, err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return Entry{}, err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return Entry{}, fmt.Errorf("create entry %s: %w", name, err)
	}
	hr := hasher.NewReader(f)
	if _, err := io.Copy(w, hr); err != nil {
		return Entry{}, fmt.Errorf("write entry %s: %w", name, err)
	}
	return Entry{Name: name, Source: src, Size: hr.Size(), Hash: hr.Hex(16)}, nil
}
