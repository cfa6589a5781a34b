package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/export"
)

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// FromCatalog builds a scan report.
func FromCatalog(c *catalog.Catalog) *Scan {
	s := &Scan{
		Version:     Version,
		GeneratedAt: now(),
		Root:        c.Root,
		Folders:     c.Folders(),
		Images:      make([]Image, 0, c.ImageCount()),
	}
	for _, name := range c.Names() {
		versions := c.Versions(name)
		s.Images = append(s.Images, Image{Name: name, Versions: versions})
		s.Stats.Files += len(versions)
		if len(versions) < c.FolderCount() {
			s.Stats.Sparse++
		}
	}
	s.Stats.Folders = c.FolderCount()
	s.Stats.Images = c.ImageCount()
	return s
}

// FromExport builds an export report.
func FromExport(r *export.Report) *Export {
	e := &Export{
		Version:     Version,
		GeneratedAt: now(),
		Path:        r.Path,
		Written:     r.Written,
		Bytes:       r.Bytes(),
		Entries:     make([]Entry, 0, len(r.Entries)),
	}
	for _, en := range r.Entries {
		e.Entries = append(e.Entries, Entry{Name: en.Name, Folder: en.Folder, Size: en.Size, Hash: en.Hash})
	}
	for _, sk := range r.Skipped {
		e.Skipped = append(e.Skipped, Skip{Image: sk.Image, Folder: sk.Folder, Reason: sk.Reason})
	}
	return e
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
