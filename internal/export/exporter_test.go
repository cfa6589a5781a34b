package export

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/hasher"
	"github.com/AnyUserName/slidechooser/internal/selection"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for p, body := range files {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func model(t *testing.T, root string) *selection.Model {
	t.Helper()
	c, err := catalog.Scan(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return selection.New(c)
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		out[f.Name] = string(b)
	}
	return out
}

func TestExportSelectedVersions(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A/x.png": "ax", "A/y.png": "ay",
		"B/x.png": "bx",
	})
	m := model(t, root)
	m.Set("x.png", "B")
	m.Set("y.png", "A")
	out := filepath.Join(t.TempDir(), "selected.zip")

	rep, err := New(nil).Export(context.Background(), m.Selections(), m.Catalog(), out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rep.Written != 2 {
		t.Errorf("written: got %d, want 2", rep.Written)
	}
	got := readZip(t, out)
	if got["x.png"] != "bx" {
		t.Errorf("x.png: got %q, want content from B", got["x.png"])
	}
	if got["y.png"] != "ay" {
		t.Errorf("y.png: got %q, want content from A", got["y.png"])
	}
	if len(got) != 2 {
		t.Errorf("entries: got %d, want 2", len(got))
	}
	if rep.Entries[0].Name != "x.png" || rep.Entries[1].Name != "y.png" {
		t.Errorf("entries not in name order: %+v", rep.Entries)
	}
	if rep.Entries[0].Hash != hasher.ContentHash([]byte("bx"), 16) {
		t.Errorf("hash: got %s", rep.Entries[0].Hash)
	}
	if rep.Bytes() != 4 {
		t.Errorf("bytes: got %d, want 4", rep.Bytes())
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("archive mode: got %o, want 644", perm)
	}
}

func TestExportEmptySelectionWritesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{"A/x.png": "ax"})
	m := model(t, root)
	out := filepath.Join(t.TempDir(), "selected.zip")

	rep, err := New(nil).Export(context.Background(), m.Selections(), m.Catalog(), out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rep.Written != 0 {
		t.Errorf("written: got %d, want 0", rep.Written)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("archive should not exist, stat err = %v", err)
	}
}

func TestExportSkipsMissing(t *testing.T) {
	root := writeTree(t, map[string]string{
		"A/x.png": "ax", "A/y.png": "ay", "A/z.png": "az",
		"B/x.png": "bx",
	})
	m := model(t, root)
	m.Set("x.png", "A")
	m.Set("y.png", "B") // not in catalog
	m.Set("z.png", "A")
	if err := os.Remove(filepath.Join(root, "A", "z.png")); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "selected.zip")

	rep, err := New(nil).Export(context.Background(), m.Selections(), m.Catalog(), out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rep.Written != 1 {
		t.Errorf("written: got %d, want 1", rep.Written)
	}
	reasons := map[string]string{}
	for _, s := range rep.Skipped {
		reasons[s.Image] = s.Reason
	}
	if reasons["y.png"] != ReasonNotInCatalog || reasons["z.png"] != ReasonMissing {
		t.Errorf("skipped: got %+v", rep.Skipped)
	}
	got := readZip(t, out)
	names := make([]string, 0, len(got))
	for n := range got {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) != 1 || names[0] != "x.png" {
		t.Errorf("archive entries: got %v, want [x.png]", names)
	}
}

func TestExportBadTargetDir(t *testing.T) {
	root := writeTree(t, map[string]string{"A/x.png": "ax"})
	m := model(t, root)
	m.Set("x.png", "A")
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "out.zip")

	_, err := New(nil).Export(context.Background(), m.Selections(), m.Catalog(), out)
	var ee *ExportError
	if !errors.As(err, &ee) {
		t.Fatalf("err: got %v, want *ExportError", err)
	}
	if ee.Path != out {
		t.Errorf("path: got %q, want %q", ee.Path, out)
	}
}

func TestExportCancelledLeavesNoFile(t *testing.T) {
	root := writeTree(t, map[string]string{"A/x.png": "ax"})
	m := model(t, root)
	m.Set("x.png", "A")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.zip")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(nil).Export(ctx, m.Selections(), m.Catalog(), out); !errors.Is(err, context.Canceled) {
		t.Fatalf("err: got %v, want context.Canceled", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("leftover files after failed export: %v", entries)
	}
}
