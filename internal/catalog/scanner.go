package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/slidechooser/internal/format"
)

// ErrNoFolders is wrapped by a ScanError when the root has no subfolders.
var ErrNoFolders = errors.New("no subfolders found")

// ScanError reports a failed scan of Root.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ProgressFunc receives the number of folders processed so far and the
// total number of folders.
type ProgressFunc func(done, total int)

// Scan lists the immediate subdirectories of root and indexes every allowed
// image file directly inside each of them. Nested directories are not
// descended into. Every subdirectory is a folder, dot-named ones included.
//
// Scan never touches an existing Catalog: callers swap in the returned value
// only when err is nil.
func Scan(ctx context.Context, root string, progress ProgressFunc) (*Catalog, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &ScanError{Root: root, Err: err}
	}

	var folders []string
	for _, e := range entries {
		if !followMode(root, e).IsDir() {
			continue
		}
		folders = append(folders, e.Name())
	}
	if len(folders) == 0 {
		return nil, &ScanError{Root: root, Err: ErrNoFolders}
	}

	c := newCatalog(root, folders)
	for i, folder := range folders {
		if err := ctx.Err(); err != nil {
			return nil, &ScanError{Root: root, Err: err}
		}
		if err := scanFolder(c, filepath.Join(root, folder), folder); err != nil {
			return nil, &ScanError{Root: root, Err: err}
		}
		if progress != nil {
			progress(i+1, len(folders))
		}
	}
	c.seal()
	return c, nil
}

func scanFolder(c *Catalog, dir, folder string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read folder %s: %w", folder, err)
	}
	for _, f := range files {
		if !format.Allowed(f.Name()) || !followMode(dir, f).IsRegular() {
			continue
		}
		c.add(f.Name(), folder, filepath.Join(dir, f.Name()))
	}
	return nil
}

// followMode returns the entry's type, resolving symlinks the way a plain
// stat would. A dangling link reports an irregular mode.
func followMode(dir string, e os.DirEntry) os.FileMode {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	if err != nil {
		return os.ModeIrregular
	}
	return info.Mode()
}
