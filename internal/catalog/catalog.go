// Package catalog indexes a root directory of version folders into a map of
// image name to the folders that contain it.
package catalog

import "sort"

// Catalog is the result of one scan. It is immutable once returned by Scan.
type Catalog struct {
	// Root is the scanned directory.
	Root string

	folders []string
	names   []string
	entries map[string]map[string]string // image -> folder -> path
}

func newCatalog(root string, folders []string) *Catalog {
	return &Catalog{
		Root:    root,
		folders: folders,
		entries: make(map[string]map[string]string),
	}
}

func (c *Catalog) add(image, folder, path string) {
	versions, ok := c.entries[image]
	if !ok {
		versions = make(map[string]string)
		c.entries[image] = versions
	}
	versions[folder] = path
}

// seal builds the sorted image sequence. Called once at the end of a scan.
func (c *Catalog) seal() {
	c.names = make([]string, 0, len(c.entries))
	for name := range c.entries {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
}

// Names returns the image names in ascending order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Folders returns the version folders in listing order.
func (c *Catalog) Folders() []string {
	return append([]string(nil), c.folders...)
}

// ImageCount is the number of distinct image names.
func (c *Catalog) ImageCount() int { return len(c.names) }

// Len is the length of the image sequence. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// FolderCount is the number of version folders.
func (c *Catalog) FolderCount() int { return len(c.folders) }

// FolderIndex returns the position of folder in Folders, or -1.
func (c *Catalog) FolderIndex(folder string) int {
	for i, f := range c.folders {
		if f == folder {
			return i
		}
	}
	return -1
}

// Resolve returns the path of image inside folder. ok is false when that
// version folder has no file with this name.
func (c *Catalog) Resolve(image, folder string) (string, bool) {
	path, ok := c.entries[image][folder]
	return path, ok
}

// Versions lists the folders that contain image, in folder order.
func (c *Catalog) Versions(image string) []string {
	versions := c.entries[image]
	var out []string
	for _, f := range c.folders {
		if _, ok := versions[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
