// Package selection holds the scanned catalog together with the user's
// chosen folder per image.
package selection

import "github.com/AnyUserName/slidechooser/internal/catalog"

// Model pairs a catalog with the selection map. The zero value is an empty
// model with no catalog.
type Model struct {
	catalog *catalog.Catalog
	picks   map[string]string // image -> folder
}

// New returns a model over c with no selections.
func New(c *catalog.Catalog) *Model {
	return &Model{catalog: c, picks: make(map[string]string)}
}

// Catalog returns the current catalog, or nil before the first scan.
func (m *Model) Catalog() *catalog.Catalog { return m.catalog }

// Replace swaps in a freshly scanned catalog and forgets every selection.
func (m *Model) Replace(c *catalog.Catalog) {
	m.catalog = c
	m.picks = make(map[string]string)
}

// Get returns the folder selected for image.
func (m *Model) Get(image string) (string, bool) {
	folder, ok := m.picks[image]
	return folder, ok
}

// Set records folder as the pick for image, overwriting any earlier pick.
func (m *Model) Set(image, folder string) {
	if m.picks == nil {
		m.picks = make(map[string]string)
	}
	m.picks[image] = folder
}

// ResolvePath returns the file for image in folder. ok is false when the
// image is not available in that version.
func (m *Model) ResolvePath(image, folder string) (string, bool) {
	if m.catalog == nil {
		return "", false
	}
	return m.catalog.Resolve(image, folder)
}

// Selections returns a copy of the selection map.
func (m *Model) Selections() map[string]string {
	out := make(map[string]string, len(m.picks))
	for k, v := range m.picks {
		out[k] = v
	}
	return out
}

// Len is the number of images with a pick.
func (m *Model) Len() int { return len(m.picks) }
