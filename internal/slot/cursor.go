// Package slot implements the per-slot version cursor: which folder a visible
// slide is showing and how stepping through versions commits the choice.
package slot

import "github.com/AnyUserName/slidechooser/internal/selection"

// Slot is one visible position of the current page. It is transient and
// rebuilt whenever the page moves or changes size.
type Slot struct {
	image   string
	folders []string
	cursor  int
	model   *selection.Model
}

// Bind points s at image. The cursor starts at the selected folder when the
// model has one and at 0 otherwise. Binding never writes the selection.
func Bind(image string, model *selection.Model, folders []string) *Slot {
	s := &Slot{image: image, folders: folders, model: model}
	if folder, ok := model.Get(image); ok {
		for i, f := range folders {
			if f == folder {
				s.cursor = i
				break
			}
		}
	}
	return s
}

// Step moves the cursor by dir (-1 or +1), wrapping at both ends, and records
// the new folder as the selection for this image.
func (s *Slot) Step(dir int) {
	n := len(s.folders)
	if n == 0 {
		return
	}
	s.cursor = ((s.cursor+dir)%n + n) % n
	s.model.Set(s.image, s.folders[s.cursor])
}

// Image is the image name the slot shows.
func (s *Slot) Image() string { return s.image }

// Cursor indexes the slot's folder list.
func (s *Slot) Cursor() int { return s.cursor }

// Folder is the folder under the cursor, or "" when there are no folders.
func (s *Slot) Folder() string {
	if len(s.folders) == 0 {
		return ""
	}
	return s.folders[s.cursor]
}

// Path resolves the file shown by this slot. ok is false when the image is
// not available in the current folder.
func (s *Slot) Path() (string, bool) {
	folder := s.Folder()
	if folder == "" {
		return "", false
	}
	return s.model.ResolvePath(s.image, folder)
}
