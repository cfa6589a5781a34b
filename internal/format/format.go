// Package format holds the image extension allow-list and registers the
// decoders needed to read every allowed format.
package format

import (
	"path/filepath"
	"sort"
	"strings"

	// Decoders are registered with image.Decode by blank import.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// allowed holds the lower-case extensions, dot included.
var allowed = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".bmp":  {},
}

// Allowed reports whether name carries one of the recognized image
// extensions. The match is case-insensitive.
func Allowed(name string) bool {
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Extensions returns the allowed extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(allowed))
	for ext := range allowed {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// String returns a summary of the allow-list, e.g. "formats: .bmp, .gif, ...".
func String() string {
	return "formats: " + strings.Join(Extensions(), ", ")
}
