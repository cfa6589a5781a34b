// Package layout computes how large each slide is drawn for a given window
// and decides when a window resize is worth re-fitting for.
package layout

// Geometry defines the space reserved around the slides for a target surface.
type Geometry struct {
	Name      string
	Margin    int // horizontal space not available to slides
	Chrome    int // vertical space taken by labels, status and key help
	MinSide   int // slides never shrink below this
	Threshold int // resize gate, in the same units
}

// Built-in presets. Units are pixels for "desktop" and half-block terminal
// pixels (one column by two rows per cell) for "terminal". The terminal view
// subtracts its own borders and text rows before calling Target, so its
// Margin and Chrome are extra space only.
var presets = map[string]Geometry{
	"desktop": {
		Name:      "desktop",
		Margin:    20,
		Chrome:    150,
		MinSide:   50,
		Threshold: 50,
	},
	"terminal": {
		Name:      "terminal",
		Margin:    0,
		Chrome:    0,
		MinSide:   8,
		Threshold: 4,
	},
}

// DefaultPreset is used when a name is unknown.
const DefaultPreset = "terminal"

// Get returns a preset by name. Falls back to the terminal preset if unknown.
func Get(name string) Geometry {
	if g, ok := presets[name]; ok {
		return g
	}
	g := presets[DefaultPreset]
	g.Name = name // preserve requested name
	return g
}

// Known reports whether name is a built-in preset.
func Known(name string) bool {
	_, ok := presets[name]
	return ok
}

// Override returns g with every positive argument replacing its field.
func (g Geometry) Override(margin, chrome, minSide, threshold int) Geometry {
	if margin > 0 {
		g.Margin = margin
	}
	if chrome > 0 {
		g.Chrome = chrome
	}
	if minSide > 0 {
		g.MinSide = minSide
	}
	if threshold > 0 {
		g.Threshold = threshold
	}
	return g
}

// Size is a square bounding box for one slide.
type Size struct {
	W, H int
}

// Target returns the box each of pageSize slides is fitted into for a window
// of the given size.
func (g Geometry) Target(windowW, windowH, pageSize int) Size {
	if pageSize < 1 {
		pageSize = 1
	}
	w := (windowW - g.Margin) / pageSize
	h := windowH - g.Chrome
	side := max(g.MinSide, min(w, h))
	return Size{W: side, H: side}
}
