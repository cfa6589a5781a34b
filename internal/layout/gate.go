package layout

// Gate suppresses re-fitting for small window changes. The zero value applies
// the first size it sees.
type Gate struct {
	threshold int
	lastW     int
	lastH     int
	primed    bool
}

// NewGate returns a gate that applies a size only when width or height moved
// by more than threshold since the last applied size.
func NewGate(threshold int) *Gate {
	return &Gate{threshold: threshold}
}

// Check reports whether w x h should be applied and, if so, records it.
func (g *Gate) Check(w, h int) bool {
	if g.primed && abs(w-g.lastW) <= g.threshold && abs(h-g.lastH) <= g.threshold {
		return false
	}
	g.lastW, g.lastH, g.primed = w, h, true
	return true
}

// Reset forces the next Check to apply. Used after a page size change.
func (g *Gate) Reset() {
	g.primed = false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
