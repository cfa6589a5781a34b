// Package session is the state of one browsing session: the catalog with its
// selections, the navigation window and the visible slots.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/export"
	"github.com/AnyUserName/slidechooser/internal/navigation"
	"github.com/AnyUserName/slidechooser/internal/selection"
	"github.com/AnyUserName/slidechooser/internal/slot"
)

var (
	// ErrNoCatalog is returned by operations that need a scanned root.
	ErrNoCatalog = errors.New("no folder loaded")
	// ErrNoSlot is returned when a slot index is not on screen.
	ErrNoSlot = errors.New("no such slot")
)

// Session is not safe for concurrent use. One goroutine owns it.
type Session struct {
	model  *selection.Model
	nav    *navigation.State
	slots  []*slot.Slot
	active int
}

// New returns an empty session showing pageSize slides per page.
func New(pageSize int) (*Session, error) {
	nav, err := navigation.New(0, pageSize)
	if err != nil {
		return nil, err
	}
	return &Session{model: selection.New(nil), nav: nav}, nil
}

// Rescan scans root and applies the result. On failure the current catalog and
// selections are left untouched.
func (s *Session) Rescan(ctx context.Context, root string, progress catalog.ProgressFunc) (*catalog.Catalog, error) {
	c, err := catalog.Scan(ctx, root, progress)
	if err != nil {
		return nil, err
	}
	s.ApplyScan(c)
	return c, nil
}

// ApplyScan replaces the catalog, clears every selection and returns to the
// first page.
func (s *Session) ApplyScan(c *catalog.Catalog) {
	s.model.Replace(c)
	s.nav.Reset(c.Len())
	s.active = 0
	s.rebuild()
}

// Catalog is the current catalog, or nil before the first scan.
func (s *Session) Catalog() *catalog.Catalog { return s.model.Catalog() }

// Model exposes the selection model.
func (s *Session) Model() *selection.Model { return s.model }

// Nav exposes the navigation state.
func (s *Session) Nav() *navigation.State { return s.nav }

// Advance moves the page by delta. It reports whether the page moved.
func (s *Session) Advance(delta int) bool {
	if !s.nav.Advance(delta) {
		return false
	}
	s.rebuild()
	return true
}

// SetPageSize changes how many slides are shown and rebuilds the slots.
func (s *Session) SetPageSize(n int) error {
	if err := s.nav.SetPageSize(n); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

// CyclePageSize moves to the next page size, wrapping 3 back to 1.
func (s *Session) CyclePageSize() int {
	next := s.nav.PageSize()%navigation.MaxPageSize + 1
	if err := s.SetPageSize(next); err != nil {
		return s.nav.PageSize()
	}
	return next
}

// Slots returns the visible slots, left to right.
func (s *Session) Slots() []*slot.Slot { return s.slots }

// Active is the index of the slot the version keys act on.
func (s *Session) Active() int { return s.active }

// Focus makes slot i the active slot.
func (s *Session) Focus(i int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("%w: %d", ErrNoSlot, i+1)
	}
	s.active = i
	return nil
}

// FocusNext moves focus one slot right, wrapping.
func (s *Session) FocusNext() {
	if len(s.slots) > 0 {
		s.active = (s.active + 1) % len(s.slots)
	}
}

// Step moves slot i to the previous (-1) or next (+1) version and records the
// choice.
func (s *Session) Step(i, dir int) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("%w: %d", ErrNoSlot, i+1)
	}
	s.slots[i].Step(dir)
	return nil
}

// Label is the "Sequence: i / n" position text.
func (s *Session) Label() string {
	if s.Catalog() == nil {
		return "No folder loaded"
	}
	n := s.nav.Positions()
	if n == 0 {
		return "Sequence: 0 / 0"
	}
	return fmt.Sprintf("Sequence: %d / %d", s.nav.Position()+1, n)
}

// Export writes the current selections with x.
func (s *Session) Export(ctx context.Context, x *export.Exporter, outPath string) (*export.Report, error) {
	if s.Catalog() == nil {
		return nil, ErrNoCatalog
	}
	return x.Export(ctx, s.model.Selections(), s.Catalog(), outPath)
}

func (s *Session) rebuild() {
	s.slots = nil
	c := s.Catalog()
	if c == nil {
		return
	}
	names := c.Names()
	folders := c.Folders()
	start, end := s.nav.Visible()
	for _, name := range names[start:end] {
		s.slots = append(s.slots, slot.Bind(name, s.model, folders))
	}
	if s.active >= len(s.slots) {
		s.active = max(0, len(s.slots)-1)
	}
}
