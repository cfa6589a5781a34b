// Package navigation tracks the scroll position over the image sequence and
// how many images are shown at once.
package navigation

import (
	"errors"
	"fmt"
)

// Page sizes the view supports.
const (
	MinPageSize = 1
	MaxPageSize = 3
)

// ErrInvalidPageSize is returned by SetPageSize for values outside 1..3.
var ErrInvalidPageSize = errors.New("page size must be 1, 2 or 3")

// State is the navigation window over a sequence of length Len.
type State struct {
	position int
	pageSize int
	length   int
}

// New returns a state at position 0 over a sequence of length n.
func New(n, pageSize int) (*State, error) {
	s := &State{length: n, pageSize: MaxPageSize}
	if err := s.SetPageSize(pageSize); err != nil {
		return nil, err
	}
	return s, nil
}

// Position is the index of the first visible image.
func (s *State) Position() int { return s.position }

// PageSize is the number of slides shown at once.
func (s *State) PageSize() int { return s.pageSize }

// Len is the length of the image sequence.
func (s *State) Len() int { return s.length }

// maxPosition is the last position that still fills a page.
func (s *State) maxPosition() int {
	return max(0, s.length-s.pageSize)
}

// Advance moves the window by delta. Moves that would leave
// [0, max(0, len-pageSize)] are ignored; it reports whether it moved.
func (s *State) Advance(delta int) bool {
	next := s.position + delta
	if delta == 0 || next < 0 || next > s.maxPosition() {
		return false
	}
	s.position = next
	return true
}

// Visible returns the indices [start, end) of the images on screen. The
// window is shorter than the page size at the tail.
func (s *State) Visible() (start, end int) {
	start = min(s.position, s.length)
	end = min(s.position+s.pageSize, s.length)
	return start, end
}

// SetPageSize changes the page size and re-clamps the position.
func (s *State) SetPageSize(n int) error {
	if n < MinPageSize || n > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, n)
	}
	s.pageSize = n
	s.clamp()
	return nil
}

// Reset points the state at a new sequence of length n, back at position 0.
func (s *State) Reset(n int) {
	s.length = n
	s.position = 0
}

// Positions is the number of distinct positions, used for the
// "Sequence: i / n" label.
func (s *State) Positions() int {
	if s.length == 0 {
		return 0
	}
	return s.maxPosition() + 1
}

func (s *State) clamp() {
	s.position = min(max(s.position, 0), s.maxPosition())
}
