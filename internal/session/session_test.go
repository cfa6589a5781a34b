package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/export"
	"github.com/AnyUserName/slidechooser/internal/navigation"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range files {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(p), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func loaded(t *testing.T, page int, files ...string) *Session {
	t.Helper()
	s, err := New(page)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Rescan(context.Background(), writeTree(t, files...), nil); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	return s
}

func slotImages(s *Session) []string {
	var out []string
	for _, sl := range s.Slots() {
		out = append(out, sl.Image())
	}
	return out
}

func TestScenarioSparse(t *testing.T) {
	s := loaded(t, 2, "A/x.png", "A/y.png", "B/x.png")

	if got := slotImages(s); len(got) != 2 || got[0] != "x.png" || got[1] != "y.png" {
		t.Fatalf("slots: got %v", got)
	}
	if err := s.Step(0, +1); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Model().Get("x.png"); got != "B" {
		t.Errorf("x.png selection: got %q, want B", got)
	}
	s.Step(1, +1)
	if _, ok := s.Slots()[1].Path(); ok {
		t.Error("y.png should be unavailable in B")
	}

	out := filepath.Join(t.TempDir(), "out.zip")
	rep, err := s.Export(context.Background(), export.New(nil), out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if rep.Written != 1 || len(rep.Skipped) != 1 {
		t.Errorf("export: written %d skipped %v", rep.Written, rep.Skipped)
	}
}

func TestFailedRescanKeepsState(t *testing.T) {
	s := loaded(t, 3, "A/x.png", "B/x.png")
	s.Step(0, 1)

	_, err := s.Rescan(context.Background(), t.TempDir(), nil)
	if !errors.Is(err, catalog.ErrNoFolders) {
		t.Fatalf("rescan empty root: got %v, want ErrNoFolders", err)
	}
	if s.Catalog() == nil || s.Catalog().ImageCount() != 1 {
		t.Fatal("catalog was replaced by a failed scan")
	}
	if got, _ := s.Model().Get("x.png"); got != "B" {
		t.Errorf("selection lost after failed scan: got %q", got)
	}
}

func TestSuccessfulRescanClears(t *testing.T) {
	s := loaded(t, 1, "A/x.png", "A/y.png", "B/x.png")
	s.Advance(1)
	s.Step(0, 1)

	if _, err := s.Rescan(context.Background(), writeTree(t, "C/z.png"), nil); err != nil {
		t.Fatal(err)
	}
	if s.Model().Len() != 0 {
		t.Errorf("selections after rescan: %v", s.Model().Selections())
	}
	if s.Nav().Position() != 0 {
		t.Errorf("position after rescan: got %d", s.Nav().Position())
	}
	if got := slotImages(s); len(got) != 1 || got[0] != "z.png" {
		t.Errorf("slots: got %v", got)
	}
}

func TestNavigationRebindsFromSelection(t *testing.T) {
	s := loaded(t, 1, "A/x.png", "A/y.png", "B/x.png", "B/y.png")
	s.Step(0, 1) // x.png -> B

	if !s.Advance(1) {
		t.Fatal("advance should move")
	}
	if s.Slots()[0].Folder() != "A" {
		t.Errorf("y.png slot: got %q, want A", s.Slots()[0].Folder())
	}
	if s.Model().Len() != 1 {
		t.Error("navigating should not write selections")
	}
	s.Advance(-1)
	if s.Slots()[0].Folder() != "B" {
		t.Errorf("x.png slot after return: got %q, want B", s.Slots()[0].Folder())
	}
	if s.Advance(-1) {
		t.Error("advance before start should be rejected")
	}
}

func TestPageSizeChangeRebuilds(t *testing.T) {
	s := loaded(t, 1, "A/a.png", "A/b.png", "A/c.png", "A/d.png")
	s.Advance(3)

	if err := s.SetPageSize(3); err != nil {
		t.Fatal(err)
	}
	if got := slotImages(s); len(got) != 3 || got[0] != "b.png" {
		t.Errorf("slots: got %v, want [b c d]", got)
	}
	if err := s.SetPageSize(4); !errors.Is(err, navigation.ErrInvalidPageSize) {
		t.Errorf("page size 4: got %v", err)
	}
	if got := s.CyclePageSize(); got != 1 {
		t.Errorf("cycle from 3: got %d, want 1", got)
	}
	if got := s.CyclePageSize(); got != 2 || s.Nav().PageSize() != 2 {
		t.Errorf("cycle from 1: got %d (page size %d), want 2", got, s.Nav().PageSize())
	}
	s.SetPageSize(1)
	if s.Label() != "Sequence: 2 / 4" {
		t.Errorf("label: got %q", s.Label())
	}
}

func TestFocusAndStepBounds(t *testing.T) {
	s := loaded(t, 3, "A/a.png", "A/b.png")

	if err := s.Focus(2); !errors.Is(err, ErrNoSlot) {
		t.Errorf("focus 3 of 2: got %v", err)
	}
	if err := s.Step(5, 1); !errors.Is(err, ErrNoSlot) {
		t.Errorf("step slot 6: got %v", err)
	}
	s.FocusNext()
	s.FocusNext()
	if s.Active() != 0 {
		t.Errorf("focus should wrap: got %d", s.Active())
	}
}

func TestExportWithoutCatalog(t *testing.T) {
	s, _ := New(3)
	if _, err := s.Export(context.Background(), export.New(nil), "out.zip"); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("got %v, want ErrNoCatalog", err)
	}
	if s.Label() != "No folder loaded" {
		t.Errorf("label: got %q", s.Label())
	}
}
