package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/selection"
)

func sparseModel(t *testing.T) *selection.Model {
	t.Helper()
	root := t.TempDir()
	for _, p := range []string{"A/x.png", "A/y.png", "B/x.png"} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(p), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c, err := catalog.Scan(context.Background(), root, nil)
	if err != nil {
		t.Fatal(err)
	}
	return selection.New(c)
}

func TestApplyPicksFromThenOverride(t *testing.T) {
	m := sparseModel(t)
	if err := applyPicks(m, "A", []string{"x.png=B"}); err != nil {
		t.Fatalf("applyPicks: %v", err)
	}
	if got, _ := m.Get("x.png"); got != "B" {
		t.Errorf("x.png: got %q, want B", got)
	}
	if got, _ := m.Get("y.png"); got != "A" {
		t.Errorf("y.png: got %q, want A", got)
	}
}

func TestApplyPicksFromSkipsUnavailable(t *testing.T) {
	m := sparseModel(t)
	if err := applyPicks(m, "B", nil); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 {
		t.Errorf("picks: got %v, want only x.png", m.Selections())
	}
}

func TestApplyPicksErrors(t *testing.T) {
	m := sparseModel(t)
	err := applyPicks(m, "", []string{"x.png", "x.png=C", "z.png=A", "y.png=B"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"want image=folder", `unknown folder "C"`, `unknown image "z.png"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if got, _ := m.Get("y.png"); got != "B" {
		t.Errorf("valid pick should still apply, got %q", got)
	}
	if err := applyPicks(m, "C", nil); err == nil {
		t.Error("unknown --from folder should fail")
	}
}
