package cmd

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]column{left("Image"), right("Size")}, [][]string{
		{"x.png", "1 kB"},
		{"longer_name.png"},
		{"y.png", "22 kB", "dropped"},
	})

	for _, want := range []string{"IMAGE", "SIZE", "x.png", "longer_name.png", "22 kB"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "dropped") {
		t.Errorf("cell past the last column rendered:\n%s", out)
	}
	// Right-aligned values end at the column edge.
	if !strings.Contains(out, "  1 kB │") {
		t.Errorf("size not right-aligned:\n%s", out)
	}
	if renderTable(nil, [][]string{{"a"}}) != "" {
		t.Error("no columns should render nothing")
	}
}
