package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AnyUserName/slidechooser/internal/layout"
	"github.com/AnyUserName/slidechooser/internal/loader"
	"github.com/AnyUserName/slidechooser/internal/slot"
)

const helpText = "o open  e export  ←/→ page  ↑/↓ version  1-3/tab slot  p size  r rescan  q quit"

// clip cuts every line of s to width cells. A zero width leaves s alone.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// View draws the screen. Every line fits the window width; slides are sized
// by applySize to leave room for the other rows.
func (m Model) View() string {
	if m.notice != "" && m.width > 0 {
		style := modalStyle
		if m.errNote {
			style = style.BorderForeground(colorError)
		}
		text := m.notice + "\n\n" + helpStyle.Render("press any key")
		box := style.Render(text)
		if lipgloss.Width(box) > m.width {
			// Width excludes the border; the text wraps inside the padding.
			box = style.Width(max(m.width-2, 1)).Render(text)
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var sb strings.Builder
	header := titleStyle.Render("slidechooser") + "  " + labelStyle.Render(m.sess.Label())
	if c := m.sess.Catalog(); c != nil {
		header += labelStyle.Render(fmt.Sprintf("  %d folders  %d selected  page %d",
			c.FolderCount(), m.sess.Model().Len(), m.sess.Nav().PageSize()))
	}
	sb.WriteString(clip(header, m.width))
	sb.WriteString("\n\n")

	if slides := m.slides(); slides != "" {
		sb.WriteString(slides)
		sb.WriteString("\n")
	}

	if m.scanning {
		pct := 0.0
		if m.scanTotal > 0 {
			pct = float64(m.scanDone) / float64(m.scanTotal)
		}
		bar := m.bar.ViewAs(pct) + labelStyle.Render(fmt.Sprintf(" %d/%d folders", m.scanDone, m.scanTotal))
		sb.WriteString(clip(bar, m.width))
		sb.WriteString("\n")
	}

	if m.promptKind != promptNone {
		sb.WriteString(clip(m.prompt.View(), m.width))
	} else {
		sb.WriteString(clip(m.status, m.width))
	}
	sb.WriteString("\n")
	sb.WriteString(clip(helpStyle.Render(helpText), m.width))
	if m.notice != "" {
		sb.WriteString("\n" + m.notice)
	}
	return sb.String()
}

func (m Model) slides() string {
	slots := m.sess.Slots()
	if len(slots) == 0 {
		return ""
	}
	total := len(m.sess.Catalog().Folders())
	cols := make([]string, 0, len(slots))
	for i, s := range slots {
		body := m.slideBody(s)
		border := slideBorder
		marker := fmt.Sprintf("%d", i+1)
		if i == m.sess.Active() {
			border = activeBorder
			marker = focusStyle.Render("▸" + marker)
		}
		caption := clip(fmt.Sprintf("%s %s\n%s (%d/%d)", marker, s.Image(),
			labelStyle.Render(s.Folder()), s.Cursor()+1, total), max(m.size.W, 1)+slideBorderCols)
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, border.Render(body), caption))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced(cols)...)
}

// slideBody renders one slide box: the fitted image once it is decoded, or a
// placeholder of the same size.
func (m Model) slideBody(s *slot.Slot) string {
	w := max(m.size.W, 1)
	rows := max((m.size.H+1)/2, 1)
	place := func(text string) string {
		return lipgloss.Place(w, rows, lipgloss.Center, lipgloss.Center, clip(text, w))
	}

	path, ok := s.Path()
	if !ok {
		return place(missingStyle.Render("not available in " + s.Folder()))
	}
	if m.size == (layout.Size{}) {
		return place(labelStyle.Render("waiting for window size"))
	}
	res, ok := m.loader.Lookup(loader.Key{Path: path, Size: m.size})
	switch {
	case !ok:
		return place(labelStyle.Render("loading…"))
	case res.Err != nil:
		return place(errorStyle.Render("cannot decode " + s.Image()))
	}
	return place(halfBlocks(res.Image))
}

func spaced(cols []string) []string {
	out := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, c)
	}
	return out
}
