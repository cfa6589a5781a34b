package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/export"
	"github.com/AnyUserName/slidechooser/internal/loader"
)

type scanProgressMsg struct {
	done, total int
}

type scanDoneMsg struct {
	root string
	cat  *catalog.Catalog
	err  error
}

type loadedMsg struct {
	res loader.Result
}

type resizeTickMsg struct {
	gen int
}

type exportDoneMsg struct {
	rep *export.Report
	err error
}

// doScan walks root off the update loop. Progress is best effort; the final
// result always arrives as scanDoneMsg.
func doScan(ctx context.Context, root string, ch chan scanProgressMsg) tea.Cmd {
	return func() tea.Msg {
		c, err := catalog.Scan(ctx, root, func(done, total int) {
			select {
			case ch <- scanProgressMsg{done: done, total: total}:
			default:
			}
		})
		close(ch)
		return scanDoneMsg{root: root, cat: c, err: err}
	}
}

func waitForScanProgress(ch chan scanProgressMsg) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return p
	}
}

// waitForLoad hands one decoded bitmap from the loader worker to Update.
// Update re-arms it after every delivery.
func waitForLoad(ch chan loader.Result) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{res: <-ch}
	}
}

func resizeAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return resizeTickMsg{gen: gen}
	})
}

// doExport works on a snapshot of the selections; the catalog is immutable.
func doExport(ctx context.Context, x *export.Exporter, selections map[string]string, c *catalog.Catalog, out string) tea.Cmd {
	return func() tea.Msg {
		rep, err := x.Export(ctx, selections, c, out)
		return exportDoneMsg{rep: rep, err: err}
	}
}
