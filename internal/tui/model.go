// Package tui is the interactive browse screen. Scans, decodes and exports
// run in commands; only Update touches the session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/export"
	"github.com/AnyUserName/slidechooser/internal/layout"
	"github.com/AnyUserName/slidechooser/internal/loader"
	"github.com/AnyUserName/slidechooser/internal/logging"
	"github.com/AnyUserName/slidechooser/internal/navigation"
	"github.com/AnyUserName/slidechooser/internal/session"
)

// Options configures the browse screen.
type Options struct {
	Context  context.Context
	Root     string // scanned on start when set
	OutPath  string // default answer of the save prompt
	PageSize int
	Geometry layout.Geometry
	Debounce time.Duration
	Logger   *slog.Logger
	// Decode overrides the loader's file decoder.
	Decode loader.DecodeFunc
}

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptSave
)

// Model is the bubbletea model.
type Model struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
	sess     *session.Session
	loader   *loader.Loader
	loads    chan loader.Result
	exporter *export.Exporter

	geom      layout.Geometry
	gate      *layout.Gate
	size      layout.Size // applied slide box, in pixels
	width     int         // terminal cells
	height    int
	resizeGen int
	debounce  time.Duration

	root      string // last root that scanned successfully
	scanRoot  string // root of the scan in flight
	outPath   string
	scanning  bool
	scanCh    chan scanProgressMsg
	scanDone  int
	scanTotal int
	exporting bool
	bar       progress.Model

	prompt     textinput.Model
	promptKind promptKind

	status string
	notice string // modal until dismissed
	errNote bool
}

// New builds the model. It fails only on an invalid page size.
func New(opts Options) (Model, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Geometry.Name == "" {
		opts.Geometry = layout.Get(layout.DefaultPreset)
	}
	if opts.OutPath == "" {
		opts.OutPath = "selected.zip"
	}
	if opts.PageSize == 0 {
		opts.PageSize = navigation.MaxPageSize
	}

	sess, err := session.New(opts.PageSize)
	if err != nil {
		return Model{}, err
	}

	ctx, cancel := context.WithCancel(opts.Context)
	loads := make(chan loader.Result, 16)
	deliver := func(r loader.Result) {
		select {
		case loads <- r:
		case <-ctx.Done():
		}
	}
	ti := textinput.New()
	ti.CharLimit = 4096

	m := Model{
		ctx:    ctx,
		cancel: cancel,
		logger: opts.Logger,
		sess:   sess,
		loads:  loads,
		loader: loader.New(loader.Options{
			Decode:  opts.Decode,
			Deliver: deliver,
			Logger:  opts.Logger,
		}),
		exporter: export.New(opts.Logger),
		geom:     opts.Geometry,
		gate:     layout.NewGate(opts.Geometry.Threshold),
		debounce: opts.Debounce,
		outPath:  opts.OutPath,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		prompt:   ti,
		status:   "Press o to open a folder",
	}
	if opts.Root != "" {
		m.beginScan(opts.Root)
	}
	return m, nil
}

// Session exposes the state for callers that inspect it after the program
// exits.
func (m Model) Session() *session.Session { return m.sess }

// Init starts listening for decoded bitmaps and runs the initial scan when a
// root was given.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForLoad(m.loads)}
	if m.scanning {
		cmds = append(cmds, doScan(m.ctx, m.scanRoot, m.scanCh), waitForScanProgress(m.scanCh))
	}
	return tea.Batch(cmds...)
}

// beginScan sets up scan state; the caller issues the commands. The root
// becomes current only once the scan succeeds.
func (m *Model) beginScan(root string) {
	m.scanRoot = root
	m.scanning = true
	m.scanDone, m.scanTotal = 0, 0
	m.scanCh = make(chan scanProgressMsg, 16)
	m.status = "Scanning " + root
}

func (m *Model) startScan(root string) tea.Cmd {
	m.beginScan(root)
	return tea.Batch(doScan(m.ctx, root, m.scanCh), waitForScanProgress(m.scanCh))
}

func (m *Model) notify(err bool, format string, args ...any) {
	m.notice = fmt.Sprintf(format, args...)
	m.errNote = err
}

// quit stops the loader's deliveries before leaving the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// Update applies one message. It is the only place session state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = max(10, min(60, msg.Width-scanLabelWidth))
		m.resizeGen++
		if m.size == (layout.Size{}) || m.debounce <= 0 {
			m.applySize()
			return m, nil
		}
		return m, resizeAfter(m.debounce, m.resizeGen)

	case resizeTickMsg:
		if msg.gen != m.resizeGen {
			return m, nil
		}
		m.applySize()
		return m, nil

	case scanProgressMsg:
		m.scanDone, m.scanTotal = msg.done, msg.total
		return m, waitForScanProgress(m.scanCh)

	case scanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.logger.Error("scan failed", "root", msg.root, "error", msg.err)
			if errors.Is(msg.err, catalog.ErrNoFolders) {
				m.notify(true, "No version folders found in %s", msg.root)
			} else {
				m.notify(true, "Scan failed: %v", msg.err)
			}
			m.status = "Scan failed"
			return m, nil
		}
		m.root = msg.root
		m.sess.ApplyScan(msg.cat)
		m.logger.Info("scan complete", "root", msg.root, "folders", msg.cat.FolderCount(), "images", msg.cat.ImageCount())
		m.status = fmt.Sprintf("Loaded %d images from %d folders", msg.cat.ImageCount(), msg.cat.FolderCount())
		m.requestVisible()
		return m, nil

	case loadedMsg:
		// Results for an older size stay cached; View only looks up the
		// current size.
		return m, waitForLoad(m.loads)

	case exportDoneMsg:
		m.exporting = false
		switch {
		case msg.err != nil:
			m.logger.Error("export failed", "error", msg.err)
			m.notify(true, "Export failed: %v", msg.err)
		case msg.rep.Written == 0 && len(msg.rep.Skipped) == 0:
			m.notify(false, "Nothing to export: no versions selected")
		default:
			m.notify(false, "Exported %d images (%s) to %s", msg.rep.Written, humanize.Bytes(uint64(msg.rep.Bytes())), msg.rep.Path)
			if n := len(msg.rep.Skipped); n > 0 {
				m.notice += fmt.Sprintf("\n%d selections skipped: file not available", n)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}
	if m.promptKind != promptNone {
		return m.handlePrompt(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "o":
		return m, m.openPrompt(promptOpen, "Folder: ", m.root)
	case "r":
		if m.root != "" && !m.scanning {
			return m, m.startScan(m.root)
		}
	case "e":
		if m.sess.Catalog() == nil {
			m.notify(true, "No folder loaded")
			return m, nil
		}
		if m.exporting {
			m.notify(true, "An export is already running")
			return m, nil
		}
		return m, m.openPrompt(promptSave, "Save as: ", m.outPath)
	case "left", "h":
		if m.sess.Advance(-1) {
			m.requestVisible()
		}
	case "right", "l":
		if m.sess.Advance(1) {
			m.requestVisible()
		}
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case "1", "2", "3":
		m.sess.Focus(int(msg.String()[0] - '1'))
	case "tab":
		m.sess.FocusNext()
	case "!":
		m.setPageSize(1)
	case "@":
		m.setPageSize(2)
	case "#":
		m.setPageSize(3)
	case "p":
		m.sess.CyclePageSize()
		m.pageSizeChanged()
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	m.promptKind = kind
	m.prompt.Prompt = label
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	return m.prompt.Focus()
}

func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptKind = promptNone
		m.prompt.Blur()
		return m, nil
	case "enter":
		kind := m.promptKind
		value := m.prompt.Value()
		m.promptKind = promptNone
		m.prompt.Blur()
		if value == "" {
			return m, nil
		}
		if kind == promptOpen {
			if m.scanning {
				m.notify(true, "A scan is already running")
				return m, nil
			}
			return m, m.startScan(value)
		}
		return m, m.startExport(value)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) startExport(out string) tea.Cmd {
	if filepath.Ext(out) == "" {
		out += ".zip"
	}
	m.outPath = out
	m.exporting = true
	m.status = "Exporting to " + out
	return doExport(m.ctx, m.exporter, m.sess.Model().Selections(), m.sess.Catalog(), out)
}

func (m *Model) step(dir int) {
	if err := m.sess.Step(m.sess.Active(), dir); err != nil {
		return
	}
	m.requestVisible()
}

func (m *Model) setPageSize(n int) {
	if err := m.sess.SetPageSize(n); err != nil {
		return
	}
	m.pageSizeChanged()
}

// pageSizeChanged re-fits at once: the gate is reset so the same window size
// applies again with the new slide count.
func (m *Model) pageSizeChanged() {
	m.gate.Reset()
	m.applySize()
}

// Space the view draws around the slide images, in cells.
const (
	slideBorderCols = 2 // left and right border of one slide
	slideGapCols    = 2 // between adjacent slides
	// header, blank line, top and bottom border, two caption lines, progress,
	// status and help.
	reservedRows   = 9
	scanLabelWidth = 16 // " 999/999 folders" after the progress bar
)

// applySize re-fits the slides when the gate lets the current window through.
func (m *Model) applySize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// The gate sees the raw window; each cell is one pixel wide and two tall.
	if !m.gate.Check(m.width, m.height*2) {
		return
	}
	page := m.sess.Nav().PageSize()
	w := m.width - page*slideBorderCols - (page-1)*slideGapCols
	h := (m.height - reservedRows) * 2
	m.size = m.geom.Target(w, h, page)
	m.logger.Debug("resize applied", "cols", m.width, "rows", m.height, "side", m.size.W)
	m.requestVisible()
}

// requestVisible queues a background decode for every visible slide that is
// not cached at the current size.
func (m *Model) requestVisible() {
	if m.size == (layout.Size{}) {
		return
	}
	for _, s := range m.sess.Slots() {
		path, ok := s.Path()
		if !ok {
			continue
		}
		key := loader.Key{Path: path, Size: m.size}
		if _, ok := m.loader.Lookup(key); !ok {
			m.loader.Request(key)
		}
	}
}
