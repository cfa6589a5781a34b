package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/slidechooser/internal/layout"
	"github.com/AnyUserName/slidechooser/internal/logging"
	"github.com/AnyUserName/slidechooser/internal/tui"
)

var (
	browsePageSize int
	browseOut      string
	browseLayout   string
)

var browseCmd = &cobra.Command{
	Use:   "browse [root]",
	Short: "Compare versions side by side and pick one per image",
	Long: `Opens the interactive browser. With [root] the folder is scanned right
away; otherwise press o to enter one.

Keys: ←/→ move a page, ↑/↓ change the version of the focused slide,
1/2/3 or tab focus a slide, !/@/# (or p) show 1, 2 or 3 slides,
e export the picks to a zip, r rescan, q quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVar(&browsePageSize, "page-size", 0, "slides per page, 1-3 (default from config)")
	browseCmd.Flags().StringVar(&browseOut, "out", "", "default archive path for e")
	browseCmd.Flags().StringVar(&browseLayout, "layout", "", "geometry preset: terminal or desktop")
	rootCmd.AddCommand(browseCmd)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return errors.New("browse needs an interactive terminal; use scan or export instead")
	}

	// The screen belongs to the program, so logs go to a file.
	logFile, err := logging.OpenFile(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	pageSize := cfg.View.PageSize
	if browsePageSize != 0 {
		pageSize = browsePageSize
	}
	out := cfg.Export.DefaultPath
	if browseOut != "" {
		out = browseOut
	}
	if browseLayout != "" {
		if !layout.Known(browseLayout) {
			return fmt.Errorf("--layout: unknown preset %q", browseLayout)
		}
		cfg.View.Layout = browseLayout
	}
	var root string
	if len(args) == 1 {
		root = args[0]
	}

	m, err := tui.New(tui.Options{
		Context:  cmd.Context(),
		Root:     root,
		OutPath:  out,
		PageSize: pageSize,
		Geometry: cfg.Geometry(),
		Debounce: time.Duration(cfg.Resize.DebounceMS) * time.Millisecond,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	logger.Info("browse started", "root", root, "page_size", pageSize, "layout", cfg.View.Layout)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("browse: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		logger.Info("browse finished", "selected", fm.Session().Model().Len())
	}
	return nil
}
