package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/export"
	"github.com/AnyUserName/slidechooser/internal/report"
	"github.com/AnyUserName/slidechooser/internal/selection"
)

var (
	exportOut   string
	exportPicks []string
	exportFrom  string
	exportJSON  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <root>",
	Short: "Write chosen versions into a zip archive without the browser",
	Long: `Scans <root> and exports one file per picked image. Each --pick names an
image and the folder whose version to take:

  slidechooser export renders -o best.zip --pick cat.png=v2 --pick dog.png=v1

--from takes every image available in one folder; explicit picks override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "archive path (default from config, selected.zip)")
	exportCmd.Flags().StringArrayVar(&exportPicks, "pick", nil, "image=folder, repeatable")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "pick every image available in this folder")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "print a JSON report")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	out := exportOut
	if out == "" {
		out = cfg.Export.DefaultPath
	}

	c, err := catalog.Scan(cmd.Context(), args[0], nil)
	if err != nil {
		logger.Error("scan failed", "root", args[0], "error", err)
		return fmt.Errorf("scan: %w", err)
	}
	logger.Info("scan complete", "root", c.Root, "folders", c.FolderCount(), "images", c.ImageCount())

	model := selection.New(c)
	if err := applyPicks(model, exportFrom, exportPicks); err != nil {
		return err
	}

	rep, err := export.New(logger).Export(cmd.Context(), model.Selections(), c, out)
	if err != nil {
		logger.Error("export failed", "path", out, "error", err)
		return fmt.Errorf("export: %w", err)
	}

	if exportJSON {
		return report.WriteJSON(os.Stdout, report.FromExport(rep))
	}
	printExport(rep)
	return nil
}

// applyPicks records --from and then each --pick. Unknown images and folders
// are rejected; a known image picked from a folder that lacks it is left for
// the exporter to report as skipped.
func applyPicks(m *selection.Model, from string, picks []string) error {
	c := m.Catalog()
	if from != "" {
		if c.FolderIndex(from) < 0 {
			return fmt.Errorf("--from: unknown folder %q", from)
		}
		for _, name := range c.Names() {
			if _, ok := c.Resolve(name, from); ok {
				m.Set(name, from)
			}
		}
	}

	var errs []error
	for _, p := range picks {
		image, folder, ok := strings.Cut(p, "=")
		if !ok || image == "" || folder == "" {
			errs = append(errs, fmt.Errorf("--pick %q: want image=folder", p))
			continue
		}
		if c.FolderIndex(folder) < 0 {
			errs = append(errs, fmt.Errorf("--pick %q: unknown folder %q", p, folder))
			continue
		}
		if len(c.Versions(image)) == 0 {
			errs = append(errs, fmt.Errorf("--pick %q: unknown image %q", p, image))
			continue
		}
		m.Set(image, folder)
	}
	return errors.Join(errs...)
}

func printExport(rep *export.Report) {
	if rep.Written == 0 && len(rep.Skipped) == 0 {
		fmt.Println("  nothing to export")
		return
	}

	if len(rep.Entries) > 0 {
		rows := make([][]string, 0, len(rep.Entries))
		for _, e := range rep.Entries {
			rows = append(rows, []string{e.Name, e.Folder, humanize.Bytes(uint64(e.Size)), e.Hash})
		}
		fmt.Println(renderTable([]column{left("Image"), left("Folder"), right("Size"), left("xxhash64")}, rows))
	}
	for _, s := range rep.Skipped {
		fmt.Printf("  ✗ %s from %s: %s\n", s.Image, s.Folder, s.Reason)
	}
	fmt.Printf("  ✓ Exported %d images (%s) to %s\n", rep.Written, humanize.Bytes(uint64(rep.Bytes())), rep.Path)
}
