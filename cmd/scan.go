package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/slidechooser/internal/catalog"
	"github.com/AnyUserName/slidechooser/internal/format"
	"github.com/AnyUserName/slidechooser/internal/report"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "List version folders and which images each one holds",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print a JSON report")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	root := args[0]
	logger.Debug("scanning", "root", root, "accepted", format.String())

	c, err := catalog.Scan(cmd.Context(), root, func(done, total int) {
		logger.Debug("scanned folder", "done", done, "total", total)
	})
	if err != nil {
		logger.Error("scan failed", "root", root, "error", err)
		return fmt.Errorf("scan: %w", err)
	}
	logger.Info("scan complete", "root", root, "folders", c.FolderCount(), "images", c.ImageCount())

	rep := report.FromCatalog(c)
	if scanJSON {
		return report.WriteJSON(os.Stdout, rep)
	}
	printScan(rep)
	return nil
}

func printScan(s *report.Scan) {
	fmt.Println()
	fmt.Printf("  Root:     %s\n", s.Root)
	fmt.Printf("  Folders:  %d\n", s.Stats.Folders)
	fmt.Printf("  Images:   %d  (%d files, %d missing from some folder)\n", s.Stats.Images, s.Stats.Files, s.Stats.Sparse)
	fmt.Println()
	if len(s.Images) == 0 {
		return
	}

	cols := []column{left("Image")}
	for _, f := range s.Folders {
		cols = append(cols, center(f))
	}
	rows := make([][]string, 0, len(s.Images))
	for _, img := range s.Images {
		have := make(map[string]bool, len(img.Versions))
		for _, v := range img.Versions {
			have[v] = true
		}
		row := []string{img.Name}
		for _, f := range s.Folders {
			mark := "·"
			if have[f] {
				mark = "✓"
			}
			row = append(row, mark)
		}
		rows = append(rows, row)
	}
	fmt.Println(renderTable(cols, rows))
}
