package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/slidechooser/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate the config file and print the effective settings",
	Args:  cobra.NoArgs,
	// Loading happens in runConfig so a broken file is reported, not fatal.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	_, resolved, exists, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("  ✗ %v\n", err)
		return fmt.Errorf("config invalid")
	}
	state := "not found, using defaults"
	if exists {
		state = "valid"
	}
	fmt.Printf("  ✓ %s (%s)\n\n", resolved, state)
	if err := loadConfig(nil, nil); err != nil {
		return err
	}

	g := cfg.Geometry()
	itoa := strconv.Itoa
	rows := [][]string{
		{"view.page_size", itoa(cfg.View.PageSize)},
		{"view.layout", cfg.View.Layout},
		{"layout.margin", itoa(g.Margin)},
		{"layout.chrome", itoa(g.Chrome)},
		{"layout.min_side", itoa(g.MinSide)},
		{"resize.debounce_ms", itoa(cfg.Resize.DebounceMS)},
		{"resize.threshold", itoa(g.Threshold)},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.file", cfg.Logging.File},
		{"export.default_path", cfg.Export.DefaultPath},
	}
	fmt.Println(renderTable([]column{left("Setting"), right("Value")}, rows))
	return nil
}
