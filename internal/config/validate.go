package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnyUserName/slidechooser/internal/layout"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.View.PageSize < 1 || c.View.PageSize > 3 {
		return fmt.Errorf("view.page_size must be 1, 2 or 3, got %d", c.View.PageSize)
	}
	if !layout.Known(c.View.Layout) {
		return fmt.Errorf("view.layout: unknown preset %q", c.View.Layout)
	}
	if c.Layout.Margin < 0 || c.Layout.Chrome < 0 || c.Layout.MinSide < 0 {
		return errors.New("layout values must not be negative")
	}
	if c.Resize.DebounceMS < 0 || c.Resize.Threshold < 0 {
		return errors.New("resize values must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if strings.TrimSpace(c.Export.DefaultPath) == "" {
		return errors.New("export.default_path must be set")
	}
	return nil
}
