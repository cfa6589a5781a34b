package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/slidechooser/internal/config"
	"github.com/AnyUserName/slidechooser/internal/logging"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "slidechooser",
	Short: "Pick the best version of every image across render folders",
	Long: `slidechooser compares folders holding alternate versions of the same
images (one subfolder per render), lets you pick a version per image and
exports the picks into a single zip archive.

Each subfolder of <root> is a version. Files with the same name across
subfolders are versions of the same image.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/slidechooser/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"slidechooser %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c, _, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	cfg = c
	return nil
}

// newLogger builds the run logger writing to w. Every record carries the run
// id so interleaved runs in one log file can be told apart.
func newLogger(w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: w,
	})
	if err != nil {
		return nil, err
	}
	return logger.With("session", uuid.NewString()), nil
}
