package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/testpick/internal/config"
)

var verboseFlag bool

var errNotInitialized = errors.New("run `testpick init` first")

var rootCmd = &cobra.Command{
	Use:          "testpick",
	Short:        "testpick: list and pick tests from describe/it/test files",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func initialized() bool {
	_, err := os.Stat(config.Dir)
	return err == nil
}

// loadConfig returns the project config, or the defaults outside an
// initialized project.
func loadConfig() (config.Config, error) {
	if !initialized() {
		return config.Default(), nil
	}
	return config.Load(config.Path)
}
