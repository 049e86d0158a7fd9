package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chriserin/testpick/internal/db"
	"github.com/chriserin/testpick/internal/parser"
	"github.com/chriserin/testpick/internal/ui"
)

var (
	indexFlag         int
	pickTestsOnlyFlag bool
)

var pickCmd = &cobra.Command{
	Use:   "pick <file>",
	Short: "Choose a suite or test from a file and print its full name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var chooser ui.Chooser
		if indexFlag > 0 {
			chooser = ui.Fixed(indexFlag - 1)
		} else {
			chooser = &ui.Prompt{
				In:    cmd.InOrStdin(),
				Out:   cmd.ErrOrStderr(),
				Quiet: !ui.Interactive(os.Stdin),
			}
		}
		return RunPick(cmd.OutOrStdout(), args[0], chooser, pickTestsOnlyFlag)
	},
}

func init() {
	pickCmd.Flags().IntVar(&indexFlag, "index", 0, "Pick the Nth entry (1-based) without prompting")
	pickCmd.Flags().BoolVar(&pickTestsOnlyFlag, "tests-only", false, "Offer tests only, not suites")
	rootCmd.AddCommand(pickCmd)
}

// RunPick prints the chosen name to w. A file that fails to parse offers
// nothing: a partial list would hide entries silently.
func RunPick(w io.Writer, path string, chooser ui.Chooser, testsOnly bool) error {
	entries, err := readEntries(path, testsOnly)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no tests found in %s", path)
	}

	names := parser.Names(entries)
	i, err := chooser.Choose(names)
	if err != nil {
		return fmt.Errorf("choosing test: %w", err)
	}
	fmt.Fprintln(w, names[i])

	if err := recordPick(path, names[i]); err != nil {
		slog.Warn("could not record pick", "err", err)
	}
	return nil
}

func recordPick(path, name string) error {
	if !initialized() {
		return nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return nil
	}

	sqlDB, err := db.Open(cfg.History.File)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	if abs, err := filepath.Abs(path); err == nil {
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, abs); err == nil {
				path = rel
			}
		}
	}
	if err := db.RecordPick(sqlDB, filepath.ToSlash(path), name, time.Now()); err != nil {
		return err
	}
	slog.Debug("recorded pick", "path", path, "name", name)
	return nil
}
