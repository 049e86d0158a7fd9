package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/testpick/internal/discover"
	"github.com/chriserin/testpick/internal/ui"
)

var (
	scanWorkersFlag   int
	scanPatternsFlag  []string
	scanTestsOnlyFlag bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List suites and tests in every test file under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return RunScan(cmd.Context(), cmd.OutOrStdout(), root, scanOptions{
			workers:   scanWorkersFlag,
			patterns:  scanPatternsFlag,
			testsOnly: scanTestsOnlyFlag,
		})
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanWorkersFlag, "workers", 0, "Files parsed concurrently (default from config, then GOMAXPROCS)")
	scanCmd.Flags().StringSliceVar(&scanPatternsFlag, "pattern", nil, "Glob for test files, relative to dir (repeatable)")
	scanCmd.Flags().BoolVar(&scanTestsOnlyFlag, "tests-only", false, "Omit describe suites")
	rootCmd.AddCommand(scanCmd)
}

type scanOptions struct {
	workers   int
	patterns  []string
	testsOnly bool
}

func RunScan(ctx context.Context, w io.Writer, root string, opts scanOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}
	patterns := cfg.Patterns
	if len(opts.patterns) > 0 {
		patterns = opts.patterns
	}

	result, err := discover.Scan(ctx, root,
		discover.WithPatterns(patterns),
		discover.WithExclude(cfg.Exclude),
		discover.WithMaxFileSize(cfg.MaxFileSize),
		discover.WithWorkers(workers),
		discover.WithTestsOnly(opts.testsOnly),
	)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	for _, f := range result.Files {
		for _, e := range f.Entries {
			ui.ScanLine(w, f.Path, e)
		}
	}
	for _, fe := range result.Errors {
		ui.ScanFailLine(w, fe.Path, fe.Err)
	}

	ui.SummaryLine(w, len(result.Files)+len(result.Errors), result.Entries(), len(result.Errors))
	return nil
}
