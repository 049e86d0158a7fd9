package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chriserin/testpick/internal/parser"
	"github.com/chriserin/testpick/internal/ui"
)

var (
	plainFlag     bool
	testsOnlyFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the suites and tests in a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), args[0], plainFlag, testsOnlyFlag)
	},
}

func init() {
	listCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print names only, one per line")
	listCmd.Flags().BoolVar(&testsOnlyFlag, "tests-only", false, "Omit describe suites")
	rootCmd.AddCommand(listCmd)
}

// readEntries parses path. Entries found before a parse failure are
// returned along with the error.
func readEntries(path string, testsOnly bool) ([]parser.Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := parser.Parse(string(content))
	if testsOnly {
		entries = parser.Tests(entries)
	}
	if err != nil {
		return entries, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

func RunList(w io.Writer, path string, plain, testsOnly bool) error {
	entries, parseErr := readEntries(path, testsOnly)
	if parseErr != nil && entries == nil {
		return parseErr
	}

	if plain {
		for _, name := range parser.Names(entries) {
			fmt.Fprintln(w, name)
		}
		return parseErr
	}

	lineWidth := 0
	for _, e := range entries {
		if n := len(strconv.Itoa(e.Line)); n > lineWidth {
			lineWidth = n
		}
	}
	for _, e := range entries {
		ui.EntryLine(w, e, lineWidth)
	}
	return parseErr
}
