package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/testpick/internal/config"
	"github.com/chriserin/testpick/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize testpick in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	// .testpick/ directory
	_, err := os.Stat(config.Dir)
	dirExists := err == nil
	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", config.Dir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", config.Dir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", config.Dir)
	}

	// config
	cfg := config.Default()
	if _, err := os.Stat(config.Path); err == nil {
		fmt.Fprintf(w, "%s already exists\n", filepath.ToSlash(config.Path))
		if cfg, err = config.Load(config.Path); err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(config.Path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(w, "%s created\n", filepath.ToSlash(config.Path))
	} else {
		return fmt.Errorf("checking config: %w", err)
	}

	// database
	dbPath := cfg.History.File
	_, err = os.Stat(dbPath)
	dbExists := err == nil
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", filepath.ToSlash(dbPath))
	} else {
		fmt.Fprintf(w, "%s created\n", filepath.ToSlash(dbPath))
	}

	// gitignore
	msgs, err := ensureGitignore(filepath.ToSlash(dbPath))
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
