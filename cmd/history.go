package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/chriserin/testpick/internal/config"
	"github.com/chriserin/testpick/internal/db"
	"github.com/chriserin/testpick/internal/ui"
)

var (
	lastFlag   bool
	countsFlag bool
	limitFlag  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently picked tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case lastFlag:
			return RunHistoryLast(cmd.OutOrStdout())
		case countsFlag:
			return RunHistoryCounts(cmd.OutOrStdout())
		}
		return RunHistory(cmd.OutOrStdout(), limitFlag, time.Now())
	},
}

func init() {
	historyCmd.Flags().BoolVar(&lastFlag, "last", false, "Print only the most recently picked name")
	historyCmd.Flags().BoolVar(&countsFlag, "counts", false, "Show how often each file was picked from")
	historyCmd.Flags().IntVar(&limitFlag, "limit", 0, "Number of picks to show (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*sql.DB, config.Config, error) {
	if !initialized() {
		return nil, config.Config{}, errNotInitialized
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	sqlDB, err := db.Open(cfg.History.File)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, cfg, nil
}

func RunHistory(w io.Writer, limit int, now time.Time) error {
	sqlDB, cfg, err := openHistory()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if limit <= 0 {
		limit = cfg.History.Limit
	}
	picks, err := db.RecentPicks(sqlDB, limit)
	if err != nil {
		return err
	}
	if len(picks) == 0 {
		fmt.Fprintln(w, "no picks yet")
		return nil
	}
	for _, p := range picks {
		ui.HistoryLine(w, p.Name, p.FilePath, p.PickedAt, now)
	}
	return nil
}

func RunHistoryLast(w io.Writer) error {
	sqlDB, _, err := openHistory()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	p, err := db.LastPick(sqlDB)
	if errors.Is(err, db.ErrNoPicks) {
		return fmt.Errorf("nothing picked yet")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, p.Name)
	return nil
}

func RunHistoryCounts(w io.Writer) error {
	sqlDB, _, err := openHistory()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	counts, err := db.PickCounts(sqlDB)
	if err != nil {
		return err
	}
	width := 0
	for _, c := range counts {
		if len(c.FilePath) > width {
			width = len(c.FilePath)
		}
	}
	for _, c := range counts {
		ui.CountLine(w, c.FilePath, c.Count, width)
	}
	return nil
}
