package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// timeLayout sorts lexically in the same order as the times it encodes.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNoPicks is returned by LastPick when nothing has been recorded.
var ErrNoPicks = errors.New("no picks recorded")

type Pick struct {
	ID       int64
	FilePath string
	Name     string
	PickedAt time.Time
}

type PickCount struct {
	FilePath string
	Count    int
}

func RecordPick(sqlDB *sql.DB, filePath, name string, at time.Time) error {
	_, err := sqlDB.Exec(`INSERT INTO picks (file_path, name, picked_at) VALUES (?, ?, ?)`,
		filePath, name, at.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting pick: %w", err)
	}
	return nil
}

// RecentPicks returns up to limit picks, newest first.
func RecentPicks(sqlDB *sql.DB, limit int) ([]Pick, error) {
	rows, err := sqlDB.Query(`
		SELECT id, file_path, name, picked_at
		FROM picks
		ORDER BY picked_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying picks: %w", err)
	}
	defer rows.Close()

	var picks []Pick
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating picks: %w", err)
	}
	return picks, nil
}

func LastPick(sqlDB *sql.DB) (Pick, error) {
	picks, err := RecentPicks(sqlDB, 1)
	if err != nil {
		return Pick{}, err
	}
	if len(picks) == 0 {
		return Pick{}, ErrNoPicks
	}
	return picks[0], nil
}

// PickCounts returns how often each file was picked from, most picked first.
func PickCounts(sqlDB *sql.DB) ([]PickCount, error) {
	rows, err := sqlDB.Query(`
		SELECT file_path, COUNT(*) AS cnt
		FROM picks
		GROUP BY file_path
		ORDER BY cnt DESC, file_path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pick counts: %w", err)
	}
	defer rows.Close()

	var counts []PickCount
	for rows.Next() {
		var c PickCount
		if err := rows.Scan(&c.FilePath, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning pick count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPick(row scanner) (Pick, error) {
	var p Pick
	var at string
	if err := row.Scan(&p.ID, &p.FilePath, &p.Name, &at); err != nil {
		return Pick{}, fmt.Errorf("scanning pick: %w", err)
	}
	t, err := time.Parse(timeLayout, at)
	if err != nil {
		return Pick{}, fmt.Errorf("parsing picked_at %q: %w", at, err)
	}
	p.PickedAt = t
	return p, nil
}
