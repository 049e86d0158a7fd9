package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/chriserin/testpick/internal/parser"
)

// File is one successfully parsed test file.
type File struct {
	Path    string // relative to the scan root, slash separated
	Entries []parser.Entry
}

// FileError records a file that could not be read or parsed. Entries holds
// whatever was found before a parse failure.
type FileError struct {
	Path    string
	Err     error
	Entries []parser.Entry
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

type Result struct {
	Files  []File
	Errors []FileError
}

// Entries counts entries across all parsed files. Entries kept on a
// FileError are not included.
func (r *Result) Entries() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Entries)
	}
	return n
}

// Find walks root and returns the relative paths of candidate test files,
// sorted.
func Find(ctx context.Context, root string, opts ...Option) ([]string, error) {
	o := newOptions(opts)
	return find(ctx, root, o)
}

func find(ctx context.Context, root string, o Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	skip := make(map[string]bool)
	for _, d := range append(append([]string{}, DefaultSkipDirs...), o.Exclude...) {
		skip[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			slog.Warn("skipping unreadable path", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(o.Patterns, rel) {
			return nil
		}

		if o.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.Size() > o.MaxFileSize {
				slog.Debug("skipping large file", "path", rel, "size", info.Size())
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Scan finds candidate files under root and parses them concurrently.
// A file that fails does not stop the others; the scan stops only when ctx
// is done.
func Scan(ctx context.Context, root string, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	paths, err := find(ctx, root, o)
	if err != nil {
		return nil, err
	}

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu     sync.Mutex
		result = &Result{Files: make([]File, 0, len(paths))}
	)

	for _, rel := range paths {
		rel := rel
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			entries, err := parseFile(filepath.Join(root, filepath.FromSlash(rel)), o.TestsOnly)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("parse failed", "path", rel, "err", err)
				result.Errors = append(result.Errors, FileError{Path: rel, Err: err, Entries: entries})
				return nil
			}
			slog.Debug("parsed", "path", rel, "entries", len(entries))
			result.Files = append(result.Files, File{Path: rel, Entries: entries})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("scan interrupted: %w", err)
		}
		return nil, err
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
	return result, nil
}

func parseFile(path string, testsOnly bool) ([]parser.Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	entries, err := parser.Parse(string(content))
	if testsOnly {
		entries = parser.Tests(entries)
	}
	return entries, err
}
