package discover

const (
	// DefaultMaxFileSize skips generated bundles and other huge files.
	DefaultMaxFileSize = 2 * 1024 * 1024
	MaxWorkers         = 256
)

// DefaultSkipDirs are never descended into.
var DefaultSkipDirs = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".next",
	".cache",
	".testpick",
}

// DefaultPatterns match common jest/vitest/mocha file names.
var DefaultPatterns = []string{
	"**/*.test.{js,jsx,ts,tsx,mjs,cjs}",
	"**/*.spec.{js,jsx,ts,tsx,mjs,cjs}",
}

type Options struct {
	// Patterns are doublestar globs matched against slash-separated paths
	// relative to the scan root.
	Patterns []string
	// Exclude adds directory names to DefaultSkipDirs.
	Exclude     []string
	MaxFileSize int64
	// Workers bounds concurrent parses. Zero means GOMAXPROCS.
	Workers int
	// TestsOnly drops suite entries from every parsed file.
	TestsOnly bool
}

type Option func(*Options)

func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		if len(patterns) > 0 {
			o.Patterns = patterns
		}
	}
}

func WithExclude(dirs []string) Option {
	return func(o *Options) {
		o.Exclude = dirs
	}
}

// WithMaxFileSize ignores non-positive sizes.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size > 0 {
			o.MaxFileSize = size
		}
	}
}

// WithWorkers ignores negative counts.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

func WithTestsOnly(on bool) Option {
	return func(o *Options) {
		o.TestsOnly = on
	}
}

func newOptions(opts []Option) Options {
	o := Options{
		Patterns:    DefaultPatterns,
		MaxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
