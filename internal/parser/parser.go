package parser

import "strings"

// Parse scans a describe/test/it source file and returns every suite and
// test in source order, suites before their children.
//
// A fatal error stops the scan. The entries found before the failure are
// returned alongside the error; callers that want all or nothing should
// drop them.
func Parse(src string) ([]Entry, error) {
	s := NewState(src)
	var err error
	for !s.Done() {
		var next State
		next, err = s.Step()
		if err != nil {
			break
		}
		s = next
	}
	setLines(src, s.Entries)
	return s.Entries, err
}

// Names returns the fully qualified name of every entry.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// Tests drops suite entries.
func Tests(entries []Entry) []Entry {
	var tests []Entry
	for _, e := range entries {
		if e.Kind == Test {
			tests = append(tests, e)
		}
	}
	return tests
}

// setLines fills Line for entries, which are ordered by offset.
func setLines(src string, entries []Entry) {
	line, from := 1, 0
	for i := range entries {
		off := entries[i].Offset
		line += strings.Count(src[from:off], "\n")
		from = off
		entries[i].Line = line
	}
}

func position(src string, off int) (line, col int) {
	if off > len(src) {
		off = len(src)
	}
	before := src[:off]
	line = strings.Count(before, "\n") + 1
	col = off - strings.LastIndexByte(before, '\n')
	return line, col
}
