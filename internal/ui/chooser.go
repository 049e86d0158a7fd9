package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoSelection is returned when the user gives up or input runs out.
var ErrNoSelection = errors.New("no selection made")

const maxAttempts = 3

// Chooser presents labels and returns the index of the one picked.
type Chooser interface {
	Choose(labels []string) (int, error)
}

// Fixed always picks the same 0-based index.
type Fixed int

func (f Fixed) Choose(labels []string) (int, error) {
	if int(f) < 0 || int(f) >= len(labels) {
		return 0, fmt.Errorf("index %d out of range (1-%d)", int(f)+1, len(labels))
	}
	return int(f), nil
}

// Prompt lists labels with 1-based numbers on Out and reads the answer from
// In. An answer is either a number or an exact label. Quiet suppresses the
// list and the question, for piped input.
type Prompt struct {
	In    io.Reader
	Out   io.Writer
	Quiet bool
}

func (p *Prompt) Choose(labels []string) (int, error) {
	if len(labels) == 0 {
		return 0, ErrNoSelection
	}

	width := len(strconv.Itoa(len(labels)))
	if !p.Quiet {
		for i, l := range labels {
			fmt.Fprintf(p.Out, "%s  %s\n", indexStyle.Render(fmt.Sprintf("%*d", width, i+1)), l)
		}
	}

	sc := bufio.NewScanner(p.In)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if !p.Quiet {
			fmt.Fprintf(p.Out, "pick 1-%d: ", len(labels))
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("reading selection: %w", err)
			}
			return 0, ErrNoSelection
		}
		if i, ok := resolve(strings.TrimSpace(sc.Text()), labels); ok {
			return i, nil
		}
		if !p.Quiet {
			fmt.Fprintln(p.Out, errStyle.Render("not a valid choice"))
		}
	}
	return 0, ErrNoSelection
}

func resolve(answer string, labels []string) (int, bool) {
	if answer == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(labels) {
			return 0, false
		}
		return n - 1, true
	}
	for i, l := range labels {
		if l == answer {
			return i, true
		}
	}
	return 0, false
}
