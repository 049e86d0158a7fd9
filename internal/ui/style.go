package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/chriserin/testpick/internal/parser"
)

var (
	suiteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	testStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func kindMarker(k parser.EntryKind) string {
	if k == parser.Suite {
		return suiteStyle.Render("suite")
	}
	return testStyle.Render("test ")
}

// EntryLine prints one parsed entry with its kind and line number.
func EntryLine(w io.Writer, e parser.Entry, lineWidth int) {
	fmt.Fprintf(w, "%s  %s  %s\n", kindMarker(e.Kind), faintStyle.Render(fmt.Sprintf("%*d", lineWidth, e.Line)), e.Name)
}

func ScanLine(w io.Writer, path string, e parser.Entry) {
	fmt.Fprintf(w, "%s  %s\n", faintStyle.Render(fmt.Sprintf("%s:%d", path, e.Line)), e.Name)
}

func ScanFailLine(w io.Writer, path string, err error) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path+": "+err.Error())
}

func SummaryLine(w io.Writer, files, entries, failed int) {
	fmt.Fprintf(w, "scanned %d files, %d entries", files, entries)
	if failed > 0 {
		fmt.Fprintf(w, ", %d failed", failed)
	}
	fmt.Fprintln(w)
}

func HistoryLine(w io.Writer, name, path string, at, now time.Time) {
	fmt.Fprintf(w, "%s  %s  %s\n", faintStyle.Render(humanize.RelTime(at, now, "ago", "from now")), name, faintStyle.Render(path))
}

func CountLine(w io.Writer, path string, count int, width int) {
	fmt.Fprintf(w, "%-*s  %s\n", width, path, humanize.Comma(int64(count)))
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
