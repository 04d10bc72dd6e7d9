package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the pricetree banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"            _          _                ", "#34d399"},
		{"  _ __ _ __(_) ___ ___| |_ _ __ ___  ___ ", "#2dd4bf"},
		{" | '_ \\| '__| |/ __/ _ \\ __| '__/ _ \\/ _ \\", "#22d3ee"},
		{" | |_) | |  | | (_|  __/ |_| | |  __/  __/", "#38bdf8"},
		{" | .__/|_|  |_|\\___\\___|\\__|_|  \\___|\\___|", "#60a5fa"},
		{" |_|                                      ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String(" "+version).Faint())
	fmt.Fprintln(w)
}

// Summary styles a one line outcome, green when there is nothing to do.
func Summary(pending int) string {
	p := termenv.ColorProfile()
	if pending == 0 {
		return termenv.String("nothing to commit").Foreground(p.Color("#34d399")).String()
	}
	return termenv.String(fmt.Sprintf("%d pending operation(s)", pending)).Foreground(p.Color("#fbbf24")).Bold().String()
}
