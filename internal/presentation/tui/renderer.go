package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// On a terminal the style follows the background; otherwise the plain "notty" style is used
// so piped output stays free of escape sequences.
func NewRenderer(terminal bool) (func(string) (string, error), error) {
	style := glamour.WithStandardStyle("notty")
	if terminal {
		style = glamour.WithAutoStyle() // Automatically detect light/dark background
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
