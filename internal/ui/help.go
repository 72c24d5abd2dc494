package ui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
)

//go:embed help.md
var helpMarkdown string

// HelpMarkdown returns the help overlay source.
func HelpMarkdown() string {
	return helpMarkdown
}

// RenderHelp renders the help overlay for the given glamour style ("dark",
// "light", "notty") wrapped at width columns.
func RenderHelp(style string, width int) (string, error) {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", errors.Wrap(err, "create help renderer")
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return "", errors.Wrap(err, "render help")
	}
	return strings.Trim(out, "\n"), nil
}
