package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/qcompose/internal/query"
)

// TokenState is the per-pill state the composer passes to the renderer.
type TokenState struct {
	Focused bool
	Hovered bool
	// Editor replaces the token text while the caret is inside it.
	Editor string
}

// SuggestionRow is one visible suggestion.
type SuggestionRow struct {
	Text        string
	Description string
	Selected    bool
}

// SuggestionPanel describes the visible part of the suggestion list.
type SuggestionPanel struct {
	Category string
	Rows     []SuggestionRow
	Above    int // rows scrolled off the top
	Below    int // rows scrolled off the bottom
	Width    int
}

// MenuPanel describes the context menu.
type MenuPanel struct {
	Items    []string
	Selected int
	Width    int
}

// Renderer materializes the composer model. Panels must render the header
// on the first line and then exactly one line per row; the composer maps
// pointer rows back onto items with that layout.
type Renderer interface {
	Token(f query.Fragment, st TokenState) string
	Bracket(f query.Fragment, hovered bool) string
	Suggestions(p SuggestionPanel) string
	ContextMenu(m MenuPanel) string
}

// StyledRenderer draws with a Theme.
type StyledRenderer struct {
	Theme Theme
}

// NewStyledRenderer returns a renderer for theme.
func NewStyledRenderer(theme Theme) *StyledRenderer {
	return &StyledRenderer{Theme: theme}
}

func (r *StyledRenderer) Token(f query.Fragment, st TokenState) string {
	t := r.Theme
	text := f.Text
	if st.Focused && st.Editor != "" {
		text = st.Editor
	}
	if t.IsPlain() {
		switch {
		case st.Focused:
			return "{" + text + "}"
		case st.Hovered:
			return "<" + text + ">"
		default:
			return "[" + text + "]"
		}
	}
	style := t.Token
	switch {
	case st.Focused:
		style = t.Focus
	case st.Hovered:
		style = t.Hover
	case f.IsOperator():
		style = t.Operator
	}
	return style.Render(text)
}

func (r *StyledRenderer) Bracket(f query.Fragment, hovered bool) string {
	s := r.Theme.Bracket
	if hovered && !r.Theme.IsPlain() {
		s = s.Underline(true)
	}
	return s.Render(string(f.Char))
}

func (r *StyledRenderer) Suggestions(p SuggestionPanel) string {
	t := r.Theme
	header := p.Category
	if p.Above > 0 {
		header += fmt.Sprintf(" (%d more above)", p.Above)
	}
	lines := []string{t.Category.Render(header)}

	textWidth := 0
	for _, row := range p.Rows {
		textWidth = max(textWidth, runewidth.StringWidth(row.Text))
	}
	for _, row := range p.Rows {
		text := row.Text + strings.Repeat(" ", textWidth-runewidth.StringWidth(row.Text))
		desc := row.Description
		if p.Width > 0 {
			// frame and gap take 5 columns
			room := p.Width - textWidth - 5
			if room <= 0 {
				desc = ""
			} else if runewidth.StringWidth(desc) > room {
				desc = runewidth.Truncate(desc, room, "…")
			}
		}
		marker := "  "
		style := t.Row
		if row.Selected {
			marker = "> "
			style = t.Selected
		}
		line := marker + text
		if desc != "" {
			line = style.Render(line) + "  " + t.Description.Render(desc)
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	if len(p.Rows) == 0 {
		lines = append(lines, t.Description.Render("  no matches"))
	}
	if p.Below > 0 {
		lines = append(lines, t.Description.Render(fmt.Sprintf("  … %d more", p.Below)))
	}
	return t.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *StyledRenderer) ContextMenu(m MenuPanel) string {
	t := r.Theme
	lines := []string{t.Category.Render("Actions")}
	for i, item := range m.Items {
		marker := "  "
		style := t.Row
		if i == m.Selected {
			marker = "> "
			style = t.Selected
		}
		lines = append(lines, style.Render(marker+item))
	}
	return t.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
