package composer

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/qcompose/internal/completion"
	"github.com/oakwood-commons/qcompose/internal/limiter"
	"github.com/oakwood-commons/qcompose/internal/ui"
)

const prompt = "> "

// panelHeaderRows is the number of rows a panel draws above its first item.
const panelHeaderRows = 1

// span is the cell range a fragment occupies in the composer area.
type span struct {
	index      int
	row        int
	start, end int // end is exclusive
}

// lineLayout is the rendered composer area and where each piece landed.
// Fragments wrap onto further rows once they would pass the terminal width.
type lineLayout struct {
	text     string
	spans    []span
	inputRow int
	inputCol int
}

// rows returns the height of the composer area.
func (l lineLayout) rows() int {
	return lipgloss.Height(l.text)
}

// itemRow returns the screen row of the first panel item below the area.
func (l lineLayout) itemRow() int {
	return l.rows() + panelHeaderRows
}

// fragmentAt returns the fragment index under cell (x, y).
func (l lineLayout) fragmentAt(x, y int) (int, bool) {
	for _, s := range l.spans {
		if y == s.row && x >= s.start && x < s.end {
			return s.index, true
		}
	}
	return 0, false
}

// composerLine renders the prompt, fragments and live input.
func (m *Model) composerLine() lineLayout {
	var (
		lines []string
		b     strings.Builder
	)
	b.WriteString(prompt)
	row, col := 0, lipgloss.Width(prompt)
	// wrap starts a new row when w more cells would not fit on this one.
	wrap := func(w int) {
		if m.width <= 0 || col == 0 || col+w <= m.width {
			return
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
		b.Reset()
		row, col = row+1, 0
	}

	focused, _, inToken := m.loc.Token()
	spans := make([]span, 0, m.seq.Len())
	for i, f := range m.seq.Fragments() {
		var s string
		if !f.IsToken() {
			s = m.renderer.Bracket(f, i == m.hovered)
		} else {
			st := ui.TokenState{Focused: inToken && i == focused, Hovered: i == m.hovered}
			if st.Focused && !m.theme.IsPlain() {
				st.Editor = m.editor.View()
			}
			s = m.renderer.Token(f, st)
		}
		w := lipgloss.Width(s)
		wrap(w)
		spans = append(spans, span{index: i, row: row, start: col, end: col + w})
		b.WriteString(s)
		b.WriteString(" ")
		col += w + 1
	}

	in := m.theme.Input.Render(m.input.View())
	wrap(lipgloss.Width(in))
	layout := lineLayout{spans: spans, inputRow: row, inputCol: col}
	b.WriteString(in)
	lines = append(lines, b.String())
	layout.text = strings.Join(lines, "\n")
	return layout
}

// visibleRows returns the suggestion items inside the scroll window.
func (m *Model) visibleRows() []completion.Item {
	return limiter.Apply(m.window.Config(), m.active.Items)
}

func (m *Model) suggestionPanel() string {
	items := m.visibleRows()
	above, below := m.window.Hidden(m.active.Len())
	rows := make([]ui.SuggestionRow, len(items))
	for k, item := range items {
		rows[k] = ui.SuggestionRow{
			Text:        item.Text(),
			Description: item.Description,
			Selected:    m.window.Offset()+k == m.sel.Index(),
		}
	}
	return m.renderer.Suggestions(ui.SuggestionPanel{
		Category: m.active.Category,
		Rows:     rows,
		Above:    above,
		Below:    below,
		Width:    m.width,
	})
}

func (m *Model) menuPanel() string {
	return m.renderer.ContextMenu(ui.MenuPanel{
		Items:    m.menu.labels(m.copied),
		Selected: m.menu.selected,
		Width:    m.width,
	})
}

func (m *Model) helpPanel() string {
	out, err := ui.RenderHelp(m.theme.MarkdownStyle, m.width)
	if err != nil {
		m.lgr.Error(err, "render help")
		return ui.HelpMarkdown()
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) footer() string {
	line := m.help.View(m.keys)
	switch {
	case m.status != "":
		line += "  " + m.theme.Error.Render(m.status)
	case m.copied:
		line += "  " + m.theme.Success.Render(LabelCopied)
	}
	return line
}

// body renders everything but the terminal settings.
func (m *Model) body() string {
	parts := []string{m.composerLine().text}
	switch {
	case m.helpVisible:
		parts = append(parts, m.helpPanel())
	case m.menu.open:
		parts = append(parts, m.menuPanel())
	case m.panelOpen:
		parts = append(parts, m.suggestionPanel())
	}
	parts = append(parts, "", m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.body())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
