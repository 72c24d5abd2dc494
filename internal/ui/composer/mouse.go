package composer

import (
	tea "charm.land/bubbletea/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/qcompose/internal/caret"
)

func (m *Model) handleMotion(ev tea.Mouse) {
	prev := m.hovered
	m.hovered = caret.NoHover
	if i, ok := m.composerLine().fragmentAt(ev.X, ev.Y); ok {
		m.hovered = i
	}
	if m.hovered != prev {
		m.lgr.V(2).Info("hover changed", "hovered", m.hovered)
	}
}

func (m *Model) handleClick(ev tea.Mouse) tea.Cmd {
	if ev.Button == tea.MouseRight {
		m.openMenu()
		return nil
	}
	if ev.Button != tea.MouseLeft {
		return nil
	}

	layout := m.composerLine()
	if ev.Y < layout.rows() {
		m.menu.hide()
		if i, ok := layout.fragmentAt(ev.X, ev.Y); ok {
			return m.setCaret(caret.TokenEdge(i, caret.EdgeEnd))
		}
		if ev.Y == layout.inputRow && ev.X >= layout.inputCol {
			cmd := m.setCaret(caret.Input())
			m.input.SetCursor(runeOffset(m.input.Value(), ev.X-layout.inputCol))
			return cmd
		}
		return nil
	}

	row := ev.Y - layout.itemRow()
	switch {
	case m.helpVisible:
		return nil
	case m.menu.open:
		if row >= 0 && row < len(m.menu.actions) {
			m.menu.selected = row
			return m.activate(m.menu.actions[row])
		}
		m.menu.hide()
		return nil
	case m.panelOpen:
		visible := m.visibleRows()
		if row >= 0 && row < len(visible) {
			return m.accept(visible[row])
		}
		m.panelOpen = false
	}
	return nil
}

// runeOffset converts a display column into a rune offset within s.
func runeOffset(s string, col int) int {
	w := 0
	for i, r := range []rune(s) {
		rw := runewidth.RuneWidth(r)
		if w+rw > col {
			return i
		}
		w += rw
	}
	return len([]rune(s))
}
