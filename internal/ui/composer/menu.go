package composer

import (
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/cockroachdb/errors"

	"github.com/oakwood-commons/qcompose/internal/ui"
)

// menuAction is an entry of the context menu.
type menuAction int

const (
	actionCopy menuAction = iota
	actionClear
)

// Context menu labels.
const (
	LabelCopy   = "Copy Content"
	LabelCopied = "Copied!"
	LabelClear  = "Clear All"
)

type contextMenu struct {
	open     bool
	actions  []menuAction
	selected int
}

func newContextMenu() contextMenu {
	return contextMenu{actions: []menuAction{actionCopy, actionClear}}
}

func (c *contextMenu) show() {
	c.open = true
	c.selected = 0
}

func (c *contextMenu) hide() {
	c.open = false
}

func (c *contextMenu) move(delta int) {
	c.selected = min(max(c.selected+delta, 0), len(c.actions)-1)
}

// labels returns the visible labels; the copy entry reads "Copied!" while the
// confirmation is showing.
func (c *contextMenu) labels(copied bool) []string {
	out := make([]string, len(c.actions))
	for i, a := range c.actions {
		switch a {
		case actionCopy:
			out[i] = LabelCopy
			if copied {
				out[i] = LabelCopied
			}
		case actionClear:
			out[i] = LabelClear
		}
	}
	return out
}

func (m *Model) openMenu() {
	m.menu.show()
	m.panelOpen = false
	m.lgr.V(2).Info("context menu opened")
}

// handleMenuKey drives the open menu. Keys it does not use fall through to
// the normal handling.
func (m *Model) handleMenuKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menu.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.menu.move(1)
	case key.Matches(msg, m.keys.Accept):
		return m.activate(m.menu.actions[m.menu.selected]), true
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
		m.menu.hide()
	default:
		return nil, false
	}
	return nil, true
}

// activate runs a menu action. Copy keeps the menu open so the label can
// confirm; Clear closes it.
func (m *Model) activate(a menuAction) tea.Cmd {
	switch a {
	case actionCopy:
		return m.copyQuery()
	case actionClear:
		m.menu.hide()
		return m.Clear()
	}
	return nil
}

// copyQuery writes the serialized query to the clipboard.
func (m *Model) copyQuery() tea.Cmd {
	text := m.Result()
	return func() tea.Msg {
		return clipboardResultMsg{err: ui.CopyToClipboard(text)}
	}
}

// handleCopied shows the "Copied!" label for copiedLabel. Each copy gets a
// sequence number so only the latest timer clears the label.
func (m *Model) handleCopied(msg clipboardResultMsg) tea.Cmd {
	if msg.err != nil {
		m.lgr.Error(msg.err, "copy to clipboard failed")
		m.status = statusText(msg.err)
		return nil
	}
	m.status = ""
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	m.lgr.V(1).Info("query copied")
	return tea.Tick(m.copiedLabel, func(time.Time) tea.Msg {
		return copiedExpiredMsg{seq: seq}
	})
}

// statusText renders err and its hints for the footer.
func statusText(err error) string {
	if hint := errors.FlattenHints(err); hint != "" {
		return err.Error() + " (" + hint + ")"
	}
	return err.Error()
}
