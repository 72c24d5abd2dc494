package composer

import (
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/qcompose/internal/caret"
	"github.com/oakwood-commons/qcompose/internal/completion"
	"github.com/oakwood-commons/qcompose/internal/query"
)

// CatalogReloadedMsg swaps in a new catalog, e.g. after the config file
// changed on disk.
type CatalogReloadedMsg struct {
	Catalog *completion.Catalog
}

// clipboardResultMsg reports the outcome of a copy.
type clipboardResultMsg struct {
	err error
}

// copiedExpiredMsg hides the "Copied!" label set by copy number seq.
type copiedExpiredMsg struct {
	seq int
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case tea.MouseClickMsg:
		return m, m.handleClick(msg.Mouse())
	case tea.MouseMotionMsg:
		m.handleMotion(msg.Mouse())
		return m, nil
	case clipboardResultMsg:
		return m, m.handleCopied(msg)
	case copiedExpiredMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil
	case CatalogReloadedMsg:
		m.engine = completion.NewEngine(msg.Catalog, completion.WithFuzzyFallback(m.fuzzy))
		m.lgr.Info("catalog reloaded", "catalog_size", m.engine.Catalog().Size())
		if m.panelOpen {
			m.refresh()
		}
		return m, nil
	}
	return m, m.forwardToHost(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.cancelled = true
		m.lgr.V(1).Info("composer cancelled")
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.helpVisible = !m.helpVisible
		return nil
	}
	if m.helpVisible && key.Matches(msg, m.keys.Close) {
		m.helpVisible = false
		return nil
	}
	if m.menu.open {
		if cmd, handled := m.handleMenuKey(msg); handled {
			return cmd
		}
	}
	if key.Matches(msg, m.keys.Menu) {
		m.openMenu()
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if !m.panelOpen {
			m.refresh()
			return nil
		}
		m.sel.Down()
		m.window.Follow(m.sel.Index(), m.active.Len())
		return nil
	case key.Matches(msg, m.keys.Up):
		if m.panelOpen {
			m.sel.Up()
			m.window.Follow(m.sel.Index(), m.active.Len())
		}
		return nil
	case key.Matches(msg, m.keys.Accept):
		if item, ok := m.selectedItem(); ok {
			return m.accept(item)
		}
		m.submitted = true
		m.lgr.V(1).Info("query submitted", "query", m.Result())
		return tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.panelOpen = false
		return nil
	case key.Matches(msg, m.keys.DeleteToken):
		return m.route(caret.KeyDeleteToken, msg)
	}

	switch msg.Code {
	case tea.KeyBackspace:
		if msg.Mod == 0 {
			return m.route(caret.KeyBackspace, msg)
		}
	case tea.KeyLeft:
		if msg.Mod == 0 {
			return m.route(caret.KeyLeft, msg)
		}
	case tea.KeyRight:
		if msg.Mod == 0 {
			return m.route(caret.KeyRight, msg)
		}
	}
	return m.forwardToHost(msg)
}

// route hands a caret key to the router and forwards it to the caret host
// when the router does not consume it.
func (m *Model) route(k caret.Key, msg tea.KeyPressMsg) tea.Cmd {
	host := m.host()
	ev := caret.Event{
		Key:     k,
		Offset:  host.Position(),
		TextLen: utf8.RuneCountInString(host.Value()),
		Hovered: m.hovered,
	}
	before := m.seq.Len()
	next, consumed := m.router.Route(m.loc, ev)
	if !consumed {
		if k == caret.KeyDeleteToken {
			return nil
		}
		return m.forwardToHost(msg)
	}
	if m.seq.Len() == before {
		if next == m.loc {
			return nil
		}
	} else {
		// indices shifted; whatever the pointer was over is gone or moved
		m.hovered = caret.NoHover
		m.updatePlaceholder()
	}
	m.lgr.V(2).Info("caret moved", "from", m.loc.String(), "to", next.String())
	return m.setCaret(next)
}

// forwardToHost passes msg to whichever text input holds the caret.
func (m *Model) forwardToHost(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if i, _, ok := m.loc.Token(); ok {
		m.editor, cmd = m.editor.Update(msg)
		m.seq.SetText(i, m.editor.Value())
		return cmd
	}
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.liveTextChanged()
	}
	return cmd
}

// liveTextChanged applies the commit rules to the live text and re-evaluates
// the suggestions.
func (m *Model) liveTextChanged() {
	text := m.input.Value()
	if c := query.Classify(text); c.Committed() {
		if c.Apply(m.seq) {
			m.lgr.V(1).Info("fragment committed", "text", c.Fragment.String())
		}
		m.input.SetValue("")
	}
	m.refresh()
}

// accept applies a suggestion: filters append, combinations, history and
// views replace the sequence, commands open their list.
func (m *Model) accept(item completion.Item) tea.Cmd {
	m.lgr.V(1).Info("suggestion accepted", "kind", item.Kind.String(), "text", item.Text())
	m.input.SetValue("")
	switch {
	case item.Kind == completion.ItemCommand:
		if r, ok := m.engine.CommandTarget(item); ok {
			m.showResult(r)
		}
		return m.setCaret(caret.Input())
	case item.Kind.BulkReplaces():
		m.seq.ReplaceAll(query.SplitValue(item.Value))
		m.hovered = caret.NoHover
	default:
		m.seq.Append(item.Text(), query.TokenFilter)
	}
	cmd := m.setCaret(caret.Input())
	m.refresh()
	return cmd
}

func (m *Model) selectedItem() (completion.Item, bool) {
	if !m.panelOpen || m.helpVisible {
		return completion.Item{}, false
	}
	return m.active.Item(m.sel.Index())
}

// host returns the text input currently holding the caret.
func (m *Model) host() *textinput.Model {
	if m.loc.IsInput() {
		return &m.input
	}
	return &m.editor
}
