// Package composer is the editing controller: a bubbletea model that owns
// the fragment sequence, the live input, and the suggestion state.
package composer

import (
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/oakwood-commons/qcompose/internal/caret"
	"github.com/oakwood-commons/qcompose/internal/completion"
	"github.com/oakwood-commons/qcompose/internal/limiter"
	"github.com/oakwood-commons/qcompose/internal/query"
	"github.com/oakwood-commons/qcompose/internal/ui"
	"github.com/oakwood-commons/qcompose/pkg/logger"
)

// ErrNoRenderer is returned by New when no renderer is supplied.
var ErrNoRenderer = errors.New("composer: renderer is required")

// Default placeholders for the live input.
const (
	PlaceholderEmpty    = "Type to search, / for commands"
	PlaceholderContinue = "Add another filter..."
)

// Options configures a composer.
type Options struct {
	Catalog  *completion.Catalog
	Renderer ui.Renderer
	Theme    ui.Theme
	KeyMap   *ui.KeyMap

	// MaxSuggestions bounds the visible suggestion rows; 0 shows all.
	MaxSuggestions int
	FuzzyFallback  bool

	PlaceholderEmpty    string
	PlaceholderContinue string
	// CopiedLabel is how long "Copied!" stays visible after a copy.
	CopiedLabel time.Duration

	Width  int
	Height int

	Logger *logr.Logger
}

// Model is the composer. It is used through a pointer.
type Model struct {
	seq    *query.Sequence
	router *caret.Router
	engine *completion.Engine

	input  textinput.Model // live input
	editor textinput.Model // text of the token holding the caret
	loc    caret.Location

	hovered   int
	active    completion.Result
	sel       completion.Selection
	window    limiter.Window
	panelOpen bool

	menu        contextMenu
	status      string
	copied      bool
	copySeq     int
	copiedLabel time.Duration

	helpVisible bool
	keys        ui.KeyMap
	help        help.Model

	renderer ui.Renderer
	theme    ui.Theme
	fuzzy    bool

	placeholderEmpty    string
	placeholderContinue string

	width  int
	height int

	lgr     logr.Logger
	session string

	submitted bool
	cancelled bool
}

// New builds a composer. It fails when opts.Renderer is nil: every view
// assumes a rendering surface exists.
func New(opts Options) (*Model, error) {
	lgr := *logger.GetNoopLogger()
	if opts.Logger != nil {
		lgr = *opts.Logger
	}
	session := uuid.NewString()
	lgr = lgr.WithValues(logger.SessionKey, session)

	if opts.Renderer == nil {
		lgr.Error(ErrNoRenderer, "composer not started")
		return nil, ErrNoRenderer
	}

	keys := ui.DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}

	m := &Model{
		seq:                 query.NewSequence(),
		engine:              completion.NewEngine(opts.Catalog, completion.WithFuzzyFallback(opts.FuzzyFallback)),
		hovered:             caret.NoHover,
		window:              limiter.NewWindow(opts.MaxSuggestions),
		menu:                newContextMenu(),
		copiedLabel:         opts.CopiedLabel,
		keys:                keys,
		help:                newHelp(opts.Theme),
		renderer:            opts.Renderer,
		theme:               opts.Theme,
		fuzzy:               opts.FuzzyFallback,
		placeholderEmpty:    orDefault(opts.PlaceholderEmpty, PlaceholderEmpty),
		placeholderContinue: orDefault(opts.PlaceholderContinue, PlaceholderContinue),
		width:               opts.Width,
		height:              opts.Height,
		lgr:                 lgr,
		session:             session,
	}
	if m.copiedLabel <= 0 {
		m.copiedLabel = time.Second
	}
	m.router = caret.NewRouter(m.seq)
	m.input = newTextInput()
	m.input.SetWidth(80)
	m.editor = newTextInput() // unbounded so the pill hugs its text
	m.input.Focus()
	m.resize()
	m.refresh()

	lgr.V(1).Info("composer started", "catalog_size", m.engine.Catalog().Size())
	return m, nil
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0 // no limit
	return ti
}

func newHelp(theme ui.Theme) help.Model {
	h := help.New()
	if theme.IsPlain() {
		h.Styles = help.Styles{}
		return h
	}
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKey)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpValue)
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = descStyle
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = descStyle
	h.Styles.FullSeparator = descStyle
	return h
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Result returns the serialized query: fragments joined by single spaces,
// then the pending live text.
func (m *Model) Result() string {
	return m.seq.Serialize(m.input.Value())
}

// Submitted reports whether the user submitted the query with enter.
func (m *Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user cancelled with ctrl+c.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Fragments returns a copy of the committed fragments.
func (m *Model) Fragments() []query.Fragment {
	return m.seq.Fragments()
}

// LiveText returns the uncommitted input text.
func (m *Model) LiveText() string {
	return m.input.Value()
}

// Suggestions returns the current category and items.
func (m *Model) Suggestions() completion.Result {
	return m.active
}

// SelectedIndex returns the highlighted suggestion or completion.NoSelection.
func (m *Model) SelectedIndex() int {
	return m.sel.Index()
}

// PanelOpen reports whether the suggestion panel is visible.
func (m *Model) PanelOpen() bool {
	return m.panelOpen
}

// Caret returns the caret location.
func (m *Model) Caret() caret.Location {
	return m.loc
}

// Hovered returns the fragment index under the pointer, or caret.NoHover.
func (m *Model) Hovered() int {
	return m.hovered
}

// Session returns the id attached to this composer's log lines.
func (m *Model) Session() string {
	return m.session
}

// Clear resets fragments and live text and re-seeds the initial suggestions.
func (m *Model) Clear() tea.Cmd {
	m.seq.Clear()
	m.input.SetValue("")
	m.hovered = caret.NoHover
	cmd := m.setCaret(caret.Input())
	m.refresh()
	m.lgr.V(1).Info("composer cleared")
	return cmd
}

// refresh re-evaluates the suggestions for the current live text and opens
// the panel with nothing selected.
func (m *Model) refresh() {
	m.showResult(m.engine.Evaluate(m.input.Value(), m.seq.Empty()))
	m.updatePlaceholder()
}

func (m *Model) showResult(r completion.Result) {
	m.active = r
	m.sel.Reset(r.Len())
	m.window.Reset()
	m.panelOpen = true
}

func (m *Model) updatePlaceholder() {
	if m.seq.Empty() {
		m.input.Placeholder = m.placeholderEmpty
		return
	}
	m.input.Placeholder = m.placeholderContinue
}

// setCaret moves the caret to loc, loading the token editor when loc is a
// token. Stale locations land on the live input.
func (m *Model) setCaret(loc caret.Location) tea.Cmd {
	loc = m.router.Normalize(loc)
	m.loc = loc
	i, edge, ok := loc.Token()
	if !ok {
		m.editor.Blur()
		return m.input.Focus()
	}
	f, _ := m.seq.At(i)
	m.input.Blur()
	m.editor.SetValue(f.Text)
	if edge == caret.EdgeStart {
		m.editor.SetCursor(0)
	} else {
		m.editor.CursorEnd()
	}
	return m.editor.Focus()
}

func (m *Model) resize() {
	if m.width <= 0 {
		return
	}
	m.input.SetWidth(max(m.width/2, 20))
}
