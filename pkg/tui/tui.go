// Package tui embeds the query composer in host programs.
package tui

import (
	"context"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"github.com/oakwood-commons/qcompose/internal/ui"
	"github.com/oakwood-commons/qcompose/internal/ui/composer"
)

// ErrCancelled is returned by Run when the user leaves without submitting.
var ErrCancelled = errors.New("composer cancelled")

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// NewModel builds a composer model from cfg with its start keys applied.
func NewModel(cfg Config) (*composer.Model, error) {
	theme, err := cfg.resolveTheme()
	if err != nil {
		return nil, err
	}
	return composer.New(composer.Options{
		Catalog:             cfg.Catalog,
		Renderer:            ui.NewStyledRenderer(theme),
		Theme:               theme,
		MaxSuggestions:      cfg.MaxSuggestions,
		FuzzyFallback:       cfg.FuzzyFallback,
		PlaceholderEmpty:    cfg.PlaceholderEmpty,
		PlaceholderContinue: cfg.PlaceholderContinue,
		CopiedLabel:         cfg.CopiedLabel,
		Width:               cfg.Width,
		Height:              cfg.Height,
		Logger:              cfg.Logger,
	})
}

// Run starts the composer and returns the submitted query. Host applications
// can pass tea.ProgramOption values to control IO.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) (string, error) {
	m, err := NewModel(cfg)
	if err != nil {
		return "", err
	}
	ui.ApplyStartupKeys(m, cfg.StartKeys)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)
	if cfg.Reload != nil {
		go forwardReloads(p, cfg.Reload, done)
	}

	final, err := p.Run()
	if err != nil {
		return "", errors.Wrap(err, "run composer")
	}
	fm, ok := final.(*composer.Model)
	if !ok {
		return "", errors.Newf("unexpected model type %T", final)
	}
	return outcome(fm)
}

// forwardReloads sends each reloaded catalog into the program until reloads
// closes or the program exits.
func forwardReloads(p *tea.Program, reloads <-chan *Catalog, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case c, ok := <-reloads:
			if !ok {
				return
			}
			p.Send(composer.CatalogReloadedMsg{Catalog: c})
		}
	}
}

func outcome(m *composer.Model) (string, error) {
	if !m.Submitted() {
		return "", ErrCancelled
	}
	return m.Result(), nil
}

// RenderSnapshot renders a single frame after replaying cfg.StartKeys.
func RenderSnapshot(cfg Config) (string, error) {
	m, err := NewModel(cfg)
	if err != nil {
		return "", err
	}
	return m.RenderSnapshot(composer.SnapshotOptions{
		StartKeys: cfg.StartKeys,
		NoColor:   cfg.NoColor,
	}), nil
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
