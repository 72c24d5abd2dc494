package composer

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/qcompose/internal/ui"
)

// SnapshotOptions controls a non-interactive render.
type SnapshotOptions struct {
	// StartKeys are fed through Update before rendering (see
	// ui.StartupKeyMsgs for the token syntax).
	StartKeys []string
	// NoColor strips ANSI sequences from the output.
	NoColor bool
}

// RenderSnapshot replays the start keys and returns a single frame.
func (m *Model) RenderSnapshot(opts SnapshotOptions) string {
	for _, msg := range ui.StartupKeyMsgs(opts.StartKeys) {
		// Commands are dropped, so a clipboard copy never reaches the system.
		m.Update(msg)
	}
	out := m.body()
	if opts.NoColor {
		out = ansi.Strip(out)
	}
	m.lgr.V(1).Info("snapshot rendered", "keys", len(opts.StartKeys))
	return out
}
