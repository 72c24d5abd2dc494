package tui

import "github.com/oakwood-commons/qcompose/internal/ui"

// CopyToClipboard copies text to the system clipboard, the same way the
// composer's "Copy Content" action does.
func CopyToClipboard(text string) error {
	return ui.CopyToClipboard(text)
}
