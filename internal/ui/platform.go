package ui

import (
	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
)

// copyToClipboardFn is the active clipboard implementation. Tests replace it
// via StubPlatformActions to prevent side effects.
var copyToClipboardFn = copyToClipboardImpl

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// StubPlatformActions replaces the clipboard with a no-op and returns a
// restore function.
func StubPlatformActions() (restore func()) {
	return SetClipboardFunc(func(string) error { return nil })
}

// SetClipboardFunc swaps the clipboard implementation and returns a restore
// function. A nil fn restores the system clipboard.
func SetClipboardFunc(fn func(string) error) (restore func()) {
	orig := copyToClipboardFn
	if fn == nil {
		fn = copyToClipboardImpl
	}
	copyToClipboardFn = fn
	return func() {
		copyToClipboardFn = orig
	}
}

func copyToClipboardImpl(text string) error {
	if clipboard.Unsupported {
		return errors.WithHint(errors.New("clipboard is not available"),
			"install xclip, xsel, or wl-clipboard")
	}
	return errors.Wrap(clipboard.WriteAll(text), "write clipboard")
}
