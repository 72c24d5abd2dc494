package cmd

import (
	"os"
	"testing"

	"github.com/oakwood-commons/qcompose/internal/ui"
)

// TestMain stubs the clipboard so that no test in the cmd package can write
// to the real one.
func TestMain(m *testing.M) {
	restore := ui.StubPlatformActions()
	code := m.Run()
	restore()
	os.Exit(code)
}
