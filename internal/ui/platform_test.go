package ui

import (
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain stubs the clipboard so that no test in the ui package can touch
// the real one.
func TestMain(m *testing.M) {
	restore := StubPlatformActions()
	code := m.Run()
	restore()
	os.Exit(code)
}

func TestSetClipboardFunc(t *testing.T) {
	var got string
	restore := SetClipboardFunc(func(s string) error {
		got = s
		return nil
	})
	require.NoError(t, CopyToClipboard("status:active"))
	assert.Equal(t, "status:active", got)

	restore()
	got = ""
	require.NoError(t, CopyToClipboard("ignored"))
	assert.Empty(t, got, "restore brings back the stub installed by TestMain")
}

func TestClipboardErrorPropagates(t *testing.T) {
	restore := SetClipboardFunc(func(string) error { return errors.New("no display") })
	defer restore()
	assert.EqualError(t, CopyToClipboard("x"), "no display")
}
