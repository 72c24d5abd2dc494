package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/qcompose/pkg/logger"
	"github.com/oakwood-commons/qcompose/pkg/tui"
)

func resetFlags() {
	catalogPath = ""
	themeName = ""
	noColor = false
	debug = false
	watch = false
	renderSnapshot = false
	startKeys = nil
	snapshotWidth = 0
	snapshotHeight = 0
	logFile = ""
	catalogOutput = "yaml"
	catalogFull = false
	for _, c := range []*cobra.Command{rootCmd, catalogCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "qcompose "), out)
}

func TestCatalogDefaultYAML(t *testing.T) {
	out, err := runCLI(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "filters:")
	assert.Contains(t, out, "key: status")
	assert.NotContains(t, out, "themes:")
}

func TestCatalogMergesTOMLAsJSON(t *testing.T) {
	path := writeFile(t, "catalog.toml", `
[[catalog.filters]]
key = "team"
value = "core"
description = "Core team"
`)
	out, err := runCLI(t, "catalog", "--catalog", path, "-o", "json")
	require.NoError(t, err)

	var got struct {
		Catalog struct {
			Filters []struct {
				Key   string `json:"key"`
				Value string `json:"value"`
			} `json:"filters"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	var keys []string
	for _, f := range got.Catalog.Filters {
		keys = append(keys, f.Key+":"+f.Value)
	}
	assert.Contains(t, keys, "team:core")
}

func TestCatalogFullIncludesThemes(t *testing.T) {
	out, err := runCLI(t, "catalog", "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "themes:")
}

func TestCatalogUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "catalog", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, ErrorMessage(err), "hint: use one of: yaml, json, toml")
}

func TestCatalogMissingFile(t *testing.T) {
	_, err := runCLI(t, "catalog", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitError, ExitCode(err))
}

func TestThemesCommand(t *testing.T) {
	out, err := runCLI(t, "themes")
	require.NoError(t, err)
	assert.Equal(t, "* dark\n  light\n  mono\n", out)
}

func TestSnapshot(t *testing.T) {
	out, err := runCLI(t, "--snapshot", "--no-color", "--width", "80", "--height", "20",
		"--press", "status:active<Space>", "--press", "and<Space>")
	require.NoError(t, err)
	first, _, _ := strings.Cut(out, "\n")
	assert.True(t, strings.HasPrefix(first, "> [status:active] [AND]"), first)
}

func TestUnknownThemeHasHint(t *testing.T) {
	_, err := runCLI(t, "--snapshot", "--theme", "neon")
	require.Error(t, err)
	assert.Contains(t, ErrorMessage(err), "available themes: dark, light, mono")
}

func TestWatchNeedsConfigFile(t *testing.T) {
	_, err := runCLI(t, "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs a config file")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitCancelled, ExitCode(errors.Wrap(errCancelled, "run")))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))
	assert.Empty(t, ErrorMessage(errCancelled))
	assert.Equal(t, "error: boom", ErrorMessage(errors.New("boom")))
}

func TestResolveSnapshotSize(t *testing.T) {
	w, h := resolveSnapshotSize(90, 30)
	assert.Equal(t, 90, w)
	assert.Equal(t, 30, h)

	w, _ = resolveSnapshotSize(0, 30)
	assert.Positive(t, w)
}

func TestGetProgramOptionsRedirectedUsesTTY(t *testing.T) {
	origIsTerminal, origOpen := isTerminal, openTerminalIOFn
	defer func() {
		isTerminal, openTerminalIOFn = origIsTerminal, origOpen
	}()
	isTerminal = func(*os.File) bool { return false }

	inFile, err := os.CreateTemp(t.TempDir(), "tty-in-*")
	require.NoError(t, err)
	outFile, err := os.CreateTemp(t.TempDir(), "tty-out-*")
	require.NoError(t, err)
	openTerminalIOFn = func() (*os.File, *os.File, error) { return inFile, outFile, nil }

	opts, cleanup := getProgramOptions()
	assert.Len(t, opts, 2)
	cleanup()
	require.Error(t, inFile.Close(), "cleanup closes the input")
	require.Error(t, outFile.Close(), "cleanup closes the output")
}

func TestGetProgramOptionsTerminalUsesDefaults(t *testing.T) {
	origIsTerminal, origOpen := isTerminal, openTerminalIOFn
	defer func() {
		isTerminal, openTerminalIOFn = origIsTerminal, origOpen
	}()
	isTerminal = func(*os.File) bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("should not be called")
	}

	opts, cleanup := getProgramOptions()
	assert.Nil(t, opts)
	assert.NotPanics(t, cleanup)
}

func TestGetProgramOptionsNoTTYFallsBack(t *testing.T) {
	origIsTerminal, origOpen := isTerminal, openTerminalIOFn
	defer func() {
		isTerminal, openTerminalIOFn = origIsTerminal, origOpen
	}()
	isTerminal = func(*os.File) bool { return false }
	openTerminalIOFn = func() (*os.File, *os.File, error) { return nil, nil, os.ErrNotExist }

	opts, _ := getProgramOptions()
	assert.Nil(t, opts)
}

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)
	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func TestPublishKeepsNewest(t *testing.T) {
	ch := make(chan *tui.Catalog, 1)
	first := tui.NewCatalog(tui.CatalogSource{})
	second := tui.NewCatalog(tui.CatalogSource{Filters: []tui.Item{{Key: "a", Value: "b"}}})
	publish(ch, first)
	publish(ch, second)
	assert.Same(t, second, <-ch)
}

func TestStartWatcherDeliversReloads(t *testing.T) {
	path := writeFile(t, "config.yaml", "catalog: {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	reloads, wait := startWatcher(ctx, path, *logger.GetNoopLogger())
	defer func() {
		cancel()
		wait()
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-reloads:
			assert.Contains(t, c.FilterKeys(), "team")
			return
		case <-tick.C:
			// the watcher debounces; replace the file atomically so no
			// reload can observe a half-written one
			body := "catalog:\n  filters:\n    - key: team\n      value: core\n"
			require.NoError(t, os.WriteFile(path+".tmp", []byte(body), 0o600))
			require.NoError(t, os.Rename(path+".tmp", path))
		case <-deadline:
			t.Fatal("no reload delivered")
		}
	}
}
