package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams()
	want := &Run{
		MinLogLevel: 0,
		LogOutput:   "discard",
		Interactive: true,
	}
	assert.Equal(t, want, got)
}

func TestIsInteractive(t *testing.T) {
	var nilRun *Run
	assert.False(t, nilRun.IsInteractive())
	assert.True(t, NewCliParams().IsInteractive())
	assert.False(t, (&Run{}).IsInteractive())
}

func TestContextRoundTrip(t *testing.T) {
	run := NewCliParams()
	run.CatalogPath = "/tmp/catalog.yaml"

	ctx := IntoContext(context.Background(), run)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, run, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestVersionInformationDefaults(t *testing.T) {
	assert.Equal(t, "unknown", VersionInformation.Commit)
	assert.NotEmpty(t, VersionInformation.BuildVersion)
	assert.Equal(t, "qcompose", CliBinaryName)
}

func TestFromContextOrDefault(t *testing.T) {
	got := FromContextOrDefault(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "discard", got.LogOutput)

	run := &Run{LogOutput: "stderr"}
	got = FromContextOrDefault(IntoContext(context.Background(), run))
	assert.Same(t, run, got)
}
