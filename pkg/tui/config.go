package tui

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/qcompose/internal/completion"
	"github.com/oakwood-commons/qcompose/internal/config"
	"github.com/oakwood-commons/qcompose/internal/ui"
)

// Catalog types re-exported for host programs.
type (
	Catalog       = completion.Catalog
	CatalogSource = completion.CatalogSource
	Item          = completion.Item
	Theme         = ui.Theme
)

// NewCatalog builds an immutable catalog from src.
func NewCatalog(src CatalogSource) *Catalog {
	return completion.NewCatalog(src)
}

// Config holds host-provided settings for running the composer.
type Config struct {
	Catalog *Catalog

	// Theme wins over ThemeName when set.
	Theme     *Theme
	ThemeName string
	NoColor   bool

	Width  int
	Height int

	// StartKeys are replayed before the first frame (e.g. "status:active<Space>").
	StartKeys []string

	MaxSuggestions      int
	FuzzyFallback       bool
	PlaceholderEmpty    string
	PlaceholderContinue string
	CopiedLabel         time.Duration

	// Reload, when set, swaps the catalog each time a new one arrives.
	Reload <-chan *Catalog

	Logger *logr.Logger
}

// DefaultConfig returns the settings of the embedded default configuration.
func DefaultConfig() Config {
	file, err := config.Default()
	if err != nil {
		return Config{}
	}
	return FromFile(file)
}

// FromFile maps a loaded configuration file onto a Config.
func FromFile(file config.File) Config {
	return Config{
		Catalog:             file.BuildCatalog(),
		ThemeName:           file.UI.Theme,
		MaxSuggestions:      file.UI.MaxSuggestionRows(),
		FuzzyFallback:       file.UI.Fuzzy(),
		PlaceholderEmpty:    file.UI.Placeholder.Empty,
		PlaceholderContinue: file.UI.Placeholder.Continue,
		CopiedLabel:         file.UI.CopiedLabelDuration(),
	}
}

// resolveTheme picks the theme for cfg from the embedded themes.
func (c Config) resolveTheme() (Theme, error) {
	if c.NoColor {
		return ui.PlainTheme(), nil
	}
	if c.Theme != nil {
		return *c.Theme, nil
	}
	file, err := config.Default()
	if err != nil {
		return Theme{}, err
	}
	return ui.LoadTheme(file, c.ThemeName, false)
}
