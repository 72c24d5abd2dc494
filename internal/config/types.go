// Package config loads the suggestion catalog and UI settings from the
// embedded defaults merged with an optional user file.
package config

import (
	"time"

	"github.com/oakwood-commons/qcompose/internal/completion"
)

// File is the on-disk configuration layout.
type File struct {
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog" json:"catalog"`
	UI      UIConfig      `yaml:"ui" toml:"ui" json:"ui"`
}

// CatalogConfig lists the suggestion sources.
type CatalogConfig struct {
	Filters      []FilterEntry `yaml:"filters,omitempty" toml:"filters,omitempty" json:"filters,omitempty"`
	Combinations []Entry       `yaml:"combinations,omitempty" toml:"combinations,omitempty" json:"combinations,omitempty"`
	History      []Entry       `yaml:"history,omitempty" toml:"history,omitempty" json:"history,omitempty"`
	Views        []Entry       `yaml:"views,omitempty" toml:"views,omitempty" json:"views,omitempty"`
	Commands     []Entry       `yaml:"commands,omitempty" toml:"commands,omitempty" json:"commands,omitempty"`
}

// FilterEntry is a key:value filter suggestion.
type FilterEntry struct {
	Key         string `yaml:"key" toml:"key" json:"key"`
	Value       string `yaml:"value" toml:"value" json:"value"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
}

// Entry is a suggestion whose value is the literal fragment text.
type Entry struct {
	Value       string `yaml:"value" toml:"value" json:"value"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
}

// UIConfig holds presentation settings. Pointer fields distinguish "unset"
// from the zero value when merging.
type UIConfig struct {
	Theme          string                 `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty"`
	MaxSuggestions *int                   `yaml:"max_suggestions,omitempty" toml:"max_suggestions,omitempty" json:"max_suggestions,omitempty"`
	FuzzyFallback  *bool                  `yaml:"fuzzy_fallback,omitempty" toml:"fuzzy_fallback,omitempty" json:"fuzzy_fallback,omitempty"`
	CopiedLabel    string                 `yaml:"copied_label,omitempty" toml:"copied_label,omitempty" json:"copied_label,omitempty"`
	Placeholder    PlaceholderConfig      `yaml:"placeholder,omitempty" toml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Themes         map[string]ThemeConfig `yaml:"themes,omitempty" toml:"themes,omitempty" json:"themes,omitempty"`
}

// PlaceholderConfig holds the live input placeholders.
type PlaceholderConfig struct {
	Empty    string `yaml:"empty,omitempty" toml:"empty,omitempty" json:"empty,omitempty"`
	Continue string `yaml:"continue,omitempty" toml:"continue,omitempty" json:"continue,omitempty"`
}

// ThemeConfig is a color palette. Values are lipgloss color strings (ANSI
// numbers or hex).
type ThemeConfig struct {
	TokenFG       string `yaml:"token_fg,omitempty" toml:"token_fg,omitempty" json:"token_fg,omitempty"`
	TokenBG       string `yaml:"token_bg,omitempty" toml:"token_bg,omitempty" json:"token_bg,omitempty"`
	OperatorFG    string `yaml:"operator_fg,omitempty" toml:"operator_fg,omitempty" json:"operator_fg,omitempty"`
	OperatorBG    string `yaml:"operator_bg,omitempty" toml:"operator_bg,omitempty" json:"operator_bg,omitempty"`
	BracketFG     string `yaml:"bracket_fg,omitempty" toml:"bracket_fg,omitempty" json:"bracket_fg,omitempty"`
	FocusFG       string `yaml:"focus_fg,omitempty" toml:"focus_fg,omitempty" json:"focus_fg,omitempty"`
	FocusBG       string `yaml:"focus_bg,omitempty" toml:"focus_bg,omitempty" json:"focus_bg,omitempty"`
	HoverBG       string `yaml:"hover_bg,omitempty" toml:"hover_bg,omitempty" json:"hover_bg,omitempty"`
	InputFG       string `yaml:"input_fg,omitempty" toml:"input_fg,omitempty" json:"input_fg,omitempty"`
	PlaceholderFG string `yaml:"placeholder_fg,omitempty" toml:"placeholder_fg,omitempty" json:"placeholder_fg,omitempty"`
	CategoryFG    string `yaml:"category_fg,omitempty" toml:"category_fg,omitempty" json:"category_fg,omitempty"`
	SelectedFG    string `yaml:"selected_fg,omitempty" toml:"selected_fg,omitempty" json:"selected_fg,omitempty"`
	SelectedBG    string `yaml:"selected_bg,omitempty" toml:"selected_bg,omitempty" json:"selected_bg,omitempty"`
	DescriptionFG string `yaml:"description_fg,omitempty" toml:"description_fg,omitempty" json:"description_fg,omitempty"`
	Border        string `yaml:"border,omitempty" toml:"border,omitempty" json:"border,omitempty"`
	StatusSuccess string `yaml:"status_success,omitempty" toml:"status_success,omitempty" json:"status_success,omitempty"`
	StatusError   string `yaml:"status_error,omitempty" toml:"status_error,omitempty" json:"status_error,omitempty"`
	HelpKey       string `yaml:"help_key,omitempty" toml:"help_key,omitempty" json:"help_key,omitempty"`
	HelpValue     string `yaml:"help_value,omitempty" toml:"help_value,omitempty" json:"help_value,omitempty"`
}

const (
	defaultMaxSuggestions = 8
	defaultCopiedLabel    = time.Second
)

// BuildCatalog builds the immutable suggestion catalog. An empty commands
// list falls back to the built-in slash commands.
func (f File) BuildCatalog() *completion.Catalog {
	c := f.Catalog
	src := completion.CatalogSource{}
	for _, e := range c.Filters {
		src.Filters = append(src.Filters, completion.Item{Key: e.Key, Value: e.Value, Description: e.Description})
	}
	src.Combinations = entries(c.Combinations)
	src.History = entries(c.History)
	src.Views = entries(c.Views)
	if len(c.Commands) > 0 {
		src.Commands = entries(c.Commands)
	}
	return completion.NewCatalog(src)
}

func entries(in []Entry) []completion.Item {
	if len(in) == 0 {
		return nil
	}
	out := make([]completion.Item, 0, len(in))
	for _, e := range in {
		out = append(out, completion.Item{Value: e.Value, Description: e.Description})
	}
	return out
}

// MaxSuggestionRows returns the visible suggestion row limit; 0 means no limit.
func (u UIConfig) MaxSuggestionRows() int {
	if u.MaxSuggestions == nil {
		return defaultMaxSuggestions
	}
	return *u.MaxSuggestions
}

// Fuzzy reports whether the fuzzy filter fallback is enabled.
func (u UIConfig) Fuzzy() bool {
	return u.FuzzyFallback != nil && *u.FuzzyFallback
}

// CopiedLabelDuration returns how long the "Copied!" label stays visible.
func (u UIConfig) CopiedLabelDuration() time.Duration {
	d, err := time.ParseDuration(u.CopiedLabel)
	if err != nil || d <= 0 {
		return defaultCopiedLabel
	}
	return d
}
