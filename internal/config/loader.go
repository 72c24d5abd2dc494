package config

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/qcompose/internal/limiter"
	"github.com/oakwood-commons/qcompose/pkg/settings"
)

// Output formats accepted by Marshal.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ErrUnknownTheme is returned when the selected theme is not configured.
var ErrUnknownTheme = errors.New("unknown theme")

// Loader merges a user file over the embedded defaults.
type Loader struct {
	defaults func() (File, error)
}

// NewLoader returns a loader backed by the embedded defaults.
func NewLoader() Loader {
	return Loader{defaults: Default}
}

// Load is NewLoader().Load.
func Load(path string) (File, error) {
	return NewLoader().Load(path)
}

// Load reads the defaults and merges path over them. An empty path loads the
// defaults alone.
func (l Loader) Load(path string) (File, error) {
	base, err := l.defaults()
	if err != nil {
		return File{}, errors.Wrap(err, "load default config")
	}
	cfg := clone(base)
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.WithHintf(errors.Wrapf(err, "read config %s", path),
			"pass an existing file with --catalog or remove it from %s", DefaultPath())
	}
	user, err := Decode(path, data)
	if err != nil {
		return File{}, err
	}
	cfg = Merge(cfg, user)
	return cfg, cfg.Validate()
}

// Decode parses data as TOML when path ends in .toml, YAML otherwise.
func Decode(path string, data []byte) (File, error) {
	var f File
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return File{}, errors.WithHintf(errors.Wrapf(err, "decode config %s", path),
			"run `%s catalog` to see the expected layout", settings.CliBinaryName)
	}
	return f, nil
}

// Merge lays user over base. Non-empty catalog lists replace the base list
// of the same name; set UI values override; themes merge by name and field.
func Merge(base, user File) File {
	out := clone(base)

	if len(user.Catalog.Filters) > 0 {
		out.Catalog.Filters = user.Catalog.Filters
	}
	if len(user.Catalog.Combinations) > 0 {
		out.Catalog.Combinations = user.Catalog.Combinations
	}
	if len(user.Catalog.History) > 0 {
		out.Catalog.History = user.Catalog.History
	}
	if len(user.Catalog.Views) > 0 {
		out.Catalog.Views = user.Catalog.Views
	}
	if len(user.Catalog.Commands) > 0 {
		out.Catalog.Commands = user.Catalog.Commands
	}

	u := user.UI
	if u.Theme != "" {
		out.UI.Theme = u.Theme
	}
	if u.MaxSuggestions != nil {
		out.UI.MaxSuggestions = u.MaxSuggestions
	}
	if u.FuzzyFallback != nil {
		out.UI.FuzzyFallback = u.FuzzyFallback
	}
	if u.CopiedLabel != "" {
		out.UI.CopiedLabel = u.CopiedLabel
	}
	if u.Placeholder.Empty != "" {
		out.UI.Placeholder.Empty = u.Placeholder.Empty
	}
	if u.Placeholder.Continue != "" {
		out.UI.Placeholder.Continue = u.Placeholder.Continue
	}
	for name, theme := range u.Themes {
		out.UI.Themes[name] = mergeTheme(out.UI.Themes[name], theme)
	}
	return out
}

// Validate checks cross-field constraints.
func (f File) Validate() error {
	if f.UI.Theme != "" {
		if _, ok := f.UI.Themes[f.UI.Theme]; !ok {
			return errors.WithHintf(errors.Wrapf(ErrUnknownTheme, "theme %q", f.UI.Theme),
				"available themes: %s", strings.Join(f.ThemeNames(), ", "))
		}
	}
	if err := (limiter.Config{Limit: f.UI.MaxSuggestionRows()}).Validate(); err != nil {
		return errors.Wrap(err, "ui.max_suggestions")
	}
	for i, e := range f.Catalog.Filters {
		if strings.TrimSpace(e.Key) == "" {
			return errors.Newf("catalog.filters[%d]: key is required", i)
		}
	}
	return nil
}

// ThemeNames returns the configured theme names, sorted.
func (f File) ThemeNames() []string {
	names := make([]string, 0, len(f.UI.Themes))
	for name := range f.UI.Themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Marshal renders the file in the given format.
func Marshal(f File, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		out, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}
		return append(out, '\n'), nil
	case FormatTOML:
		out, err := toml.Marshal(f)
		if err != nil {
			return nil, errors.Wrap(err, "encode toml")
		}
		return out, nil
	default:
		return nil, errors.WithHint(errors.Newf("unknown output format %q", format),
			"use one of: yaml, json, toml")
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/qcompose/config.yaml, falling back to
// ~/.config/qcompose/config.yaml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	return ""
}

// ResolvePath returns explicit when set, otherwise DefaultPath when that file
// exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := DefaultPath()
	if candidate == "" {
		return ""
	}
	if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
		return candidate
	}
	return ""
}

func clone(f File) File {
	out := f
	out.Catalog.Filters = append([]FilterEntry(nil), f.Catalog.Filters...)
	out.Catalog.Combinations = append([]Entry(nil), f.Catalog.Combinations...)
	out.Catalog.History = append([]Entry(nil), f.Catalog.History...)
	out.Catalog.Views = append([]Entry(nil), f.Catalog.Views...)
	out.Catalog.Commands = append([]Entry(nil), f.Catalog.Commands...)
	out.UI.Themes = make(map[string]ThemeConfig, len(f.UI.Themes))
	maps.Copy(out.UI.Themes, f.UI.Themes)
	return out
}

func mergeTheme(base, over ThemeConfig) ThemeConfig {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.TokenFG, over.TokenFG)
	pick(&base.TokenBG, over.TokenBG)
	pick(&base.OperatorFG, over.OperatorFG)
	pick(&base.OperatorBG, over.OperatorBG)
	pick(&base.BracketFG, over.BracketFG)
	pick(&base.FocusFG, over.FocusFG)
	pick(&base.FocusBG, over.FocusBG)
	pick(&base.HoverBG, over.HoverBG)
	pick(&base.InputFG, over.InputFG)
	pick(&base.PlaceholderFG, over.PlaceholderFG)
	pick(&base.CategoryFG, over.CategoryFG)
	pick(&base.SelectedFG, over.SelectedFG)
	pick(&base.SelectedBG, over.SelectedBG)
	pick(&base.DescriptionFG, over.DescriptionFG)
	pick(&base.Border, over.Border)
	pick(&base.StatusSuccess, over.StatusSuccess)
	pick(&base.StatusError, over.StatusError)
	pick(&base.HelpKey, over.HelpKey)
	pick(&base.HelpValue, over.HelpValue)
	return base
}
