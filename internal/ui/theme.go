package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/cockroachdb/errors"

	"github.com/oakwood-commons/qcompose/internal/config"
)

// Theme holds the styles the renderer draws with. Host apps can supply their
// own theme.
type Theme struct {
	Name string

	Token       lipgloss.Style // filter pill
	Operator    lipgloss.Style // AND/OR pill
	Bracket     lipgloss.Style // bare bracket glyph
	Focus       lipgloss.Style // pill holding the caret
	Hover       lipgloss.Style // pill under the pointer
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Panel       lipgloss.Style // suggestion and menu panel frame
	Category    lipgloss.Style // suggestion category header
	Row         lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	HelpKey     color.Color
	HelpValue   color.Color

	// Glamour style name used for the help overlay.
	MarkdownStyle string
}

// ThemeFromConfig builds a theme from a configured palette.
func ThemeFromConfig(name string, tc config.ThemeConfig) Theme {
	c := func(s string) color.Color {
		if strings.TrimSpace(s) == "" {
			return lipgloss.NoColor{}
		}
		return lipgloss.Color(s)
	}
	pill := lipgloss.NewStyle().Padding(0, 1)
	md := "dark"
	if name == "light" {
		md = "light"
	}
	return Theme{
		Name:        name,
		Token:       pill.Foreground(c(tc.TokenFG)).Background(c(tc.TokenBG)),
		Operator:    pill.Foreground(c(tc.OperatorFG)).Background(c(tc.OperatorBG)).Bold(true),
		Bracket:     lipgloss.NewStyle().Foreground(c(tc.BracketFG)).Bold(true),
		Focus:       pill.Foreground(c(tc.FocusFG)).Background(c(tc.FocusBG)),
		Hover:       pill.Foreground(c(tc.TokenFG)).Background(c(tc.HoverBG)),
		Input:       lipgloss.NewStyle().Foreground(c(tc.InputFG)),
		Placeholder: lipgloss.NewStyle().Foreground(c(tc.PlaceholderFG)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(c(tc.Border)).
			PaddingLeft(1),
		Category:      lipgloss.NewStyle().Foreground(c(tc.CategoryFG)).Bold(true),
		Row:           lipgloss.NewStyle().Foreground(c(tc.InputFG)),
		Selected:      lipgloss.NewStyle().Foreground(c(tc.SelectedFG)).Background(c(tc.SelectedBG)),
		Description:   lipgloss.NewStyle().Foreground(c(tc.DescriptionFG)),
		Success:       lipgloss.NewStyle().Foreground(c(tc.StatusSuccess)),
		Error:         lipgloss.NewStyle().Foreground(c(tc.StatusError)),
		HelpKey:       c(tc.HelpKey),
		HelpValue:     c(tc.HelpValue),
		MarkdownStyle: md,
	}
}

// PlainTheme renders without any escape sequences. Pills are marked with
// brackets so they stay distinguishable from the live text.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:          "plain",
		Token:         plain,
		Operator:      plain,
		Bracket:       plain,
		Focus:         plain,
		Hover:         plain,
		Input:         plain,
		Placeholder:   plain,
		Panel:         plain.PaddingLeft(2),
		Category:      plain,
		Row:           plain,
		Selected:      plain,
		Description:   plain,
		Success:       plain,
		Error:         plain,
		HelpKey:       lipgloss.NoColor{},
		HelpValue:     lipgloss.NoColor{},
		MarkdownStyle: "notty",
	}
}

// IsPlain reports whether the theme emits no styling.
func (t Theme) IsPlain() bool {
	return t.Name == "plain"
}

// LoadTheme resolves the named theme from cfg, falling back to the configured
// default when name is empty. noColor always yields PlainTheme.
func LoadTheme(cfg config.File, name string, noColor bool) (Theme, error) {
	if noColor {
		return PlainTheme(), nil
	}
	selected := strings.TrimSpace(name)
	if selected == "" {
		selected = cfg.UI.Theme
	}
	tc, ok := cfg.UI.Themes[selected]
	if !ok {
		return Theme{}, errors.WithHintf(errors.Wrapf(config.ErrUnknownTheme, "theme %q", selected),
			"available themes: %s", strings.Join(cfg.ThemeNames(), ", "))
	}
	return ThemeFromConfig(selected, tc), nil
}
