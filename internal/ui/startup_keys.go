package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds simulated key presses (Vim-like tokens and literal
// text) through m.Update and returns the resulting model. Commands returned
// along the way are dropped.
func ApplyStartupKeys(m tea.Model, keys []string) tea.Model {
	for _, msg := range StartupKeyMsgs(keys) {
		m, _ = m.Update(msg)
	}
	return m
}

// StartupKeyMsgs parses startup key tokens into key messages.
func StartupKeyMsgs(keys []string) []tea.KeyPressMsg {
	var out []tea.KeyPressMsg
	for _, raw := range keys {
		if raw == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<f1>").
		if strings.HasPrefix(raw, `\`) {
			out = append(out, literalKeyMsgs(strings.TrimPrefix(raw, `\`))...)
			continue
		}
		for _, segment := range parseTokenSegments(raw) {
			if !segment.isVimKey {
				out = append(out, literalKeyMsgs(segment.text)...)
				continue
			}
			if msgs, ok := keyMsgsFromToken(segment.text); ok {
				out = append(out, msgs...)
			} else {
				out = append(out, literalKeyMsgs(segment.text)...)
			}
		}
	}
	return out
}

// ContainsHelpKey reports whether keys open the help overlay.
func ContainsHelpKey(keys []string) bool {
	for _, msg := range StartupKeyMsgs(keys) {
		if msg.Code == tea.KeyF1 {
			return true
		}
	}
	return false
}

func literalKeyMsgs(text string) []tea.KeyPressMsg {
	out := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return out
}

// tokenSegment is a parsed piece of a startup token: a <key> or literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into <key> segments and literal text.
// Example: "status:<Space>(" -> ["status:", "<Space>", "("]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

// keyMsgsFromToken parses a Vim-like token into key messages.
// Examples: "<Esc>", "<CR>", "<Space>", "<BS>", "<C-BS>", "<C-o>", "<F1>".
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	switch inner {
	case "esc", "c-[", "escape":
		return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
	case "cr", "enter", "return":
		return []tea.KeyPressMsg{{Code: tea.KeyEnter}}, true
	case "tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab}}, true
	case "space":
		return []tea.KeyPressMsg{{Code: ' ', Text: " "}}, true
	case "bs", "backspace":
		return []tea.KeyPressMsg{{Code: tea.KeyBackspace}}, true
	case "c-bs", "c-backspace", "m-bs", "d-bs":
		return []tea.KeyPressMsg{{Code: tea.KeyBackspace, Mod: tea.ModCtrl}}, true
	case "left":
		return []tea.KeyPressMsg{{Code: tea.KeyLeft}}, true
	case "right":
		return []tea.KeyPressMsg{{Code: tea.KeyRight}}, true
	case "up":
		return []tea.KeyPressMsg{{Code: tea.KeyUp}}, true
	case "down":
		return []tea.KeyPressMsg{{Code: tea.KeyDown}}, true
	case "home":
		return []tea.KeyPressMsg{{Code: tea.KeyHome}}, true
	case "end":
		return []tea.KeyPressMsg{{Code: tea.KeyEnd}}, true
	case "lt":
		return []tea.KeyPressMsg{{Code: '<', Text: "<"}}, true
	case "gt":
		return []tea.KeyPressMsg{{Code: '>', Text: ">"}}, true
	case "f1":
		return []tea.KeyPressMsg{{Code: tea.KeyF1}}, true
	}
	if rest, ok := strings.CutPrefix(inner, "c-"); ok && len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
		return []tea.KeyPressMsg{{Code: rune(rest[0]), Mod: tea.ModCtrl}}, true
	}
	return nil, false
}
