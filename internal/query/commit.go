package query

import "strings"

// Separator is the trailing character that commits filters and operators.
const Separator = " "

// CommitAction says what the live text turns into.
type CommitAction int

const (
	CommitNone CommitAction = iota
	CommitOperator
	CommitFilter
	CommitBracket
)

// Commit is the outcome of classifying the live text.
type Commit struct {
	Action   CommitAction
	Fragment Fragment
}

// Committed reports whether the live text should be turned into a fragment.
func (c Commit) Committed() bool {
	return c.Action != CommitNone
}

// Classify applies the commit triggers to the live text, in priority order:
// an AND/OR word followed by the separator becomes an upper-cased operator
// token; text containing ':' followed by the separator becomes a filter token;
// a lone bracket character commits at once without any separator.
func Classify(text string) Commit {
	if strings.HasSuffix(text, Separator) {
		trimmed := strings.TrimSpace(text)
		if IsOperatorWord(trimmed) {
			return Commit{Action: CommitOperator, Fragment: Token(strings.ToUpper(trimmed), TokenOperator)}
		}
		if strings.Contains(trimmed, ":") {
			return Commit{Action: CommitFilter, Fragment: Token(trimmed, TokenFilter)}
		}
	}
	if IsBracket(text) {
		return Commit{Action: CommitBracket, Fragment: Bracket(rune(text[0]))}
	}
	return Commit{}
}

// IsOperatorWord reports whether s is AND or OR, ignoring case.
func IsOperatorWord(s string) bool {
	return strings.EqualFold(s, "AND") || strings.EqualFold(s, "OR")
}

// Apply commits c onto the sequence and reports whether a fragment was added.
func (c Commit) Apply(s *Sequence) bool {
	switch c.Action {
	case CommitOperator, CommitFilter:
		return s.Append(c.Fragment.Text, c.Fragment.TokenKind)
	case CommitBracket:
		return s.AppendBracket(c.Fragment.Char)
	default:
		return false
	}
}

// SplitValue turns an accepted combination, history, or view value into
// independent filter tokens, one per single-space separated part.
func SplitValue(value string) []Fragment {
	parts := strings.Split(value, Separator)
	out := make([]Fragment, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, Token(p, TokenFilter))
	}
	return out
}
