// Package query models the composed query as a flat, ordered sequence of
// fragments: editable tokens (filters and boolean operators) and atomic
// bracket glyphs. The sequence is never parsed into an expression tree.
package query

import "strings"

// Kind tags the variant held by a Fragment.
type Kind int

const (
	KindToken   Kind = iota // editable, focusable, removable
	KindBracket             // atomic punctuation, removable only as a whole
)

// TokenKind distinguishes filter tokens from boolean operator tokens.
type TokenKind int

const (
	TokenFilter TokenKind = iota
	TokenOperator
)

func (k TokenKind) String() string {
	if k == TokenOperator {
		return "operator"
	}
	return "filter"
}

// Fragment is one committed unit of the composed query. Only the fields that
// belong to Kind are meaningful: Text and TokenKind for tokens, Char for
// brackets.
type Fragment struct {
	Kind      Kind
	Text      string
	TokenKind TokenKind
	Char      rune
}

// Token returns a token fragment.
func Token(text string, kind TokenKind) Fragment {
	return Fragment{Kind: KindToken, Text: text, TokenKind: kind}
}

// Bracket returns a bracket fragment. Only '(' and ')' are valid brackets; see
// IsBracket.
func Bracket(ch rune) Fragment {
	return Fragment{Kind: KindBracket, Char: ch}
}

// IsBracket reports whether s is a single bracket character.
func IsBracket(s string) bool {
	return s == "(" || s == ")"
}

// IsToken reports whether the fragment can host the caret.
func (f Fragment) IsToken() bool {
	return f.Kind == KindToken
}

// IsOperator reports whether the fragment is an AND/OR token.
func (f Fragment) IsOperator() bool {
	return f.Kind == KindToken && f.TokenKind == TokenOperator
}

// String returns the serialized text of the fragment.
func (f Fragment) String() string {
	if f.Kind == KindBracket {
		return string(f.Char)
	}
	return f.Text
}

// blank reports whether the fragment would serialize to nothing.
func (f Fragment) blank() bool {
	return strings.TrimSpace(f.String()) == ""
}
