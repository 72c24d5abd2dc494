package query

import "strings"

// Sequence is the ordered list of committed fragments that precedes the live
// input. Insertion only happens at the tail. Index-based operations are total:
// out-of-range indices are ignored and reported through the bool result.
type Sequence struct {
	fragments []Fragment
}

// NewSequence returns a sequence holding a copy of the given fragments.
func NewSequence(fragments ...Fragment) *Sequence {
	s := &Sequence{}
	s.ReplaceAll(fragments)
	return s
}

// Len returns the number of fragments.
func (s *Sequence) Len() int {
	return len(s.fragments)
}

// Empty reports whether no fragment has been committed.
func (s *Sequence) Empty() bool {
	return len(s.fragments) == 0
}

// At returns the fragment at index i.
func (s *Sequence) At(i int) (Fragment, bool) {
	if i < 0 || i >= len(s.fragments) {
		return Fragment{}, false
	}
	return s.fragments[i], true
}

// Last returns the tail fragment.
func (s *Sequence) Last() (Fragment, bool) {
	return s.At(len(s.fragments) - 1)
}

// Fragments returns a copy of the fragments in order.
func (s *Sequence) Fragments() []Fragment {
	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Append commits a token at the tail. Whitespace-only text is rejected.
func (s *Sequence) Append(text string, kind TokenKind) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.fragments = append(s.fragments, Token(text, kind))
	return true
}

// AppendBracket commits a bracket at the tail.
func (s *Sequence) AppendBracket(ch rune) bool {
	if !IsBracket(string(ch)) {
		return false
	}
	s.fragments = append(s.fragments, Bracket(ch))
	return true
}

// RemoveAt deletes the fragment at index i, shifting later fragments left.
// It does not move the caret; callers recompute any index they held.
func (s *Sequence) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.fragments) {
		return false
	}
	s.fragments = append(s.fragments[:i], s.fragments[i+1:]...)
	return true
}

// ReplaceAll swaps the whole sequence for the given fragments. Blank tokens
// and invalid brackets are dropped.
func (s *Sequence) ReplaceAll(fragments []Fragment) {
	next := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		switch f.Kind {
		case KindToken:
			if f.blank() {
				continue
			}
		case KindBracket:
			if !IsBracket(string(f.Char)) {
				continue
			}
		default:
			continue
		}
		next = append(next, f)
	}
	s.fragments = next
}

// SetText rewrites the text of the token at index i in place. Brackets are
// not editable. Empty text is allowed here: a token being edited may be
// emptied before it is deleted.
func (s *Sequence) SetText(i int, text string) bool {
	if i < 0 || i >= len(s.fragments) || !s.fragments[i].IsToken() {
		return false
	}
	s.fragments[i].Text = text
	return true
}

// Clear removes every fragment.
func (s *Sequence) Clear() {
	s.fragments = nil
}

// Serialize joins the fragment texts with single spaces and appends the
// pending live text when it is non-empty. Tokens edited down to blank text
// are skipped.
func (s *Sequence) Serialize(live string) string {
	parts := make([]string, 0, len(s.fragments)+1)
	for _, f := range s.fragments {
		if f.blank() {
			continue
		}
		parts = append(parts, f.String())
	}
	if live != "" {
		parts = append(parts, live)
	}
	return strings.Join(parts, " ")
}

// PrevToken returns the index of the nearest token strictly before i.
func (s *Sequence) PrevToken(i int) (int, bool) {
	if i > len(s.fragments) {
		i = len(s.fragments)
	}
	for j := i - 1; j >= 0; j-- {
		if s.fragments[j].IsToken() {
			return j, true
		}
	}
	return -1, false
}

// NextToken returns the index of the nearest token strictly after i.
func (s *Sequence) NextToken(i int) (int, bool) {
	if i < -1 {
		i = -1
	}
	for j := i + 1; j < len(s.fragments); j++ {
		if s.fragments[j].IsToken() {
			return j, true
		}
	}
	return -1, false
}

// LastToken returns the index of the last token in the sequence.
func (s *Sequence) LastToken() (int, bool) {
	return s.PrevToken(len(s.fragments))
}
