package caret

import (
	"strings"

	"github.com/oakwood-commons/qcompose/internal/query"
)

// Key is a caret-relevant key press.
type Key int

const (
	KeyNone Key = iota
	KeyBackspace
	KeyLeft
	KeyRight
	// KeyDeleteToken is Ctrl/Cmd+Backspace: delete the hovered or focused token.
	KeyDeleteToken
)

// NoHover marks that the pointer is over no fragment.
const NoHover = -1

// Event describes a key press relative to the current caret host.
type Event struct {
	Key Key
	// Offset is the caret position inside the host's text.
	Offset int
	// TextLen is the length of the host's text, in the same unit as Offset.
	TextLen int
	// SelectionLen is the length of the active text selection, if any.
	SelectionLen int
	// Hovered is the fragment index under the pointer, or NoHover.
	Hovered int
}

// Router applies the caret transition table against a sequence. It mutates
// the sequence only to delete fragments.
type Router struct {
	seq *query.Sequence
}

// NewRouter returns a router over seq.
func NewRouter(seq *query.Sequence) *Router {
	return &Router{seq: seq}
}

// Route returns the caret location after ev and whether the key was consumed.
// A key that is not consumed should be handled by the caret host as a normal
// edit or movement. Fragment deletions happen inside Route; any index held by
// the caller from before the call must be recomputed.
func (r *Router) Route(loc Location, ev Event) (Location, bool) {
	loc = r.Normalize(loc)
	if ev.Key == KeyDeleteToken {
		return r.deleteToken(loc, ev.Hovered)
	}
	if loc.IsInput() {
		return r.fromInput(ev)
	}
	return r.fromToken(loc, ev)
}

func (r *Router) fromInput(ev Event) (Location, bool) {
	switch ev.Key {
	case KeyBackspace:
		if ev.TextLen != 0 {
			return Input(), false
		}
		last, ok := r.seq.Last()
		if !ok {
			return Input(), false
		}
		if last.IsToken() {
			return TokenEdge(r.seq.Len()-1, EdgeEnd), true
		}
		r.seq.RemoveAt(r.seq.Len() - 1)
		return Input(), true
	case KeyLeft:
		if ev.Offset != 0 || r.seq.Empty() {
			return Input(), false
		}
		if i, ok := r.seq.LastToken(); ok {
			return TokenEdge(i, EdgeEnd), true
		}
		return Input(), false
	default:
		return Input(), false
	}
}

func (r *Router) fromToken(loc Location, ev Event) (Location, bool) {
	i, _, _ := loc.Token()
	switch ev.Key {
	case KeyLeft:
		if ev.Offset != 0 {
			return loc, false
		}
		if prev, ok := r.seq.PrevToken(i); ok {
			return TokenEdge(prev, EdgeEnd), true
		}
		return loc, true
	case KeyRight:
		if ev.Offset < ev.TextLen {
			return loc, false
		}
		if next, ok := r.seq.NextToken(i); ok {
			return TokenEdge(next, EdgeStart), true
		}
		return Input(), true
	case KeyBackspace:
		f, _ := r.seq.At(i)
		if ev.SelectionLen != 0 || ev.Offset != 0 || strings.TrimSpace(f.Text) != "" {
			return loc, false
		}
		r.seq.RemoveAt(i)
		return r.afterDelete(i), true
	default:
		return loc, false
	}
}

// deleteToken removes the hovered token, or the focused one when nothing is
// hovered, and lands the caret at the end of the token before it.
func (r *Router) deleteToken(loc Location, hovered int) (Location, bool) {
	target := -1
	if f, ok := r.seq.At(hovered); ok && f.IsToken() {
		target = hovered
	} else if i, _, ok := loc.Token(); ok {
		target = i
	}
	if target < 0 {
		return loc, false
	}
	r.seq.RemoveAt(target)
	return r.afterDelete(target), true
}

// afterDelete picks the caret location once the fragment at removed is gone.
// Indices below removed are unaffected by the deletion.
func (r *Router) afterDelete(removed int) Location {
	if prev, ok := r.seq.PrevToken(removed); ok {
		return TokenEdge(prev, EdgeEnd)
	}
	return Input()
}

// Normalize maps a location that no longer names a token onto the live input.
func (r *Router) Normalize(loc Location) Location {
	i, _, ok := loc.Token()
	if !ok {
		return loc
	}
	f, exists := r.seq.At(i)
	if !exists || !f.IsToken() {
		return Input()
	}
	return loc
}
