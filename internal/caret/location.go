// Package caret routes the single logical caret of the composer between the
// live input and the committed tokens.
package caret

import "fmt"

// Edge is the side of a token the caret lands on.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

func (e Edge) String() string {
	if e == EdgeEnd {
		return "end"
	}
	return "start"
}

// Location is where keystrokes currently go: the live input, or a token at a
// given edge. The zero value is the live input.
type Location struct {
	inToken bool
	index   int
	edge    Edge
}

// Input is the live input location.
func Input() Location {
	return Location{}
}

// TokenEdge is the location inside the token at index i.
func TokenEdge(i int, edge Edge) Location {
	return Location{inToken: true, index: i, edge: edge}
}

// IsInput reports whether the live input holds the caret.
func (l Location) IsInput() bool {
	return !l.inToken
}

// Token returns the token index and edge when a token holds the caret.
func (l Location) Token() (int, Edge, bool) {
	if !l.inToken {
		return -1, EdgeStart, false
	}
	return l.index, l.edge, true
}

// InToken reports whether the token at index i holds the caret.
func (l Location) InToken(i int) bool {
	return l.inToken && l.index == i
}

func (l Location) String() string {
	if !l.inToken {
		return "input"
	}
	return fmt.Sprintf("token[%d]@%s", l.index, l.edge)
}
