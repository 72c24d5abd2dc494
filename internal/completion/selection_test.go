package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionClampsDown(t *testing.T) {
	s := NewSelection(3)
	for range 5 {
		s.Down()
	}
	assert.Equal(t, 2, s.Index())
}

func TestSelectionUpFromNoneStays(t *testing.T) {
	s := NewSelection(3)
	s.Up()
	assert.Equal(t, NoSelection, s.Index())
	assert.False(t, s.Selected())
}

func TestSelectionUpReturnsToNone(t *testing.T) {
	s := NewSelection(3)
	s.Down()
	s.Down()
	s.Up()
	assert.Equal(t, 0, s.Index())
	s.Up()
	s.Up()
	assert.Equal(t, NoSelection, s.Index())
}

func TestSelectionResetOnNewList(t *testing.T) {
	s := NewSelection(3)
	s.Down()
	assert.True(t, s.Selected())

	s.Reset(1)
	assert.Equal(t, NoSelection, s.Index())
	assert.Equal(t, 1, s.Count())
}

func TestSelectionEmptyList(t *testing.T) {
	s := NewSelection(0)
	s.Down()
	assert.Equal(t, NoSelection, s.Index())
}

func TestSelectionSet(t *testing.T) {
	s := NewSelection(2)
	assert.True(t, s.Set(1))
	assert.Equal(t, 1, s.Index())
	assert.False(t, s.Set(2))
	assert.Equal(t, 1, s.Index())
	assert.True(t, s.Set(NoSelection))
	assert.False(t, s.Selected())
}
