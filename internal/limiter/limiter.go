// Package limiter bounds how many suggestion rows are rendered at once.
package limiter

import (
	"github.com/cockroachdb/errors"
)

// Config holds the row-limiting parameters.
type Config struct {
	Limit  int // Show at most this many rows (0 = unlimited)
	Offset int // Skip the first N rows
}

// Validate rejects negative values.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return errors.Newf("limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return errors.Newf("offset must be non-negative, got %d", c.Offset)
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0
}

// Bounds returns the half-open [start, end) range selected from length rows.
func (c Config) Bounds(length int) (int, int) {
	start := min(max(c.Offset, 0), length)
	end := length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}

// Apply returns the limited sub-slice of items.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() {
		return items
	}
	start, end := c.Bounds(len(items))
	return items[start:end]
}

// Window is a scrolling view of Limit rows that follows a selected row.
type Window struct {
	Limit  int
	offset int
}

// NewWindow returns a window showing at most limit rows. A non-positive limit
// shows every row.
func NewWindow(limit int) Window {
	return Window{Limit: max(limit, 0)}
}

// Reset scrolls back to the top.
func (w *Window) Reset() {
	w.offset = 0
}

// Follow scrolls the minimum amount needed to keep selected visible in a list
// of count rows. A negative selected index scrolls to the top.
func (w *Window) Follow(selected, count int) {
	if w.Limit <= 0 || count <= w.Limit || selected < 0 {
		w.offset = 0
		return
	}
	if selected < w.offset {
		w.offset = selected
	}
	if selected >= w.offset+w.Limit {
		w.offset = selected - w.Limit + 1
	}
	w.offset = min(w.offset, count-w.Limit)
}

// Config returns the limiter settings for the current scroll position.
func (w Window) Config() Config {
	return Config{Limit: w.Limit, Offset: w.offset}
}

// Offset returns the index of the first visible row.
func (w Window) Offset() int {
	return w.offset
}

// Hidden returns how many rows sit above and below the window.
func (w Window) Hidden(count int) (above, below int) {
	start, end := w.Config().Bounds(count)
	return start, count - end
}
