package completion

// NoSelection is the selected index when no row is highlighted.
const NoSelection = -1

// Selection tracks the highlighted row of a suggestion list. It clamps to
// [NoSelection, count-1] and never wraps.
type Selection struct {
	index int
	count int
}

// NewSelection returns a selection over count rows with nothing selected.
func NewSelection(count int) Selection {
	s := Selection{}
	s.Reset(count)
	return s
}

// Reset clears the selection for a freshly evaluated list of count rows.
func (s *Selection) Reset(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	s.index = NoSelection
}

// Index returns the selected row or NoSelection.
func (s Selection) Index() int {
	return s.index
}

// Count returns the number of rows in the list.
func (s Selection) Count() int {
	return s.count
}

// Selected reports whether a row is highlighted.
func (s Selection) Selected() bool {
	return s.index != NoSelection
}

// Down moves one row down, holding at the last row.
func (s *Selection) Down() {
	if s.index < s.count-1 {
		s.index++
	}
}

// Up moves one row up, holding at NoSelection.
func (s *Selection) Up() {
	if s.index > NoSelection {
		s.index--
	}
}

// Set selects row i when it is in range. Out-of-range values are ignored.
func (s *Selection) Set(i int) bool {
	if i < NoSelection || i >= s.count {
		return false
	}
	s.index = i
	return true
}
