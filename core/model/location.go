package model

import "fmt"

// NoGroup marks a location without selected group.
const NoGroup = -1

// Location is a physical point that has to be covered by activated devices.
type Location struct {
	ID       LocationID
	Position Point
	// Satisfied and Selected are owned by the selection engine.
	Satisfied bool
	// Selected is the index in Groups of the group witnessing satisfaction,
	// or NoGroup.
	Selected int
	// Groups are the candidate groups, populated upstream.
	Groups []Group
	// CoveredBy is the inverse of Device.Coverage, sorted ascending.
	CoveredBy []DeviceID
}

// SelectedGroup returns the selected group, if any.
func (l *Location) SelectedGroup() (Group, bool) {
	if l.Selected < 0 || l.Selected >= len(l.Groups) {
		return Group{}, false
	}
	return l.Groups[l.Selected], true
}

// Select records the group at index i as the witness of satisfaction and
// marks the location satisfied.
func (l *Location) Select(i int) {
	l.Selected = i
	l.Satisfied = true
}

// Reset clears the selection state.
func (l *Location) Reset() {
	l.Satisfied = false
	l.Selected = NoGroup
}

func (l *Location) String() string {
	return fmt.Sprintf("Location[id=%d, coveredBy=%d, groups=%d]", l.ID, len(l.CoveredBy), len(l.Groups))
}
