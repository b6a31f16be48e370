package model

import (
	"slices"
	"strconv"
	"strings"
)

// Group is one feasible combination of devices able to satisfy a location.
// Members are kept sorted and unique so two groups with the same members are
// equal regardless of construction order.
type Group struct {
	Members []DeviceID
}

// NewGroup returns a group holding the given members.
func NewGroup(members ...DeviceID) Group {
	m := slices.Clone(members)
	slices.Sort(m)
	return Group{Members: slices.Compact(m)}
}

// Len returns the number of members.
func (g Group) Len() int { return len(g.Members) }

// Has reports whether id is a member of the group. It does not rely on member
// order, so groups built without NewGroup still answer correctly.
func (g Group) Has(id DeviceID) bool {
	return slices.Contains(g.Members, id)
}

// Equal reports whether both groups hold the same members.
func (g Group) Equal(o Group) bool {
	return slices.Equal(g.Members, o.Members)
}

// Key returns a canonical string for the member set, e.g. "1,4,7".
func (g Group) Key() string {
	parts := make([]string, len(g.Members))
	for i, m := range g.Members {
		parts[i] = strconv.Itoa(int(m))
	}
	return strings.Join(parts, ",")
}

func (g Group) String() string { return "{" + g.Key() + "}" }
