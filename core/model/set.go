package model

import (
	"cmp"
	"maps"
	"slices"
)

// DeviceSet is an unordered set of device identifiers.
type DeviceSet map[DeviceID]struct{}

// NewDeviceSet returns a set holding ids.
func NewDeviceSet(ids ...DeviceID) DeviceSet {
	s := make(DeviceSet, len(ids))
	s.AddAll(ids)
	return s
}

// Add inserts id.
func (s DeviceSet) Add(id DeviceID) { s[id] = struct{}{} }

// AddAll inserts every id.
func (s DeviceSet) AddAll(ids []DeviceID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Remove deletes id.
func (s DeviceSet) Remove(id DeviceID) { delete(s, id) }

// Has reports whether id is in the set.
func (s DeviceSet) Has(id DeviceID) bool {
	_, ok := s[id]
	return ok
}

// ContainsAll reports whether every id is in the set.
func (s DeviceSet) ContainsAll(ids []DeviceID) bool {
	for _, id := range ids {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of elements.
func (s DeviceSet) Len() int { return len(s) }

// Sorted returns the elements in ascending order.
func (s DeviceSet) Sorted() []DeviceID {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns a copy of the set.
func (s DeviceSet) Clone() DeviceSet { return maps.Clone(s) }

func containsSorted[T cmp.Ordered](list []T, v T) bool {
	_, ok := slices.BinarySearch(list, v)
	return ok
}
