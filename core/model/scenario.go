package model

import (
	"errors"
	"fmt"
	"slices"
)

// Scenario is the arena holding every entity of one selection problem.
// Devices, Locations and Nodes are indexed by their identifiers.
type Scenario struct {
	Name      string
	Nodes     []EdgeNode
	Devices   []Device
	Locations []Location
}

// Device returns the device with the given id.
func (s *Scenario) Device(id DeviceID) *Device {
	if int(id) < 0 || int(id) >= len(s.Devices) {
		return nil
	}
	return &s.Devices[id]
}

// Location returns the location with the given id.
func (s *Scenario) Location(id LocationID) *Location {
	if int(id) < 0 || int(id) >= len(s.Locations) {
		return nil
	}
	return &s.Locations[id]
}

// ResetSelection marks every location unsatisfied with no selected group.
func (s *Scenario) ResetSelection() {
	for i := range s.Locations {
		s.Locations[i].Reset()
	}
}

// Clone returns a deep copy of the scenario so that independent selector runs
// do not share selection state.
func (s *Scenario) Clone() *Scenario {
	c := &Scenario{
		Name:      s.Name,
		Nodes:     slices.Clone(s.Nodes),
		Devices:   make([]Device, len(s.Devices)),
		Locations: make([]Location, len(s.Locations)),
	}
	for i, d := range s.Devices {
		energy := make(map[NodeID]float64, len(d.ConnectionEnergy))
		for k, v := range d.ConnectionEnergy {
			energy[k] = v
		}
		d.ConnectionEnergy = energy
		d.Coverage = slices.Clone(d.Coverage)
		c.Devices[i] = d
	}
	for i, l := range s.Locations {
		groups := make([]Group, len(l.Groups))
		for j, g := range l.Groups {
			groups[j] = Group{Members: slices.Clone(g.Members)}
		}
		l.Groups = groups
		l.CoveredBy = slices.Clone(l.CoveredBy)
		c.Locations[i] = l
	}
	return c
}

// Validate checks the structural invariants the selectors rely on: dense
// identifiers, consistent coverage relations, energy entries for associated
// nodes and group members covering their location. All violations are
// reported together.
//
//gocyclo:ignore
func (s *Scenario) Validate() error {
	var errs []error
	for i, n := range s.Nodes {
		if int(n.ID) != i {
			errs = append(errs, fmt.Errorf("node at index %d has id %d", i, n.ID))
		}
	}
	for i, d := range s.Devices {
		if int(d.ID) != i {
			errs = append(errs, fmt.Errorf("device at index %d has id %d", i, d.ID))
			continue
		}
		if _, err := d.Energy(); err != nil {
			errs = append(errs, err)
		}
		if !slices.IsSorted(d.Coverage) {
			errs = append(errs, fmt.Errorf("device %d: coverage not sorted", d.ID))
		}
		for _, lid := range d.Coverage {
			loc := s.Location(lid)
			if loc == nil {
				errs = append(errs, fmt.Errorf("device %d: covers unknown location %d", d.ID, lid))
				continue
			}
			if !containsSorted(loc.CoveredBy, d.ID) {
				errs = append(errs, fmt.Errorf("device %d covers location %d but is missing from its coveredBy", d.ID, lid))
			}
		}
	}
	for i, l := range s.Locations {
		if int(l.ID) != i {
			errs = append(errs, fmt.Errorf("location at index %d has id %d", i, l.ID))
			continue
		}
		if !slices.IsSorted(l.CoveredBy) {
			errs = append(errs, fmt.Errorf("location %d: coveredBy not sorted", l.ID))
		}
		for _, did := range l.CoveredBy {
			dev := s.Device(did)
			if dev == nil {
				errs = append(errs, fmt.Errorf("location %d: covered by unknown device %d", l.ID, did))
				continue
			}
			if !dev.Covers(l.ID) {
				errs = append(errs, fmt.Errorf("location %d lists device %d in coveredBy but the device does not cover it", l.ID, did))
			}
		}
		for gi, g := range l.Groups {
			if !slices.IsSorted(g.Members) {
				errs = append(errs, fmt.Errorf("location %d group %d: members not sorted", l.ID, gi))
			} else if len(slices.Compact(slices.Clone(g.Members))) != len(g.Members) {
				errs = append(errs, fmt.Errorf("location %d group %d: duplicate members", l.ID, gi))
			}
			for _, m := range g.Members {
				dev := s.Device(m)
				if dev == nil {
					errs = append(errs, fmt.Errorf("location %d group %d: unknown device %d", l.ID, gi, m))
					continue
				}
				if !dev.Covers(l.ID) {
					errs = append(errs, fmt.Errorf("location %d group %d: device %d does not cover the location", l.ID, gi, m))
				}
			}
		}
	}
	return errors.Join(errs...)
}
