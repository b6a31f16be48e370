package model

import (
	"fmt"
	"slices"
)

// Builder assembles a Scenario while keeping the coverage relations of
// devices and locations in sync.
type Builder struct {
	sc   Scenario
	errs []error
}

// NewBuilder returns an empty builder for a scenario with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{sc: Scenario{Name: name}}
}

// AddNode appends an edge node and returns its id.
func (b *Builder) AddNode(pos Point) NodeID {
	id := NodeID(len(b.sc.Nodes))
	b.sc.Nodes = append(b.sc.Nodes, EdgeNode{ID: id, Position: pos})
	return id
}

// AddDevice appends a device associated with node. energy holds the
// connection cost for each reachable node and must at least contain node.
func (b *Builder) AddDevice(pos Point, node NodeID, energy map[NodeID]float64) DeviceID {
	id := DeviceID(len(b.sc.Devices))
	if energy == nil {
		energy = make(map[NodeID]float64)
	}
	b.sc.Devices = append(b.sc.Devices, Device{
		ID:               id,
		Position:         pos,
		AssociatedNode:   node,
		ConnectionEnergy: energy,
	})
	return id
}

// SetPrecision records the precision of a device.
func (b *Builder) SetPrecision(d DeviceID, precision float64) {
	if dev := b.sc.Device(d); dev != nil {
		dev.Precision = precision
	}
}

// AddLocation appends a location and returns its id.
func (b *Builder) AddLocation(pos Point) LocationID {
	id := LocationID(len(b.sc.Locations))
	b.sc.Locations = append(b.sc.Locations, Location{ID: id, Position: pos, Selected: NoGroup})
	return id
}

// Cover records that device d covers location l on both sides of the relation.
func (b *Builder) Cover(d DeviceID, l LocationID) {
	dev, loc := b.sc.Device(d), b.sc.Location(l)
	if dev == nil || loc == nil {
		b.errs = append(b.errs, fmt.Errorf("cover: unknown device %d or location %d", d, l))
		return
	}
	if !slices.Contains(dev.Coverage, l) {
		dev.Coverage = append(dev.Coverage, l)
	}
	if !slices.Contains(loc.CoveredBy, d) {
		loc.CoveredBy = append(loc.CoveredBy, d)
	}
}

// AddGroup attaches a candidate group made of members to location l.
// Duplicated groups are ignored.
func (b *Builder) AddGroup(l LocationID, members ...DeviceID) {
	loc := b.sc.Location(l)
	if loc == nil {
		b.errs = append(b.errs, fmt.Errorf("group: unknown location %d", l))
		return
	}
	g := NewGroup(members...)
	for _, existing := range loc.Groups {
		if existing.Equal(g) {
			return
		}
	}
	loc.Groups = append(loc.Groups, g)
}

// Build sorts the relation tables and validates the scenario.
func (b *Builder) Build() (*Scenario, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	sc := b.sc
	for i := range sc.Devices {
		slices.Sort(sc.Devices[i].Coverage)
	}
	for i := range sc.Locations {
		slices.Sort(sc.Locations[i].CoveredBy)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", sc.Name, err)
	}
	return &sc, nil
}
