package model

import (
	"errors"
	"fmt"
	"math"
)

// DeviceID identifies a device inside a Scenario. Identifiers are dense indexes
// into Scenario.Devices.
type DeviceID int

// LocationID identifies a location inside a Scenario.
type LocationID int

// NodeID identifies an edge (MEC) node inside a Scenario.
type NodeID int

// Point is a position on the plane.
type Point struct {
	X float64
	Y float64
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// EdgeNode is a fixed compute point devices connect to.
type EdgeNode struct {
	ID       NodeID
	Position Point
}

// ErrMissingEnergy is returned when a device has no energy entry for its
// associated edge node.
var ErrMissingEnergy = errors.New("missing energy entry")

// MissingEnergyError identifies the device and node of a missing energy entry.
type MissingEnergyError struct {
	Device DeviceID
	Node   NodeID
}

func (e *MissingEnergyError) Error() string {
	return fmt.Sprintf("device %d: no connection energy for associated node %d", e.Device, e.Node)
}

func (e *MissingEnergyError) Unwrap() error { return ErrMissingEnergy }

// Device is a wireless device able to cover a set of locations.
type Device struct {
	ID       DeviceID
	Position Point
	// AssociatedNode is assigned upstream and never changed by the selectors.
	AssociatedNode NodeID
	// ConnectionEnergy maps an edge node to the energy cost of connecting to it.
	ConnectionEnergy map[NodeID]float64
	// Coverage lists the locations the device can serve, sorted ascending.
	Coverage []LocationID
	// Precision is produced by the generator and not used for selection.
	Precision float64
}

// Energy returns the connection energy to the associated edge node.
func (d Device) Energy() (float64, error) {
	e, ok := d.ConnectionEnergy[d.AssociatedNode]
	if !ok {
		return 0, &MissingEnergyError{Device: d.ID, Node: d.AssociatedNode}
	}
	return e, nil
}

// Covers reports whether the device covers the location.
func (d Device) Covers(id LocationID) bool {
	return containsSorted(d.Coverage, id)
}

func (d Device) String() string {
	return fmt.Sprintf("Device[id=%d, coverage=%d]", d.ID, len(d.Coverage))
}
