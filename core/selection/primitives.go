package selection

import (
	"fmt"

	"github.com/kilianp07/edgecover/core/model"
)

// IsSatisfy reports whether every member of unsatisfied is contained in the
// union of selecting's members and the already selected devices.
func IsSatisfy(selecting, unsatisfied model.Group, selected model.DeviceSet) bool {
	for _, m := range unsatisfied.Members {
		if !selecting.Has(m) && !selected.Has(m) {
			return false
		}
	}
	return true
}

// IsInvolve reports whether the members selecting would newly activate
// intersect the members of unsatisfied.
func IsInvolve(selecting, unsatisfied model.Group, selected model.DeviceSet) bool {
	for _, m := range selecting.Members {
		if selected.Has(m) {
			continue
		}
		if unsatisfied.Has(m) {
			return true
		}
	}
	return false
}

// DeviceSetEnergy sums the connection energy of each device to its own
// associated node. An id outside the scenario is an ErrUnknownDevice.
func DeviceSetEnergy(sc *model.Scenario, devices []model.DeviceID) (float64, error) {
	var total float64
	for _, id := range devices {
		d := sc.Device(id)
		if d == nil {
			return 0, fmt.Errorf("device %d: %w", id, ErrUnknownDevice)
		}
		e, err := d.Energy()
		if err != nil {
			return 0, err
		}
		total += e
	}
	return total, nil
}

// energyTable caches device energies for one run so lookups cannot fail once
// the selection has started.
type energyTable []float64

func newEnergyTable(sc *model.Scenario) (energyTable, error) {
	t := make(energyTable, len(sc.Devices))
	for i := range sc.Devices {
		e, err := sc.Devices[i].Energy()
		if err != nil {
			return nil, err
		}
		t[i] = e
	}
	return t, nil
}

func (t energyTable) sum(ids []model.DeviceID) float64 {
	var total float64
	for _, id := range ids {
		total += t[id]
	}
	return total
}

// marginal returns the energy of the members of g not yet selected.
func (t energyTable) marginal(g model.Group, selected model.DeviceSet) float64 {
	var total float64
	for _, id := range g.Members {
		if !selected.Has(id) {
			total += t[id]
		}
	}
	return total
}
