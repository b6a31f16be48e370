package selection

import (
	"github.com/kilianp07/edgecover/core/logger"
	"github.com/kilianp07/edgecover/core/model"
)

// EnergyWeightedName identifies the EnergyWeighted selector.
const EnergyWeightedName = "energy-weighted"

// EnergyWeighted is the cost/benefit greedy approximation of weighted set
// cover: among all available devices it activates the one with the lowest
// energy per unsatisfied location covered.
type EnergyWeighted struct {
	Logger logger.Logger
}

// NewEnergyWeighted returns an EnergyWeighted selector.
func NewEnergyWeighted(log logger.Logger) *EnergyWeighted {
	return &EnergyWeighted{Logger: log}
}

func (e *EnergyWeighted) Name() string { return EnergyWeightedName }

// SetLogger sets the logger used for debug traces.
func (e *EnergyWeighted) SetLogger(l logger.Logger) { e.Logger = l }

// Select implements Selector.
func (e *EnergyWeighted) Select(sc *model.Scenario) (Result, error) {
	energy, err := newEnergyTable(sc)
	if err != nil {
		return Result{}, err
	}
	sc.ResetSelection()
	log := logger.OrNop(e.Logger)

	unsatisfied := newLocationSet(len(sc.Locations), true)
	selected := model.NewDeviceSet()
	available := make([]bool, len(sc.Devices))
	for i := range available {
		available[i] = true
	}

	iterations := 0
	for unsatisfied.len() > 0 {
		iterations++
		dev, ratio := minCostPerCoverage(sc, energy, available, unsatisfied)
		if dev < 0 {
			lid, _ := unsatisfied.first()
			return Result{}, &LocationError{Algorithm: e.Name(), Location: lid, Err: ErrEmptyPool}
		}
		selected.Add(dev)
		available[dev] = false
		n := satisfyCovered(sc, sc.Devices[dev].Coverage, unsatisfied, selected)
		log.Debugw("device activated", map[string]any{
			"iteration": iterations,
			"device":    int(dev),
			"ratio":     ratio,
			"satisfied": n,
		})
	}
	return newResult(e.Name(), sc, selected, energy, iterations), nil
}

// minCostPerCoverage returns the available device minimising its energy
// divided by the number of unsatisfied locations it covers. Devices covering
// no unsatisfied location are not candidates.
func minCostPerCoverage(sc *model.Scenario, energy energyTable, available []bool, unsatisfied *locationSet) (model.DeviceID, float64) {
	best, min := model.DeviceID(-1), 0.0
	for i := range sc.Devices {
		if !available[i] {
			continue
		}
		gain := unsatisfied.countCovered(sc.Devices[i].Coverage)
		if gain == 0 {
			continue
		}
		if ratio := energy[i] / float64(gain); best < 0 || ratio < min {
			best, min = model.DeviceID(i), ratio
		}
	}
	return best, min
}
