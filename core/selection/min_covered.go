package selection

import (
	"github.com/kilianp07/edgecover/core/logger"
	"github.com/kilianp07/edgecover/core/model"
)

// MinCoveredFirstName identifies the MinCoveredFirst selector.
const MinCoveredFirstName = "min-covered-first"

// MinCoveredFirst is the greedy set cover biased toward rarely covered
// locations: it targets the unsatisfied location with the fewest covering
// devices and activates, among the available devices covering it, the one
// reaching the most unsatisfied locations. Energy is not considered.
type MinCoveredFirst struct {
	Logger logger.Logger
}

// NewMinCoveredFirst returns a MinCoveredFirst selector.
func NewMinCoveredFirst(log logger.Logger) *MinCoveredFirst {
	return &MinCoveredFirst{Logger: log}
}

func (m *MinCoveredFirst) Name() string { return MinCoveredFirstName }

// SetLogger sets the logger used for debug traces.
func (m *MinCoveredFirst) SetLogger(l logger.Logger) { m.Logger = l }

// Select implements Selector.
func (m *MinCoveredFirst) Select(sc *model.Scenario) (Result, error) {
	energy, err := newEnergyTable(sc)
	if err != nil {
		return Result{}, err
	}
	sc.ResetSelection()
	log := logger.OrNop(m.Logger)

	unsatisfied := newLocationSet(len(sc.Locations), true)
	selected := model.NewDeviceSet()
	available := make([]bool, len(sc.Devices))
	for i := range available {
		available[i] = true
	}

	iterations := 0
	for unsatisfied.len() > 0 {
		iterations++
		target := minCovered(sc, unsatisfied)
		dev, gain := maxMarginalCovering(sc, target, available, unsatisfied)
		if dev < 0 {
			return Result{}, &LocationError{Algorithm: m.Name(), Location: target, Err: ErrEmptyPool}
		}
		selected.Add(dev)
		available[dev] = false
		n := satisfyCovered(sc, sc.Devices[dev].Coverage, unsatisfied, selected)
		log.Debugw("device activated", map[string]any{
			"iteration": iterations,
			"target":    int(target),
			"device":    int(dev),
			"gain":      gain,
			"satisfied": n,
		})
	}
	return newResult(m.Name(), sc, selected, energy, iterations), nil
}

// minCovered returns the unsatisfied location with the fewest covering devices.
func minCovered(sc *model.Scenario, unsatisfied *locationSet) model.LocationID {
	best, min := model.LocationID(-1), 0
	for _, id := range unsatisfied.ids() {
		if n := len(sc.Locations[id].CoveredBy); best < 0 || n < min {
			best, min = id, n
		}
	}
	return best
}

// maxMarginalCovering returns the available device covering target whose
// coverage intersects the most unsatisfied locations, or -1.
func maxMarginalCovering(sc *model.Scenario, target model.LocationID, available []bool, unsatisfied *locationSet) (model.DeviceID, int) {
	best, max := model.DeviceID(-1), -1
	for _, did := range sc.Locations[target].CoveredBy {
		if !available[did] {
			continue
		}
		if gain := unsatisfied.countCovered(sc.Devices[did].Coverage); gain > max {
			best, max = did, gain
		}
	}
	return best, max
}
