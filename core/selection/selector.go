package selection

import (
	"github.com/kilianp07/edgecover/core/logger"
	"github.com/kilianp07/edgecover/core/model"
)

// Selector decides which devices are activated so that every location of a
// scenario is satisfied. Implementations mutate the selection state of the
// scenario's locations and must not be called concurrently on the same
// scenario.
type Selector interface {
	Name() string
	Select(sc *model.Scenario) (Result, error)
}

// Result is the outcome of one selector run.
type Result struct {
	Algorithm string `json:"algorithm"`
	// Devices is the set of activated devices in ascending order.
	Devices []model.DeviceID `json:"devices"`
	// Assignments maps each location to the index of its selected group.
	Assignments map[model.LocationID]int `json:"assignments"`
	Energy      float64                  `json:"energy"`
	Iterations  int                      `json:"iterations"`
}

func newResult(algorithm string, sc *model.Scenario, selected model.DeviceSet, energy energyTable, iterations int) Result {
	devices := selected.Sorted()
	res := Result{
		Algorithm:   algorithm,
		Devices:     devices,
		Assignments: make(map[model.LocationID]int, len(sc.Locations)),
		Energy:      energy.sum(devices),
		Iterations:  iterations,
	}
	for _, l := range sc.Locations {
		if l.Satisfied {
			res.Assignments[l.ID] = l.Selected
		}
	}
	return res
}

// locationSet is a set of location ids iterated in ascending order.
type locationSet struct {
	in []bool
	n  int
}

func newLocationSet(size int, full bool) *locationSet {
	s := &locationSet{in: make([]bool, size)}
	if full {
		for i := range s.in {
			s.in[i] = true
		}
		s.n = size
	}
	return s
}

func (s *locationSet) has(id model.LocationID) bool { return s.in[id] }

func (s *locationSet) len() int { return s.n }

func (s *locationSet) add(id model.LocationID) {
	if !s.in[id] {
		s.in[id] = true
		s.n++
	}
}

func (s *locationSet) remove(id model.LocationID) {
	if s.in[id] {
		s.in[id] = false
		s.n--
	}
}

func (s *locationSet) ids() []model.LocationID {
	out := make([]model.LocationID, 0, s.n)
	for i, ok := range s.in {
		if ok {
			out = append(out, model.LocationID(i))
		}
	}
	return out
}

// first returns the lowest id in the set.
func (s *locationSet) first() (model.LocationID, bool) {
	for i, ok := range s.in {
		if ok {
			return model.LocationID(i), true
		}
	}
	return 0, false
}

// countCovered returns how many locations of coverage are in the set.
func (s *locationSet) countCovered(coverage []model.LocationID) int {
	n := 0
	for _, l := range coverage {
		if s.in[l] {
			n++
		}
	}
	return n
}

// satisfyCovered marks satisfied every location of coverage still in
// unsatisfied that owns a group fully contained in selected. The first such
// group in stored order becomes the selected group.
func satisfyCovered(sc *model.Scenario, coverage []model.LocationID, unsatisfied *locationSet, selected model.DeviceSet) int {
	satisfied := 0
	for _, lid := range coverage {
		if !unsatisfied.has(lid) {
			continue
		}
		loc := sc.Location(lid)
		for gi, g := range loc.Groups {
			if selected.ContainsAll(g.Members) {
				loc.Select(gi)
				unsatisfied.remove(lid)
				satisfied++
				break
			}
		}
	}
	return satisfied
}

type loggerSetter interface {
	SetLogger(l logger.Logger)
}
