package selection

import (
	"testing"

	"github.com/kilianp07/edgecover/core/model"
)

// device describes a test device: its energy on node 0 and the locations it covers.
type device struct {
	energy float64
	covers []model.LocationID
}

// buildScenario creates a single-node scenario. groups[l] lists the candidate
// groups of location l.
func buildScenario(t *testing.T, name string, devices []device, groups [][][]model.DeviceID) *model.Scenario {
	t.Helper()
	b := model.NewBuilder(name)
	n := b.AddNode(model.Point{})
	for range groups {
		b.AddLocation(model.Point{})
	}
	for _, d := range devices {
		id := b.AddDevice(model.Point{}, n, map[model.NodeID]float64{n: d.energy})
		for _, l := range d.covers {
			b.Cover(id, l)
		}
	}
	for l, gs := range groups {
		for _, g := range gs {
			b.AddGroup(model.LocationID(l), g...)
		}
	}
	sc, err := b.Build()
	if err != nil {
		t.Fatalf("build %s: %v", name, err)
	}
	return sc
}

// scenarioA has one location with groups {d0,d1} (energy 3) and {d2} (energy 1).
func scenarioA(t *testing.T) *model.Scenario {
	return buildScenario(t, "A", []device{
		{energy: 1.5, covers: []model.LocationID{0}},
		{energy: 1.5, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{0}},
	}, [][][]model.DeviceID{
		{{0, 1}, {2}},
	})
}

// scenarioB has L0 covered by d0,d1 and L1 covered by d1,d2 with one
// singleton group per covering device.
func scenarioB(t *testing.T) *model.Scenario {
	return buildScenario(t, "B", []device{
		{energy: 1, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{0, 1}},
		{energy: 1, covers: []model.LocationID{1}},
	}, [][][]model.DeviceID{
		{{0}, {1}},
		{{1}, {2}},
	})
}

// scenarioC has a single location covered by d0 (energy 5) and d1 (energy 1).
func scenarioC(t *testing.T) *model.Scenario {
	return buildScenario(t, "C", []device{
		{energy: 5, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{0}},
	}, [][][]model.DeviceID{
		{{0}, {1}},
	})
}

// infeasibleScenario has a covered location without any candidate group.
func infeasibleScenario(t *testing.T) *model.Scenario {
	return buildScenario(t, "infeasible", []device{
		{energy: 1, covers: []model.LocationID{0, 1}},
	}, [][][]model.DeviceID{
		{{0}},
		{},
	})
}

// meshScenario has three locations, each reachable by three devices, and
// multi-member groups. Its LP lower bound is 4.
func meshScenario(t *testing.T) *model.Scenario {
	return buildScenario(t, "mesh", []device{
		{energy: 2, covers: []model.LocationID{0, 1}},
		{energy: 3, covers: []model.LocationID{1, 2}},
		{energy: 1, covers: []model.LocationID{0}},
		{energy: 4, covers: []model.LocationID{0, 1, 2}},
		{energy: 2, covers: []model.LocationID{2}},
	}, [][][]model.DeviceID{
		{{0, 2}, {3}},
		{{0, 1}, {3}, {1}},
		{{1, 4}, {3}},
	})
}

// adjustScenario makes the group adjustment pick an expensive group for L0
// first and switch to a cheaper one once d1 is activated for L4.
func adjustScenario(t *testing.T) *model.Scenario {
	return buildScenario(t, "adjust", []device{
		{energy: 3, covers: []model.LocationID{0, 1, 2, 3, 5}},
		{energy: 1, covers: []model.LocationID{0, 4}},
	}, [][][]model.DeviceID{
		{{0}, {1}},
		{{0}},
		{{0}},
		{{0}},
		{{1}},
		{{0}},
	})
}

// involveScenario has no group of L0 completing another location, so L0 is
// decided by involvement: {d0,d1} makes progress on L1 while the cheaper
// {d2,d3} reaches nothing.
func involveScenario(t *testing.T) *model.Scenario {
	return buildScenario(t, "involve", []device{
		{energy: 2, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{0, 1}},
		{energy: 1, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{1}},
	}, [][][]model.DeviceID{
		{{0, 1}, {2, 3}},
		{{1, 4}},
	})
}

// releaseScenario picks {d0,d1} for L0 by involvement, then activates d2 and
// d3 for L2. L0 switches to the cheaper {d2,d3} and d0 is no longer used by
// any selected group.
func releaseScenario(t *testing.T) *model.Scenario {
	return buildScenario(t, "release", []device{
		{energy: 2, covers: []model.LocationID{0}},
		{energy: 1, covers: []model.LocationID{0, 1}},
		{energy: 1, covers: []model.LocationID{0, 2}},
		{energy: 1, covers: []model.LocationID{0, 2}},
		{energy: 1, covers: []model.LocationID{1}},
		{energy: 1, covers: []model.LocationID{1, 2}},
	}, [][][]model.DeviceID{
		{{0, 1}, {2, 3}},
		{{1, 4}, {1, 5}},
		{{2, 3, 5}},
	})
}
