package selection

import (
	"math"

	"github.com/kilianp07/edgecover/core/logger"
	"github.com/kilianp07/edgecover/core/model"
)

// GroupAdjustmentName identifies the GroupAdjustment selector.
const GroupAdjustmentName = "group-adjustment"

// Strategy names the rule that picked a location's group.
type Strategy string

const (
	StrategyMaxTotalSatisfy Strategy = "max_total_satisfy"
	StrategyMaxTotalInvolve Strategy = "max_total_involve"
	StrategyMinEnergy       Strategy = "min_energy"
	StrategyCascade         Strategy = "cascade"
)

// GroupAdjustment satisfies locations one at a time, most constrained first,
// choosing for each the group with the best ratio of other locations
// satisfied (or involved) per unit of marginal energy. Locations incidentally
// satisfied by the chosen group are marked as such, and after every step each
// satisfied location switches to a cheaper group whenever one is already
// fully active. Devices not used by any selected group are released before
// the next step.
type GroupAdjustment struct {
	Logger logger.Logger
	// OnIteration is called after every outer iteration once the global
	// selection has been recomputed.
	OnIteration func(iteration int, sc *model.Scenario)
}

// NewGroupAdjustment returns a GroupAdjustment selector.
func NewGroupAdjustment(log logger.Logger) *GroupAdjustment {
	return &GroupAdjustment{Logger: log}
}

func (a *GroupAdjustment) Name() string { return GroupAdjustmentName }

// SetLogger sets the logger used for debug traces.
func (a *GroupAdjustment) SetLogger(l logger.Logger) { a.Logger = l }

// Select implements Selector.
func (a *GroupAdjustment) Select(sc *model.Scenario) (Result, error) {
	energy, err := newEnergyTable(sc)
	if err != nil {
		return Result{}, err
	}
	sc.ResetSelection()

	r := &adjustRun{
		sc:          sc,
		energy:      energy,
		selected:    model.NewDeviceSet(),
		unsatisfied: newLocationSet(len(sc.Locations), true),
		satisfied:   newLocationSet(len(sc.Locations), false),
		log:         logger.OrNop(a.Logger),
	}

	iterations := 0
	for r.unsatisfied.len() > 0 {
		iterations++
		target := r.maxGroupsLocation()
		r.unsatisfied.remove(target)
		r.satisfied.add(target)
		loc := sc.Location(target)

		gi, strategy := r.chooseGroup(loc)
		if gi == model.NoGroup {
			return Result{}, &LocationError{Algorithm: a.Name(), Location: target, Err: ErrInfeasibleLocation}
		}
		loc.Select(gi)
		group := loc.Groups[gi]
		r.log.Debugw("location satisfied", map[string]any{
			"iteration": iterations,
			"location":  int(target),
			"group":     group.Key(),
			"strategy":  string(strategy),
		})

		r.cascade(group)
		r.selected.AddAll(group.Members)
		r.adjust()
		r.recompute()

		if a.OnIteration != nil {
			a.OnIteration(iterations, sc)
		}
	}
	return newResult(a.Name(), sc, r.selected, energy, iterations), nil
}

type adjustRun struct {
	sc          *model.Scenario
	energy      energyTable
	selected    model.DeviceSet
	unsatisfied *locationSet
	satisfied   *locationSet
	log         logger.Logger
}

// maxGroupsLocation returns the unsatisfied location with the most
// candidate groups.
func (r *adjustRun) maxGroupsLocation() model.LocationID {
	best, max := model.LocationID(-1), -1
	for _, id := range r.unsatisfied.ids() {
		if n := len(r.sc.Locations[id].Groups); n > max {
			best, max = id, n
		}
	}
	return best
}

func (r *adjustRun) chooseGroup(loc *model.Location) (int, Strategy) {
	if gi := r.maxTotalSatisfy(loc); gi != model.NoGroup {
		return gi, StrategyMaxTotalSatisfy
	}
	if gi := r.maxTotalInvolve(loc); gi != model.NoGroup {
		return gi, StrategyMaxTotalInvolve
	}
	return r.minEnergy(loc), StrategyMinEnergy
}

// reachable returns the unsatisfied locations covered by at least one member
// of g, in ascending order.
func (r *adjustRun) reachable(g model.Group) []model.LocationID {
	seen := newLocationSet(len(r.sc.Locations), false)
	for _, m := range g.Members {
		for _, lid := range r.sc.Devices[m].Coverage {
			if r.unsatisfied.has(lid) {
				seen.add(lid)
			}
		}
	}
	return seen.ids()
}

// totalSatisfy counts the unsatisfied locations owning a group that g would
// complete.
func (r *adjustRun) totalSatisfy(g model.Group) int {
	total := 0
	for _, lid := range r.reachable(g) {
		for _, h := range r.sc.Locations[lid].Groups {
			if IsSatisfy(g, h, r.selected) {
				total++
				break
			}
		}
	}
	return total
}

// totalInvolve counts the candidate groups of unsatisfied locations that g
// would make progress on.
func (r *adjustRun) totalInvolve(g model.Group) int {
	total := 0
	for _, lid := range r.reachable(g) {
		for _, h := range r.sc.Locations[lid].Groups {
			if IsInvolve(g, h, r.selected) {
				total++
			}
		}
	}
	return total
}

func (r *adjustRun) maxTotalSatisfy(loc *model.Location) int {
	return r.maxRatio(loc, r.totalSatisfy)
}

func (r *adjustRun) maxTotalInvolve(loc *model.Location) int {
	return r.maxRatio(loc, r.totalInvolve)
}

// maxRatio returns the group maximising count/marginal energy, skipping
// groups with a zero count. A group whose members are all active has an
// infinite ratio.
func (r *adjustRun) maxRatio(loc *model.Location, count func(model.Group) int) int {
	best, max := model.NoGroup, 0.0
	for gi, g := range loc.Groups {
		n := count(g)
		if n == 0 {
			continue
		}
		ratio := float64(n) / r.energy.marginal(g, r.selected)
		if best == model.NoGroup || ratio > max {
			best, max = gi, ratio
		}
	}
	return best
}

func (r *adjustRun) minEnergy(loc *model.Location) int {
	best, min := model.NoGroup, math.Inf(1)
	for gi, g := range loc.Groups {
		if e := r.energy.marginal(g, r.selected); best == model.NoGroup || e < min {
			best, min = gi, e
		}
	}
	return best
}

// cascade marks satisfied every unsatisfied location reachable from g that
// owns a group g completes.
func (r *adjustRun) cascade(g model.Group) {
	for _, lid := range r.reachable(g) {
		loc := r.sc.Location(lid)
		for hi, h := range loc.Groups {
			if !IsSatisfy(g, h, r.selected) {
				continue
			}
			loc.Select(hi)
			r.unsatisfied.remove(lid)
			r.satisfied.add(lid)
			r.log.Debugw("location satisfied", map[string]any{
				"location": int(lid),
				"group":    h.Key(),
				"strategy": string(StrategyCascade),
			})
			break
		}
	}
}

// adjust switches every satisfied location to a cheaper group whose members
// are all selected.
func (r *adjustRun) adjust() {
	for _, lid := range r.satisfied.ids() {
		loc := r.sc.Location(lid)
		current := loc.Selected
		cost := r.energy.sum(loc.Groups[current].Members)
		for hi, h := range loc.Groups {
			if hi == current || !r.selected.ContainsAll(h.Members) {
				continue
			}
			if e := r.energy.sum(h.Members); e < cost {
				cost = e
				loc.Selected = hi
			}
		}
		if loc.Selected != current {
			r.log.Debugw("selection adjusted", map[string]any{
				"location": int(lid),
				"from":     loc.Groups[current].Key(),
				"to":       loc.Groups[loc.Selected].Key(),
			})
		}
	}
}

// recompute rebuilds the selected devices from the satisfied locations'
// groups, releasing devices no group uses.
func (r *adjustRun) recompute() {
	r.selected = model.NewDeviceSet()
	for _, lid := range r.satisfied.ids() {
		if g, ok := r.sc.Locations[lid].SelectedGroup(); ok {
			r.selected.AddAll(g.Members)
		}
	}
}
