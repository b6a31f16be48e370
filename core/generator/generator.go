// Package generator builds random scenarios: devices, locations and edge
// nodes scattered on a disc, coverage by distance and candidate groups made
// of covering devices. A fixed seed always yields the same scenario.
package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/edgecover/core/logger"
	"github.com/kilianp07/edgecover/core/model"
)

// ErrUncoverable is returned when a location stays out of range of every
// device after the configured number of placement attempts.
var ErrUncoverable = errors.New("location cannot be placed within coverage range")

// Generator produces random scenarios.
type Generator struct {
	cfg       Config
	log       logger.Logger
	unit      distuv.Uniform
	precision distuv.Uniform
}

// New creates a Generator. cfg defaults are applied.
func New(cfg Config, log logger.Logger) (*Generator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	return &Generator{
		cfg:       cfg,
		log:       logger.OrNop(log),
		unit:      distuv.Uniform{Min: 0, Max: 1, Src: src},
		precision: distuv.Uniform{Min: 0, Max: cfg.MaxPrecision, Src: src},
	}, nil
}

// Config returns the effective configuration.
func (g *Generator) Config() Config { return g.cfg }

// point draws a position at radius Radius·U and angle 2π·U.
func (g *Generator) point() []float64 {
	r := g.cfg.Radius * g.unit.Rand()
	a := 2 * math.Pi * g.unit.Rand()
	return []float64{r * math.Cos(a), r * math.Sin(a)}
}

func toPoint(p []float64) model.Point { return model.Point{X: p[0], Y: p[1]} }

// Generate builds a new scenario. Each call consumes the random stream, so
// successive calls on one Generator return different scenarios.
func (g *Generator) Generate() (*model.Scenario, error) {
	nodes := make([][]float64, g.cfg.Nodes)
	for i := range nodes {
		nodes[i] = g.point()
	}
	locations := make([][]float64, g.cfg.Locations)
	for i := range locations {
		locations[i] = g.point()
	}
	devices := make([][]float64, g.cfg.Devices)
	for i := range devices {
		devices[i] = g.point()
	}

	covering := make([][]int, len(locations))
	moved := 0
	for l := range locations {
		for attempt := 0; ; attempt++ {
			covering[l] = g.inRange(locations[l], devices)
			if len(covering[l]) > 0 {
				break
			}
			if attempt == g.cfg.MaxPlacementAttempts {
				return nil, fmt.Errorf("location %d: %w after %d attempts", l, ErrUncoverable, attempt)
			}
			locations[l] = g.point()
			moved++
		}
	}
	if moved > 0 {
		g.log.Debugf("re-placed uncovered locations %d times", moved)
	}

	b := model.NewBuilder(g.cfg.Name)
	for _, p := range nodes {
		b.AddNode(toPoint(p))
	}
	for _, p := range devices {
		energy := make(map[model.NodeID]float64, len(nodes))
		nearest, best := 0, math.Inf(1)
		for n, np := range nodes {
			d := floats.Distance(p, np, 2)
			energy[model.NodeID(n)] = g.cfg.EnergyBase + g.cfg.EnergyPerDistance*d*d
			if d < best {
				nearest, best = n, d
			}
		}
		id := b.AddDevice(toPoint(p), model.NodeID(nearest), energy)
		b.SetPrecision(id, g.precision.Rand())
	}
	groups := 0
	for l, p := range locations {
		lid := b.AddLocation(toPoint(p))
		for _, d := range covering[l] {
			b.Cover(model.DeviceID(d), lid)
		}
		for _, members := range combinations(covering[l], g.cfg.MaxGroupSize, g.cfg.MaxGroupsPerLocation) {
			ids := make([]model.DeviceID, len(members))
			for i, m := range members {
				ids[i] = model.DeviceID(m)
			}
			b.AddGroup(lid, ids...)
			groups++
		}
	}
	sc, err := b.Build()
	if err != nil {
		return nil, err
	}
	g.log.Infof("generated scenario %q: %d nodes, %d devices, %d locations, %d groups",
		sc.Name, len(sc.Nodes), len(sc.Devices), len(sc.Locations), groups)
	return sc, nil
}

// inRange returns the devices within coverage range of p, in ascending order.
func (g *Generator) inRange(p []float64, devices [][]float64) []int {
	var out []int
	for i, d := range devices {
		if floats.Distance(p, d, 2) <= g.cfg.CoverageRange {
			out = append(out, i)
		}
	}
	return out
}

// combinations lists the subsets of items with 1..maxSize elements, smaller
// subsets first and in lexicographic order within a size, stopping at limit.
func combinations(items []int, maxSize, limit int) [][]int {
	var out [][]int
	for size := 1; size <= maxSize && size <= len(items); size++ {
		idx := make([]int, size)
		for i := range idx {
			idx[i] = i
		}
		for {
			if len(out) == limit {
				return out
			}
			c := make([]int, size)
			for i, j := range idx {
				c[i] = items[j]
			}
			out = append(out, c)

			i := size - 1
			for i >= 0 && idx[i] == len(items)-size+i {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for j := i + 1; j < size; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
	return out
}
