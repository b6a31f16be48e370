package selection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/edgecover/core/model"
)

// solveCover minimises energy·x subject to every location being covered by at
// least one unit of activation and 0 <= x <= 1.
func solveCover(energy []float64, coveredBy [][]model.DeviceID) (float64, error) {
	n := len(energy)
	rows := len(coveredBy) + 2*n
	g := mat.NewDense(rows, n, nil)
	h := make([]float64, rows)
	for r, devs := range coveredBy {
		for _, d := range devs {
			g.Set(r, int(d), -1)
		}
		h[r] = -1
	}
	base := len(coveredBy)
	for i := 0; i < n; i++ {
		g.Set(base+i, i, 1)
		h[base+i] = 1
		g.Set(base+n+i, i, -1)
	}

	cStd, aStd, bStd := lp.Convert(energy, g, h, nil, nil)
	opt, _, err := lp.Simplex(cStd, aStd, bStd, 1e-7, nil)
	return opt, err
}

// lpSolve points to the function used to solve the relaxation. It can be
// overridden in tests to simulate solver failures.
var lpSolve = solveCover

// LowerBound returns the optimum of the linear relaxation of the covering
// problem: no selection can activate devices for less energy. Group
// structure is ignored, so the bound is not tight in general.
func LowerBound(sc *model.Scenario) (float64, error) {
	energy, err := newEnergyTable(sc)
	if err != nil {
		return 0, err
	}
	if len(sc.Locations) == 0 {
		return 0, nil
	}
	coveredBy := make([][]model.DeviceID, len(sc.Locations))
	for i, loc := range sc.Locations {
		if len(loc.CoveredBy) == 0 {
			return 0, &LocationError{Algorithm: "lower-bound", Location: loc.ID, Err: ErrEmptyPool}
		}
		coveredBy[i] = loc.CoveredBy
	}
	opt, err := lpSolve(energy, coveredBy)
	if err != nil {
		return 0, fmt.Errorf("lower bound: %w", err)
	}
	return opt, nil
}
