package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kilianp07/edgecover/core/model"
)

// Verify checks that res satisfies every location of sc: each location has an
// assigned group and every member of that group is among the activated
// devices. All violations are reported, joined.
func Verify(sc *model.Scenario, res Result) error {
	active := model.NewDeviceSet(res.Devices...)
	var errs []error
	for _, loc := range sc.Locations {
		gi, ok := res.Assignments[loc.ID]
		if !ok {
			errs = append(errs, &LocationError{Algorithm: res.Algorithm, Location: loc.ID, Err: ErrNotCovered})
			continue
		}
		if gi < 0 || gi >= len(loc.Groups) {
			errs = append(errs, &LocationError{
				Algorithm: res.Algorithm,
				Location:  loc.ID,
				Err:       fmt.Errorf("%w: group index %d out of range", ErrNotCovered, gi),
			})
			continue
		}
		if g := loc.Groups[gi]; !active.ContainsAll(g.Members) {
			errs = append(errs, &LocationError{
				Algorithm: res.Algorithm,
				Location:  loc.ID,
				Err:       fmt.Errorf("%w: group %s not fully active", ErrNotCovered, g),
			})
		}
	}
	if !slices.IsSorted(res.Devices) {
		errs = append(errs, fmt.Errorf("%s: activated devices not in ascending order", res.Algorithm))
	}
	return errors.Join(errs...)
}
