package selection

import (
	"errors"
	"fmt"

	"github.com/kilianp07/edgecover/core/model"
)

var (
	// ErrInfeasibleLocation indicates a location has no candidate group any
	// strategy could select.
	ErrInfeasibleLocation = errors.New("infeasible location")
	// ErrEmptyPool indicates no available device can make progress on the
	// remaining unsatisfied locations.
	ErrEmptyPool = errors.New("no available device covers the location")
	// ErrNotCovered is reported by Verify for a location left unsatisfied.
	ErrNotCovered = errors.New("location not covered")
	// ErrUnknownAlgorithm is returned when no selector is registered under a name.
	ErrUnknownAlgorithm = errors.New("unknown selection algorithm")
	// ErrUnknownDevice is returned for a device id outside the scenario.
	ErrUnknownDevice = errors.New("unknown device")
)

// LocationError ties a selection failure to the location that triggered it.
type LocationError struct {
	Algorithm string
	Location  model.LocationID
	Err       error
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("%s: location %d: %v", e.Algorithm, e.Location, e.Err)
}

func (e *LocationError) Unwrap() error { return e.Err }
