package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/edgecover/core/model"
)

func TestVerify_ReportsEveryViolation(t *testing.T) {
	sc := scenarioB(t)
	res := Result{
		Algorithm:   "manual",
		Devices:     []model.DeviceID{0},
		Assignments: map[model.LocationID]int{0: 1},
	}
	err := Verify(sc, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotCovered)
	assert.Contains(t, err.Error(), "location 0")
	assert.Contains(t, err.Error(), "location 1")
}

func TestVerify_GroupIndexOutOfRange(t *testing.T) {
	sc := scenarioC(t)
	err := Verify(sc, Result{Devices: []model.DeviceID{0, 1}, Assignments: map[model.LocationID]int{0: 7}})
	assert.ErrorIs(t, err, ErrNotCovered)
}
