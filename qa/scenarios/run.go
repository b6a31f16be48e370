package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/edgecover/core/model"
	"github.com/kilianp07/edgecover/core/selection"
	"github.com/kilianp07/edgecover/infra/logger"
	"github.com/kilianp07/edgecover/infra/metrics"
	"github.com/kilianp07/edgecover/infra/mqtt"
)

var failureKinds = map[string]error{
	"infeasible_location": selection.ErrInfeasibleLocation,
	"empty_pool":          selection.ErrEmptyPool,
	"missing_energy":      model.ErrMissingEnergy,
}

func RunScenario(t *testing.T, sc *Scenario) {
	for _, c := range sc.Cases {
		t.Run(c.Algorithm, func(t *testing.T) {
			runCase(t, sc, c)
		})
	}
}

func runCase(t *testing.T, sc *Scenario, c Case) {
	scenario, err := sc.Model()
	require.NoError(t, err)

	sink, err := metrics.NewPromSinkWithRegistry(prometheus.NewRegistry())
	require.NoError(t, err)

	pub := mqtt.NewMockPublisher()
	for _, id := range c.FailDevices {
		pub.FailIDs[model.DeviceID(id)] = true
	}
	for _, id := range c.NoAck {
		pub.NoAck[model.DeviceID(id)] = true
	}
	runner := selection.NewRunner(pub, 10*time.Millisecond, sink, nil, logger.NopLogger{})

	rep, err := runner.Run(context.Background(), scenario, c.Algorithm)
	if c.Expected.Error != "" {
		want, ok := failureKinds[c.Expected.Error]
		require.True(t, ok, "unknown failure kind %q", c.Expected.Error)
		require.ErrorIs(t, err, want)
		if c.Expected.Location != nil {
			var le *selection.LocationError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, model.LocationID(*c.Expected.Location), le.Location)
		}
		assert.Zero(t, pub.Sent())
		return
	}
	require.NoError(t, err)

	want := make([]model.DeviceID, len(c.Expected.Devices))
	for i, d := range c.Expected.Devices {
		want[i] = model.DeviceID(d)
	}
	assert.Equal(t, want, rep.Result.Devices)
	assert.InDelta(t, c.Expected.Energy, rep.Result.Energy, 1e-9)
	assert.InDelta(t, c.Expected.LowerBound, rep.LowerBound, 1e-6)
	assert.LessOrEqual(t, rep.LowerBound, rep.Result.Energy+1e-9)

	acked := 0
	for _, ok := range rep.Acks {
		if ok {
			acked++
		}
	}
	assert.Equal(t, c.Expected.Acked, acked)
	for _, id := range c.FailDevices {
		if _, selected := rep.Acks[model.DeviceID(id)]; selected {
			assert.False(t, rep.Acks[model.DeviceID(id)], "device %d", id)
			assert.NotEmpty(t, rep.Errors[model.DeviceID(id)], "device %d", id)
		}
	}
}
