package selection

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/edgecover/core/model"
)

var (
	selectionLatency  *prometheus.HistogramVec
	devicesActivated  *prometheus.CounterVec
	selectionFailures *prometheus.CounterVec
	selectionEnergy   *prometheus.GaugeVec
	activationAckRate *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.GaugeVec, *prometheus.GaugeVec) {
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selection_latency_seconds",
			Help:    "Time spent by a selector to satisfy every location",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"algorithm"},
	)
	dev := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_devices_activated_total",
			Help: "Number of devices activated by selector runs",
		},
		[]string{"algorithm"},
	)
	fail := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_failures_total",
			Help: "Number of selector runs ending in an error",
		},
		[]string{"algorithm", "reason"},
	)
	energy := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "selection_energy",
			Help: "Activation energy of the last successful run",
		},
		[]string{"algorithm"},
	)
	ack := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activation_ack_rate",
			Help: "Acknowledgment rate of activation commands in the last run",
		},
		[]string{"algorithm"},
	)
	return lat, dev, fail, energy, ack
}

func init() {
	selectionLatency, devicesActivated, selectionFailures, selectionEnergy, activationAckRate = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers selection metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(selectionLatency, devicesActivated, selectionFailures, selectionEnergy, activationAckRate)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	selectionLatency, devicesActivated, selectionFailures, selectionEnergy, activationAckRate = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

// failureReason maps an error to a low cardinality label value.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInfeasibleLocation):
		return "infeasible_location"
	case errors.Is(err, ErrEmptyPool):
		return "empty_pool"
	case errors.Is(err, ErrNotCovered):
		return "not_covered"
	case errors.Is(err, ErrUnknownAlgorithm):
		return "unknown_algorithm"
	case errors.Is(err, model.ErrMissingEnergy):
		return "missing_energy"
	default:
		return "other"
	}
}
