package metrics

import (
	"errors"
	"strconv"

	coremetrics "github.com/kilianp07/edgecover/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records selector runs in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	energy      *prometheus.GaugeVec
	gap         *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
	activations *prometheus.CounterVec
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edgecover_runs_total",
		Help: "Total number of selector runs",
	}, []string{"algorithm", "outcome"})
	energy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "edgecover_run_energy",
		Help: "Activation energy of the last successful run",
	}, []string{"algorithm", "scenario"})
	gap := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "edgecover_run_bound_gap",
		Help: "Energy above the LP lower bound of the last successful run",
	}, []string{"algorithm", "scenario"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "edgecover_run_duration_seconds",
		Help:    "Wall time of a selector run",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})
	activations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edgecover_activations_total",
		Help: "Activation commands sent to devices",
	}, []string{"acknowledged"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if energy, err = register(reg, energy); err != nil {
		return nil, err
	}
	if gap, err = register(reg, gap); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if activations, err = register(reg, activations); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, energy: energy, gap: gap, duration: duration, activations: activations}, nil
}

// register returns the already registered collector when c was registered
// before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the run counters and, for successful runs, the energy gauges.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	outcome := "success"
	if ev.Failed() {
		outcome = "failure"
	}
	s.runs.WithLabelValues(ev.Algorithm, outcome).Inc()
	s.duration.WithLabelValues(ev.Algorithm).Observe(ev.Duration.Seconds())
	if !ev.Failed() {
		s.energy.WithLabelValues(ev.Algorithm, ev.Scenario).Set(ev.Energy)
		s.gap.WithLabelValues(ev.Algorithm, ev.Scenario).Set(ev.Energy - ev.LowerBound)
	}
	return nil
}

// RecordActivation counts activation commands by acknowledgment.
func (s *PromSink) RecordActivation(ev coremetrics.ActivationEvent) error {
	s.activations.WithLabelValues(strconv.FormatBool(ev.Acknowledged)).Inc()
	return nil
}
