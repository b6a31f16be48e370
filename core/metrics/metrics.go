package metrics

import "time"

// RunEvent describes one completed (or failed) selector run.
type RunEvent struct {
	RunID      string
	Scenario   string
	Algorithm  string
	Devices    int
	Locations  int
	Selected   int
	Energy     float64
	LowerBound float64
	Iterations int
	Duration   time.Duration
	Err        string
	Time       time.Time
}

// Failed reports whether the run ended with an error.
func (e RunEvent) Failed() bool { return e.Err != "" }

// MetricsSink records selector runs for observability purposes.
type MetricsSink interface {
	RecordRun(ev RunEvent) error
}

// ActivationEvent captures one activation command and its acknowledgment.
type ActivationEvent struct {
	RunID        string
	CommandID    string
	Device       int
	Node         int
	Acknowledged bool
	Latency      time.Duration
	Error        string
	Time         time.Time
}

// ActivationRecorder records activation commands sent to devices.
type ActivationRecorder interface {
	RecordActivation(ev ActivationEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error               { return nil }
func (NopSink) RecordActivation(ActivationEvent) error { return nil }
