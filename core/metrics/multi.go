package metrics

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordActivation forwards activation events to sinks supporting them.
func (m *MultiSink) RecordActivation(ev ActivationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ActivationRecorder); ok {
			if err := rec.RecordActivation(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
