package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	runs        int
	activations int
	err         error
}

func (r *recordSink) RecordRun(RunEvent) error {
	r.runs++
	return r.err
}

func (r *recordSink) RecordActivation(ActivationEvent) error {
	r.activations++
	return nil
}

type runOnlySink struct{ runs int }

func (r *runOnlySink) RecordRun(RunEvent) error {
	r.runs++
	return nil
}

// TestMultiSink ensures events are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &runOnlySink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRun(RunEvent{Algorithm: "group-adjustment"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordActivation(ActivationEvent{CommandID: "c1"}); err != nil {
		t.Fatalf("record activation: %v", err)
	}
	if s1.runs != 1 || s2.runs != 1 {
		t.Fatalf("runs not forwarded: %d %d", s1.runs, s2.runs)
	}
	if s1.activations != 1 {
		t.Fatalf("activation not forwarded")
	}
}

func TestMultiSink_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordRun(RunEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.runs != 0 {
		t.Fatalf("second sink should not be called after an error")
	}
}

func TestRunEvent_Failed(t *testing.T) {
	if (RunEvent{}).Failed() {
		t.Fatal("empty error should not be a failure")
	}
	if !(RunEvent{Err: "infeasible"}).Failed() {
		t.Fatal("expected failure")
	}
}
