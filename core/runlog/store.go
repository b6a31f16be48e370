package runlog

import (
	"context"
	"time"

	"github.com/kilianp07/edgecover/core/model"
)

// Record captures one selector run.
type Record struct {
	Timestamp  time.Time        `json:"timestamp"`
	RunID      string           `json:"run_id"`
	Scenario   string           `json:"scenario"`
	Algorithm  string           `json:"algorithm"`
	Devices    []model.DeviceID `json:"devices"`
	Energy     float64          `json:"energy"`
	LowerBound float64          `json:"lower_bound"`
	Iterations int              `json:"iterations"`
	Error      string           `json:"error,omitempty"`
}

// Query defines filters for retrieving records. Zero fields match everything.
type Query struct {
	Start     time.Time
	End       time.Time
	Algorithm string
	Scenario  string
}

// Match reports whether r passes every filter of q.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Algorithm != "" && r.Algorithm != q.Algorithm {
		return false
	}
	if q.Scenario != "" && r.Scenario != q.Scenario {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards every record.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error           { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }
