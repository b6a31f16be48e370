package runlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/edgecover/core/model"
)

func sampleRecords(now time.Time) []Record {
	return []Record{
		{Timestamp: now.Add(-2 * time.Hour), RunID: "r1", Scenario: "grid", Algorithm: "group-adjustment", Devices: []model.DeviceID{1, 3}, Energy: 4},
		{Timestamp: now.Add(-time.Hour), RunID: "r2", Scenario: "grid", Algorithm: "energy-weighted", Devices: []model.DeviceID{2}, Energy: 1},
		{Timestamp: now, RunID: "r3", Scenario: "ring", Algorithm: "energy-weighted", Error: "energy-weighted: location 0: no available device covers the location"},
	}
}

func TestQueryMatch(t *testing.T) {
	now := time.Now()
	recs := sampleRecords(now)
	assert.True(t, Query{}.Match(recs[0]))
	assert.False(t, Query{Algorithm: "energy-weighted"}.Match(recs[0]))
	assert.True(t, Query{Scenario: "ring"}.Match(recs[2]))
	assert.False(t, Query{Start: now.Add(-90 * time.Minute)}.Match(recs[0]))
	assert.False(t, Query{End: now.Add(-90 * time.Minute)}.Match(recs[1]))
}

func TestStores_AppendQuery(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]func() (Store, error){
		"jsonl": func() (Store, error) { return NewJSONLStore(filepath.Join(dir, "runs.jsonl")) },
		"rotating": func() (Store, error) {
			return NewRotatingJSONLStore(filepath.Join(dir, "rot", "runs.jsonl"), 1, 2, 1)
		},
		"sqlite": func() (Store, error) { return NewSQLiteStore(filepath.Join(dir, "runs.db")) },
	}
	now := time.Now()
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			store, err := open()
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			for _, r := range sampleRecords(now) {
				require.NoError(t, store.Append(context.Background(), r))
			}

			all, err := store.Query(context.Background(), Query{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "r1", all[0].RunID)
			assert.Equal(t, []model.DeviceID{1, 3}, all[0].Devices)

			ew, err := store.Query(context.Background(), Query{Algorithm: "energy-weighted", Scenario: "grid"})
			require.NoError(t, err)
			require.Len(t, ew, 1)
			assert.Equal(t, "r2", ew[0].RunID)

			recent, err := store.Query(context.Background(), Query{Start: now.Add(-90 * time.Minute)})
			require.NoError(t, err)
			assert.Len(t, recent, 2)
		})
	}
}

func TestJSONLStore_SkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), Record{RunID: "ok", Timestamp: time.Now()}))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ok", out[0].RunID)
}

func TestRotatingJSONLStore_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewRotatingJSONLStore(path, 1, 5, 1)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Roughly 1.3 MiB of records forces at least one rotation at 1 MB.
	devices := make([]model.DeviceID, 1000)
	for i := range devices {
		devices[i] = model.DeviceID(i)
	}
	const n = 300
	for i := 0; i < n; i++ {
		require.NoError(t, store.Append(context.Background(), Record{Timestamp: time.Now(), Devices: devices}))
	}
	files, err := store.files()
	require.NoError(t, err)
	assert.Greater(t, len(files), 1, "expected rotated backups")

	out, err := store.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, out, n)
}

func TestOpen(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, s)

	s, err = Open(Config{Backend: BackendJSONL, Path: filepath.Join(t.TempDir(), "runs.jsonl")})
	require.NoError(t, err)
	assert.IsType(t, &JSONLStore{}, s)

	_, err = Open(Config{Backend: "csv"})
	assert.Error(t, err)
}
