package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kilianp07/edgecover/core/model"
	"github.com/kilianp07/edgecover/core/selection"
)

func reports() []selection.Report {
	return []selection.Report{{
		RunID:      "r1",
		Scenario:   "mesh",
		Algorithm:  "group-adjustment",
		Result:     selection.Result{Devices: []model.DeviceID{1, 3}, Energy: 6, Iterations: 2},
		LowerBound: 4,
	}}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, reports()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "r1,mesh,group-adjustment,1 3,6,4,2,2,0," {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, reports()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out []selection.Report
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Result.Energy != 6 {
		t.Fatalf("unexpected output %+v", out)
	}
}
