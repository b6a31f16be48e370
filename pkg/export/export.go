// Package export writes selection reports for consumption outside the CLI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/edgecover/core/selection"
)

// WriteJSON writes the reports to w in JSON format.
func WriteJSON(w io.Writer, reports []selection.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// WriteCSV writes one row per report with a header line.
func WriteCSV(w io.Writer, reports []selection.Report) error {
	cw := csv.NewWriter(w)
	header := []string{"run_id", "scenario", "algorithm", "devices", "energy", "lower_bound", "gap", "iterations", "duration_ms", "error"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range reports {
		ids := make([]string, len(r.Result.Devices))
		for i, d := range r.Result.Devices {
			ids[i] = strconv.Itoa(int(d))
		}
		rec := []string{
			r.RunID,
			r.Scenario,
			r.Algorithm,
			strings.Join(ids, " "),
			formatFloat(r.Result.Energy),
			formatFloat(r.LowerBound),
			formatFloat(r.Gap()),
			strconv.Itoa(r.Result.Iterations),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
			r.Err,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
