package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilianp07/edgecover/core/selection"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	data := "logging:\n  backend: jsonl\n  path: " + filepath.Join(dir, "runs.log") + "\n" +
		"generator:\n  radius: 30\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestGenerateSelectCompareHistory(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	scenario := filepath.Join(dir, "scenario.json")

	out, err := execute(t, "generate", "-c", cfg, "-o", scenario, "--devices", "15", "--locations", "5", "--nodes", "2", "--seed", "3", "--name", "cli")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "15 devices") {
		t.Fatalf("unexpected generate output %q", out)
	}

	report := filepath.Join(dir, "report.json")
	chart := filepath.Join(dir, "chart.html")
	out, err = execute(t, "select", scenario, "-c", cfg, "-a", "ESR", "-o", report, "--plot", chart)
	if err != nil {
		t.Fatalf("select: %v\n%s", err, out)
	}
	if !strings.Contains(out, "algorithm:   energy-weighted") {
		t.Fatalf("unexpected select output %q", out)
	}
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var reps []selection.Report
	if err := json.Unmarshal(data, &reps); err != nil || len(reps) != 1 {
		t.Fatalf("bad report %s: %v", data, err)
	}
	if _, err := os.Stat(chart); err != nil {
		t.Fatalf("chart missing: %v", err)
	}

	out, err = execute(t, "compare", scenario, "-c", cfg, "-f", "csv")
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", out)
	}

	out, err = execute(t, "history", "-c", cfg, "-s", "cli", "-a", "energy-weighted")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if strings.Count(out, "energy-weighted") != 2 {
		t.Fatalf("expected two energy-weighted runs, got %q", out)
	}
}

func TestSelect_UnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	if _, err := execute(t, "select", filepath.Join(dir, "missing.json"), "-c", cfg, "-a", "simplex"); err == nil {
		t.Fatal("expected error")
	}
}
