// Package scenarios runs YAML-described selection cases end to end through
// the runner with a mock publisher.
package scenarios

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/edgecover/core/model"
	"github.com/kilianp07/edgecover/pkg/scenariofile"
)

type Expected struct {
	Devices    []int   `yaml:"devices"`
	Energy     float64 `yaml:"energy"`
	LowerBound float64 `yaml:"lower_bound"`
	// Error names the failure kind: infeasible_location, empty_pool or
	// missing_energy. Empty means success.
	Error    string `yaml:"error,omitempty"`
	Location *int   `yaml:"location,omitempty"`
	Acked    int    `yaml:"acked"`
}

type Case struct {
	Algorithm   string   `yaml:"algorithm"`
	FailDevices []int    `yaml:"fail_devices,omitempty"`
	NoAck       []int    `yaml:"no_ack,omitempty"`
	Expected    Expected `yaml:"expected"`
}

type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Scenario    yaml.Node `yaml:"scenario"`
	Cases       []Case    `yaml:"cases"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Model decodes the embedded scenario document.
func (s *Scenario) Model() (*model.Scenario, error) {
	var buf bytes.Buffer
	if err := yaml.NewEncoder(&buf).Encode(&s.Scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	return scenariofile.Read(&buf, scenariofile.YAML)
}
