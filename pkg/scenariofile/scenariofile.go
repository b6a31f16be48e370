// Package scenariofile reads and writes scenarios as JSON or YAML documents.
// The format is picked from the file extension; coveredBy relations are
// derived from device coverage on load.
package scenariofile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/edgecover/core/model"
)

// Format identifies a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported extension or format name.
var ErrUnknownFormat = errors.New("unknown scenario format")

// FormatOf returns the format matching the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

type scenarioDoc struct {
	Name      string        `json:"name" yaml:"name"`
	Nodes     []nodeDoc     `json:"nodes" yaml:"nodes"`
	Devices   []deviceDoc   `json:"devices" yaml:"devices"`
	Locations []locationDoc `json:"locations" yaml:"locations"`
}

type nodeDoc struct {
	ID int     `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}

type deviceDoc struct {
	ID        int             `json:"id" yaml:"id"`
	X         float64         `json:"x" yaml:"x"`
	Y         float64         `json:"y" yaml:"y"`
	Node      int             `json:"node" yaml:"node"`
	Energy    map[int]float64 `json:"energy" yaml:"energy"`
	Coverage  []int           `json:"coverage" yaml:"coverage"`
	Precision float64         `json:"precision,omitempty" yaml:"precision,omitempty"`
}

type locationDoc struct {
	ID     int     `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Groups [][]int `json:"groups" yaml:"groups"`
}

// Read decodes a scenario from r.
func Read(r io.Reader, format Format) (*model.Scenario, error) {
	var doc scenarioDoc
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("read %q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s scenario: %w", format, err)
	}
	return doc.build()
}

// Load reads the scenario stored at path.
func Load(path string) (*model.Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Write encodes sc to w. Selection state is not written.
func Write(w io.Writer, sc *model.Scenario, format Format) error {
	doc := fromScenario(sc)
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("write %q: %w", format, ErrUnknownFormat)
	}
}

// Save writes sc to path, creating or truncating the file.
func Save(path string, sc *model.Scenario) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, sc, format); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func (d scenarioDoc) build() (*model.Scenario, error) {
	b := model.NewBuilder(d.Name)
	for i, n := range d.Nodes {
		if n.ID != i {
			return nil, fmt.Errorf("node at index %d has id %d", i, n.ID)
		}
		b.AddNode(model.Point{X: n.X, Y: n.Y})
	}
	for i, dev := range d.Devices {
		if dev.ID != i {
			return nil, fmt.Errorf("device at index %d has id %d", i, dev.ID)
		}
		energy := make(map[model.NodeID]float64, len(dev.Energy))
		for n, e := range dev.Energy {
			energy[model.NodeID(n)] = e
		}
		id := b.AddDevice(model.Point{X: dev.X, Y: dev.Y}, model.NodeID(dev.Node), energy)
		b.SetPrecision(id, dev.Precision)
	}
	for i, l := range d.Locations {
		if l.ID != i {
			return nil, fmt.Errorf("location at index %d has id %d", i, l.ID)
		}
		b.AddLocation(model.Point{X: l.X, Y: l.Y})
	}
	for _, dev := range d.Devices {
		for _, l := range dev.Coverage {
			b.Cover(model.DeviceID(dev.ID), model.LocationID(l))
		}
	}
	for _, l := range d.Locations {
		for _, g := range l.Groups {
			members := make([]model.DeviceID, len(g))
			for i, m := range g {
				members[i] = model.DeviceID(m)
			}
			b.AddGroup(model.LocationID(l.ID), members...)
		}
	}
	return b.Build()
}

func fromScenario(sc *model.Scenario) scenarioDoc {
	doc := scenarioDoc{
		Name:      sc.Name,
		Nodes:     make([]nodeDoc, len(sc.Nodes)),
		Devices:   make([]deviceDoc, len(sc.Devices)),
		Locations: make([]locationDoc, len(sc.Locations)),
	}
	for i, n := range sc.Nodes {
		doc.Nodes[i] = nodeDoc{ID: int(n.ID), X: n.Position.X, Y: n.Position.Y}
	}
	for i, d := range sc.Devices {
		dd := deviceDoc{
			ID:        int(d.ID),
			X:         d.Position.X,
			Y:         d.Position.Y,
			Node:      int(d.AssociatedNode),
			Energy:    make(map[int]float64, len(d.ConnectionEnergy)),
			Coverage:  make([]int, len(d.Coverage)),
			Precision: d.Precision,
		}
		for n, e := range d.ConnectionEnergy {
			dd.Energy[int(n)] = e
		}
		for j, l := range d.Coverage {
			dd.Coverage[j] = int(l)
		}
		doc.Devices[i] = dd
	}
	for i, l := range sc.Locations {
		ld := locationDoc{ID: int(l.ID), X: l.Position.X, Y: l.Position.Y, Groups: make([][]int, len(l.Groups))}
		for j, g := range l.Groups {
			members := make([]int, len(g.Members))
			for k, m := range g.Members {
				members[k] = int(m)
			}
			ld.Groups[j] = members
		}
		doc.Locations[i] = ld
	}
	return doc
}
