package scenariofile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/edgecover/core/model"
)

func sample(t *testing.T) *model.Scenario {
	t.Helper()
	b := model.NewBuilder("sample")
	n0 := b.AddNode(model.Point{X: 0, Y: 0})
	n1 := b.AddNode(model.Point{X: 10, Y: 0})
	d0 := b.AddDevice(model.Point{X: 1, Y: 1}, n0, map[model.NodeID]float64{n0: 2, n1: 5})
	d1 := b.AddDevice(model.Point{X: 9, Y: 1}, n1, map[model.NodeID]float64{n1: 3})
	b.SetPrecision(d1, 1.5)
	l0 := b.AddLocation(model.Point{X: 2, Y: 2})
	l1 := b.AddLocation(model.Point{X: 8, Y: 2})
	b.Cover(d0, l0)
	b.Cover(d1, l0)
	b.Cover(d1, l1)
	b.AddGroup(l0, d0)
	b.AddGroup(l0, d0, d1)
	b.AddGroup(l1, d1)
	sc, err := b.Build()
	require.NoError(t, err)
	return sc
}

func TestRoundTrip(t *testing.T) {
	sc := sample(t)
	dir := t.TempDir()
	for _, name := range []string{"sc.json", "sc.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, sc))
		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, sc, got, name)
	}
}

func TestRead_DerivesCoveredBy(t *testing.T) {
	doc := `{"name":"x","nodes":[{"id":0,"x":0,"y":0}],
"devices":[{"id":0,"x":0,"y":0,"node":0,"energy":{"0":1},"coverage":[0]}],
"locations":[{"id":0,"x":1,"y":1,"groups":[[0]]}]}`
	sc, err := Read(strings.NewReader(doc), JSON)
	require.NoError(t, err)
	assert.Equal(t, []model.DeviceID{0}, sc.Locations[0].CoveredBy)
	assert.Equal(t, model.NoGroup, sc.Locations[0].Selected)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader("{"), JSON)
	assert.ErrorContains(t, err, "decode json scenario")

	_, err = Read(strings.NewReader(`{"nodes":[{"id":3}]}`), JSON)
	assert.ErrorContains(t, err, "has id 3")

	missing := `{"nodes":[{"id":0}],"devices":[{"id":0,"node":0,"energy":{}}]}`
	_, err = Read(strings.NewReader(missing), JSON)
	assert.True(t, errors.Is(err, model.ErrMissingEnergy))

	_, err = Read(strings.NewReader(""), Format("toml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	_, err = FormatOf("scenario.txt")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestWrite_YAMLShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t), YAML))
	out := buf.String()
	assert.Contains(t, out, "name: sample")
	assert.Contains(t, out, "coverage:")
	assert.NotContains(t, out, "covered")
}
