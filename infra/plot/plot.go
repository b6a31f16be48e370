// Package plot renders a scenario and its selection as an HTML scatter chart.
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/edgecover/core/model"
)

// Series names used in the chart legend.
const (
	SeriesNodes      = "Edge nodes"
	SeriesSelected   = "Active devices"
	SeriesUnselected = "Idle devices"
	SeriesLocations  = "Locations"
)

// Render writes the chart of sc to w. selected lists the active devices and
// may be empty.
func Render(w io.Writer, sc *model.Scenario, title string, selected []model.DeviceID) error {
	active := model.NewDeviceSet(selected...)
	var nodes, on, off, locations []opts.ScatterData
	for _, n := range sc.Nodes {
		nodes = append(nodes, point(n.Position, fmt.Sprintf("node %d", n.ID), 16))
	}
	for _, d := range sc.Devices {
		p := point(d.Position, fmt.Sprintf("device %d", d.ID), 10)
		if active.Has(d.ID) {
			on = append(on, p)
		} else {
			off = append(off, p)
		}
	}
	for _, l := range sc.Locations {
		locations = append(locations, point(l.Position, fmt.Sprintf("location %d", l.ID), 6))
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: sc.Name}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	)
	scatter.AddSeries(SeriesNodes, nodes).
		AddSeries(SeriesSelected, on).
		AddSeries(SeriesUnselected, off).
		AddSeries(SeriesLocations, locations)

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderFile writes the chart to path.
func RenderFile(path string, sc *model.Scenario, title string, selected []model.DeviceID) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, sc, title, selected); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func point(p model.Point, name string, size int) opts.ScatterData {
	return opts.ScatterData{Name: name, Value: []interface{}{p.X, p.Y}, SymbolSize: size}
}
