package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/edgecover/core/metrics"
	"github.com/kilianp07/edgecover/infra/logger"
)

// InfluxSink writes run events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run as a selection_run point.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, runPoint(ev))
}

// RecordActivation writes an activation command and its acknowledgment.
func (s *InfluxSink) RecordActivation(ev coremetrics.ActivationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, activationPoint(ev))
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func runPoint(ev coremetrics.RunEvent) *write.Point {
	p := write.NewPointWithMeasurement("selection_run").
		AddTag("run_id", ev.RunID).
		AddTag("scenario", ev.Scenario).
		AddTag("algorithm", ev.Algorithm).
		AddTag("success", strconv.FormatBool(!ev.Failed())).
		AddField("devices", ev.Devices).
		AddField("locations", ev.Locations).
		AddField("selected", ev.Selected).
		AddField("energy", round3(ev.Energy)).
		AddField("lower_bound", round3(ev.LowerBound)).
		AddField("iterations", ev.Iterations).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000))
	if ev.Failed() {
		p = p.AddField("error", ev.Err)
	}
	return p.SetTime(ev.Time)
}

func activationPoint(ev coremetrics.ActivationEvent) *write.Point {
	return write.NewPointWithMeasurement("device_activation").
		AddTag("run_id", ev.RunID).
		AddTag("command_id", ev.CommandID).
		AddTag("device_id", strconv.Itoa(ev.Device)).
		AddTag("node_id", strconv.Itoa(ev.Node)).
		AddTag("acknowledged", strconv.FormatBool(ev.Acknowledged)).
		AddField("latency_ms", round3(ev.Latency.Seconds()*1000)).
		AddField("errors", ev.Error).
		SetTime(ev.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
