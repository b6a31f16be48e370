// Package app assembles the selection runner and its collaborators from a
// loaded configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/edgecover/config"
	"github.com/kilianp07/edgecover/core/activation"
	coremetrics "github.com/kilianp07/edgecover/core/metrics"
	coremon "github.com/kilianp07/edgecover/core/monitoring"
	"github.com/kilianp07/edgecover/core/runlog"
	"github.com/kilianp07/edgecover/core/selection"
	"github.com/kilianp07/edgecover/infra/logger"
	"github.com/kilianp07/edgecover/infra/metrics"
	"github.com/kilianp07/edgecover/infra/monitoring"
	"github.com/kilianp07/edgecover/infra/mqtt"
)

// App holds the runner and the resources it depends on.
type App struct {
	Runner *selection.Runner
	Store  runlog.Store
	cfg    *config.Config
	mqtt   *mqtt.PahoPublisher
	log    logger.Logger
}

// New creates an App from the configuration. The MQTT publisher is only
// connected when selection.publish is set.
func New(cfg *config.Config) (*App, error) {
	logg := logger.New("app")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := runlog.Open(cfg.Logging.RunLog())
	if err != nil {
		return nil, fmt.Errorf("run log: %w", err)
	}

	a := &App{Store: store, cfg: cfg, log: logg}
	var pub activation.Publisher
	if cfg.Selection.Publish {
		a.mqtt, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = a.mqtt
	}
	a.Runner = selection.NewRunner(pub, cfg.Selection.AckTimeout(), sink, store, logger.New("runner"))
	a.Runner.SetLowerBound(!cfg.Selection.DisableLowerBound)
	return a, nil
}

// ServeMetrics exposes Prometheus metrics until ctx is cancelled when an
// address is configured.
func (a *App) ServeMetrics(ctx context.Context) {
	addr := a.cfg.Metrics.PrometheusAddr
	if addr == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, addr); err != nil {
			a.log.Errorf("prom server: %v", err)
		}
	}()
}

// Close releases the publisher and the run log and flushes error reports.
func (a *App) Close() error {
	if a.mqtt != nil {
		a.mqtt.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return a.Store.Close()
}
