package selection

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/edgecover/core/activation"
	"github.com/kilianp07/edgecover/core/logger"
	"github.com/kilianp07/edgecover/core/metrics"
	"github.com/kilianp07/edgecover/core/model"
	coremon "github.com/kilianp07/edgecover/core/monitoring"
	"github.com/kilianp07/edgecover/core/runlog"
)

// Report summarises one run: the selection, its lower bound and the
// activation outcome per device.
type Report struct {
	RunID      string                    `json:"run_id"`
	Scenario   string                    `json:"scenario"`
	Algorithm  string                    `json:"algorithm"`
	Result     Result                    `json:"result"`
	LowerBound float64                   `json:"lower_bound"`
	Duration   time.Duration             `json:"duration"`
	Acks       map[model.DeviceID]bool   `json:"acks,omitempty"`
	Errors     map[model.DeviceID]string `json:"errors,omitempty"`
	Err        string                    `json:"error,omitempty"`
}

// Gap returns how much energy the selection spends above the lower bound.
func (r Report) Gap() float64 { return r.Result.Energy - r.LowerBound }

// Runner wraps a selector with validation, verification, metrics, run
// history and activation publishing.
type Runner struct {
	publisher  activation.Publisher
	ackTimeout time.Duration
	logger     logger.Logger
	metrics    metrics.MetricsSink
	store      runlog.Store
	lowerBound bool
	mu         sync.Mutex
}

// NewRunner creates a runner. Every dependency is optional: a nil publisher
// disables activation, a nil sink or store disables recording. If ackTimeout
// is zero, a default of five seconds is used.
func NewRunner(publisher activation.Publisher, ackTimeout time.Duration, sink metrics.MetricsSink, store runlog.Store, log logger.Logger) *Runner {
	if ackTimeout <= 0 {
		ackTimeout = 5 * time.Second
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if store == nil {
		store = runlog.NopStore{}
	}
	return &Runner{
		publisher:  publisher,
		ackTimeout: ackTimeout,
		logger:     logger.OrNop(log),
		metrics:    sink,
		store:      store,
		lowerBound: true,
	}
}

// SetLowerBound enables or disables the LP lower bound computation.
func (r *Runner) SetLowerBound(enabled bool) {
	r.mu.Lock()
	r.lowerBound = enabled
	r.mu.Unlock()
}

// Run selects devices for sc with the named selector and publishes an
// activation command for every selected device.
func (r *Runner) Run(ctx context.Context, sc *model.Scenario, algorithm string) (Report, error) {
	return r.run(ctx, sc, algorithm, true)
}

// Compare runs every named selector on an independent copy of sc. Nothing is
// published. A failing selector does not stop the comparison; failures are
// returned joined and recorded in each report.
func (r *Runner) Compare(ctx context.Context, sc *model.Scenario, algorithms ...string) ([]Report, error) {
	if len(algorithms) == 0 {
		algorithms = Names()
	}
	reports := make([]Report, 0, len(algorithms))
	var errs []error
	for _, name := range algorithms {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rep, err := r.run(ctx, sc.Clone(), name, false)
		if err != nil {
			errs = append(errs, err)
		}
		reports = append(reports, rep)
	}
	return reports, errors.Join(errs...)
}

func (r *Runner) run(ctx context.Context, sc *model.Scenario, algorithm string, publish bool) (Report, error) {
	rep := Report{RunID: uuid.NewString(), Scenario: sc.Name, Algorithm: algorithm}
	start := time.Now()

	res, err := r.selectAndVerify(sc, algorithm, &rep)
	rep.Duration = time.Since(start)
	if err != nil {
		rep.Err = err.Error()
		r.fail(ctx, sc, rep, err)
		return rep, err
	}
	rep.Result = res
	r.logger.Infof("%s selected %d of %d devices for %d locations (energy %.3f, lower bound %.3f)",
		rep.Algorithm, len(res.Devices), len(sc.Devices), len(sc.Locations), res.Energy, rep.LowerBound)

	selectionLatency.WithLabelValues(rep.Algorithm).Observe(rep.Duration.Seconds())
	devicesActivated.WithLabelValues(rep.Algorithm).Add(float64(len(res.Devices)))
	selectionEnergy.WithLabelValues(rep.Algorithm).Set(res.Energy)
	r.record(ctx, sc, rep)

	if publish && r.publisher != nil {
		r.activate(ctx, sc, &rep)
	}
	return rep, nil
}

func (r *Runner) selectAndVerify(sc *model.Scenario, algorithm string, rep *Report) (Result, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, err
	}
	sel, err := New(algorithm, r.logger)
	if err != nil {
		return Result{}, err
	}
	rep.Algorithm = sel.Name()
	res, err := sel.Select(sc)
	if err != nil {
		return Result{}, err
	}
	if err := Verify(sc, res); err != nil {
		return Result{}, err
	}
	r.mu.Lock()
	withBound := r.lowerBound
	r.mu.Unlock()
	if withBound {
		lb, err := LowerBound(sc)
		if err != nil {
			r.logger.Warnf("lower bound unavailable: %v", err)
		} else {
			rep.LowerBound = lb
		}
	}
	return res, nil
}

func (r *Runner) fail(ctx context.Context, sc *model.Scenario, rep Report, err error) {
	selectionFailures.WithLabelValues(rep.Algorithm, failureReason(err)).Inc()
	r.logger.Errorf("selection failed: %v", err)
	tags := map[string]string{"module": "selection", "algorithm": rep.Algorithm, "scenario": sc.Name}
	var le *LocationError
	if errors.As(err, &le) {
		tags["location"] = strconv.Itoa(int(le.Location))
	}
	coremon.CaptureException(err, tags)
	r.record(ctx, sc, rep)
}

// record forwards the run to the metrics sink and the run log.
func (r *Runner) record(ctx context.Context, sc *model.Scenario, rep Report) {
	ev := metrics.RunEvent{
		RunID:      rep.RunID,
		Scenario:   rep.Scenario,
		Algorithm:  rep.Algorithm,
		Devices:    len(sc.Devices),
		Locations:  len(sc.Locations),
		Selected:   len(rep.Result.Devices),
		Energy:     rep.Result.Energy,
		LowerBound: rep.LowerBound,
		Iterations: rep.Result.Iterations,
		Duration:   rep.Duration,
		Err:        rep.Err,
		Time:       time.Now(),
	}
	if err := r.metrics.RecordRun(ev); err != nil {
		r.logger.Errorf("metrics error: %v", err)
	}
	if err := r.store.Append(ctx, runlog.Record{
		Timestamp:  ev.Time,
		RunID:      rep.RunID,
		Scenario:   rep.Scenario,
		Algorithm:  rep.Algorithm,
		Devices:    rep.Result.Devices,
		Energy:     rep.Result.Energy,
		LowerBound: rep.LowerBound,
		Iterations: rep.Result.Iterations,
		Error:      rep.Err,
	}); err != nil {
		r.logger.Errorf("run log error: %v", err)
	}
}

// activate publishes the commands concurrently and records acknowledgments.
func (r *Runner) activate(ctx context.Context, sc *model.Scenario, rep *Report) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ackCount int
	)
	rep.Acks = make(map[model.DeviceID]bool, len(rep.Result.Devices))
	rep.Errors = make(map[model.DeviceID]string)
	ar, recordActivation := r.metrics.(metrics.ActivationRecorder)

	update := func(d *model.Device, cmdID string, ack bool, err error, dur time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		ok := err == nil && ack
		rep.Acks[d.ID] = ok
		ev := metrics.ActivationEvent{
			RunID:        rep.RunID,
			CommandID:    cmdID,
			Device:       int(d.ID),
			Node:         int(d.AssociatedNode),
			Acknowledged: ok,
			Latency:      dur,
			Time:         time.Now(),
		}
		if err != nil {
			rep.Errors[d.ID] = err.Error()
			ev.Error = err.Error()
		}
		if ok {
			ackCount++
		}
		if recordActivation {
			if rerr := ar.RecordActivation(ev); rerr != nil {
				r.logger.Errorf("activation metrics error: %v", rerr)
			}
		}
	}
	for _, id := range rep.Result.Devices {
		d := sc.Device(id)
		if err := ctx.Err(); err != nil {
			update(d, "", false, err, 0)
			continue
		}
		wg.Add(1)
		go func(d *model.Device) {
			defer wg.Done()
			defer coremon.Recover()
			cmdID, ack, dur, err := r.sendAndWait(d)
			update(d, cmdID, ack, err, dur)
		}(d)
	}
	wg.Wait()
	if total := len(rep.Result.Devices); total > 0 {
		activationAckRate.WithLabelValues(rep.Algorithm).Set(float64(ackCount) / float64(total))
	}
	if n := len(rep.Errors); n > 0 {
		r.logger.Warnf("%d of %d activations failed", n, len(rep.Result.Devices))
	}
}

// sendAndWait sends the command and waits for an acknowledgment while measuring
// the latency.
func (r *Runner) sendAndWait(d *model.Device) (string, bool, time.Duration, error) {
	start := time.Now()
	cmdID, err := r.publisher.Activate(d.ID, d.AssociatedNode)
	if err != nil {
		return "", false, time.Since(start), err
	}
	ack, err := r.publisher.WaitForAck(cmdID, r.ackTimeout)
	return cmdID, ack, time.Since(start), err
}
