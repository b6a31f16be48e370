// Package util provides helper functions shared across integration tests.
//
// StartMosquitto launches a disposable Mosquitto broker in a Docker container
// for MQTT-based tests. It returns the broker URL and a cleanup function.
//
// StartDeviceSimulator answers activation commands the way a device does.
//
// WaitForMetric polls a Prometheus metrics endpoint until the desired metric
// appears in the output.
package util

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/edgecover/core/activation"
	"github.com/kilianp07/edgecover/core/model"
)

const (
	// Default timeouts for helper operations
	MosquittoReadyTimeout = 5 * time.Second
	MetricTimeout         = 5 * time.Second

	pollInterval = 50 * time.Millisecond
)

// WaitForMetric polls the given metrics URL until the provided substring is
// found in the output or the context is done.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, metricsURL, nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			body, rerr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if rerr != nil {
				return fmt.Errorf("read metrics body: %w", rerr)
			}
			if strings.Contains(string(body), substr) {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("metric %q not found: %w", substr, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

// StartMosquitto launches a temporary Mosquitto broker inside a Docker
// container and returns its broker URL along with a cleanup function.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	conf := `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
connection_messages true
`

	dir, err := os.MkdirTemp("", "mosq")
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, "mosquitto.conf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}

	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				HostFilePath:      path,
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}

	cleanup := func() {
		_ = cont.Terminate(context.Background())
		_ = os.RemoveAll(dir)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		cleanup()
		return "", nil, err
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	waitCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	if err := waitForMQTTReady(waitCtx, broker); err != nil {
		cleanup()
		return "", nil, err
	}

	return broker, cleanup, nil
}

func waitForMQTTReady(ctx context.Context, broker string) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("edgecover-readiness")
	for {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// DeviceSimulator subscribes to every device activation topic and answers on
// the ack topic, except for the devices listed in Silent.
type DeviceSimulator struct {
	cli      paho.Client
	mu       sync.Mutex
	received []activation.Command
	silent   map[model.DeviceID]bool
}

// StartDeviceSimulator connects to broker and starts acknowledging commands.
func StartDeviceSimulator(broker, ackTopic string, silent ...model.DeviceID) (*DeviceSimulator, error) {
	s := &DeviceSimulator{silent: make(map[model.DeviceID]bool)}
	for _, id := range silent {
		s.silent[id] = true
	}
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID(fmt.Sprintf("device-sim-%d", time.Now().UnixNano()))
	s.cli = paho.NewClient(opts)
	if token := s.cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	handler := func(c paho.Client, msg paho.Message) {
		var cmd activation.Command
		if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
			return
		}
		s.mu.Lock()
		s.received = append(s.received, cmd)
		quiet := s.silent[model.DeviceID(cmd.DeviceID)]
		s.mu.Unlock()
		if quiet {
			return
		}
		payload, _ := json.Marshal(activation.Ack{CommandID: cmd.CommandID, DeviceID: cmd.DeviceID})
		c.Publish(ackTopic, 1, false, payload)
	}
	if token := s.cli.Subscribe("edgecover/device/+/activate", 1, handler); token.Wait() && token.Error() != nil {
		s.cli.Disconnect(100)
		return nil, token.Error()
	}
	return s, nil
}

// Received returns the commands seen so far.
func (s *DeviceSimulator) Received() []activation.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]activation.Command(nil), s.received...)
}

// Close disconnects the simulator.
func (s *DeviceSimulator) Close() { s.cli.Disconnect(100) }
