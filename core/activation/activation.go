// Package activation describes how selected devices are told to connect to
// their edge node. Implementations publish one command per device and track
// its acknowledgment.
package activation

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/edgecover/core/model"
)

var (
	// ErrAckTimeout is returned when no acknowledgment is received before the timeout.
	ErrAckTimeout = errors.New("timeout waiting for ack")
	// ErrUnknownCommand is returned when waiting on a command never sent.
	ErrUnknownCommand = errors.New("unknown command")
)

// Publisher sends activation commands to devices and waits for their
// acknowledgments.
type Publisher interface {
	// Activate asks device to connect to node and returns the command
	// identifier used to track the acknowledgment.
	Activate(device model.DeviceID, node model.NodeID) (commandID string, err error)

	// WaitForAck waits for an acknowledgment for the provided command
	// identifier or until the timeout expires.
	WaitForAck(commandID string, timeout time.Duration) (bool, error)
}

// Command is the payload published for one activation.
type Command struct {
	CommandID string `json:"command_id"`
	DeviceID  int    `json:"device_id"`
	NodeID    int    `json:"node_id"`
	Timestamp int64  `json:"timestamp"`
}

// Ack is the payload a device publishes once it is connected.
type Ack struct {
	CommandID string `json:"command_id"`
	DeviceID  int    `json:"device_id"`
}

// Topic returns the topic a device listens on for activation commands.
func Topic(device model.DeviceID) string {
	return fmt.Sprintf("edgecover/device/%d/activate", device)
}

// DefaultAckTopic is where devices publish their acknowledgments.
const DefaultAckTopic = "edgecover/ack"
