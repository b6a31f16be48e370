package mqtt

import (
	"fmt"
	"sync"
	"time"

	"github.com/kilianp07/edgecover/core/activation"
	"github.com/kilianp07/edgecover/core/model"
)

// MockPublisher is a simple publisher used in tests. Devices listed in
// FailIDs fail to publish; devices listed in NoAck never acknowledge.
type MockPublisher struct {
	Messages   map[model.DeviceID]model.NodeID
	FailIDs    map[model.DeviceID]bool
	NoAck      map[model.DeviceID]bool
	AckResults map[string]bool
	mu         sync.Mutex
}

var _ activation.Publisher = (*MockPublisher)(nil)

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages:   make(map[model.DeviceID]model.NodeID),
		FailIDs:    make(map[model.DeviceID]bool),
		NoAck:      make(map[model.DeviceID]bool),
		AckResults: make(map[string]bool),
	}
}

// Activate records the command or returns an error if configured to fail.
func (m *MockPublisher) Activate(device model.DeviceID, node model.NodeID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[device] {
		return "", fmt.Errorf("publish failed for device %d", device)
	}
	m.Messages[device] = node
	commandID := fmt.Sprintf("cmd-%d", device)
	m.AckResults[commandID] = !m.NoAck[device]
	return commandID, nil
}

// WaitForAck simulates an immediate acknowledgment based on the stored result.
func (m *MockPublisher) WaitForAck(commandID string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	ok, exists := m.AckResults[commandID]
	m.mu.Unlock()
	if !exists {
		return false, fmt.Errorf("%w: %s", activation.ErrUnknownCommand, commandID)
	}
	if !ok {
		return false, fmt.Errorf("%w: %s", activation.ErrAckTimeout, commandID)
	}
	return true, nil
}

// Sent returns the number of commands recorded.
func (m *MockPublisher) Sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}
