package selection

import (
	"fmt"
	"time"
)

// Config defines selection-related settings.
type Config struct {
	// Algorithm is the selector name or alias used by default.
	Algorithm         string `json:"algorithm"`
	DisableLowerBound bool   `json:"disable_lower_bound"`
	AckTimeoutSeconds int    `json:"ack_timeout_seconds"`
	// Publish sends activation commands for the selected devices.
	Publish bool `json:"publish"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = GroupAdjustmentName
	}
	if c.AckTimeoutSeconds == 0 {
		c.AckTimeoutSeconds = 5
	}
}

// Validate checks the algorithm is registered and the timeout is positive.
func (c Config) Validate() error {
	if _, ok := registry.Resolve(c.Algorithm); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, c.Algorithm)
	}
	if c.AckTimeoutSeconds < 0 {
		return fmt.Errorf("ack_timeout_seconds must be positive, got %d", c.AckTimeoutSeconds)
	}
	return nil
}

// AckTimeout returns the acknowledgment timeout as a duration.
func (c Config) AckTimeout() time.Duration {
	return time.Duration(c.AckTimeoutSeconds) * time.Second
}
