package command

import (
	"fmt"
	"net"
)

// MetricsConfig enables the observability endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `json:"addr,omitempty"`
}

func (c *MetricsConfig) validate() error {
	if c.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("metrics.addr: %w", err)
	}
	return nil
}
