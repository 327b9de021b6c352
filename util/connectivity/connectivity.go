package connectivity

import (
	"context"
	"net"
	"time"

	"nodesim/interfaces"
	"nodesim/util/metrics"
)

const (
	DefaultTarget  = "8.8.8.8:53"
	DefaultTimeout = 3 * time.Second
)

// Checker reports whether a TCP connection to target can be opened. It only
// feeds the status display and never touches the simulation.
type Checker struct {
	target  string
	timeout time.Duration
	dialer  net.Dialer
}

func NewChecker(target string, timeout time.Duration) *Checker {
	if target == "" {
		target = DefaultTarget
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{target: target, timeout: timeout}
}

func (c *Checker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	conn, err := c.dialer.DialContext(ctx, "tcp", c.target)
	if err != nil {
		metrics.Gauge(interfaces.METRIC_CONNECTIVITY.String(), 0)
		return false
	}
	_ = conn.Close()
	metrics.Gauge(interfaces.METRIC_CONNECTIVITY.String(), 1)
	return true
}

func (c *Checker) Target() string {
	return c.target
}
