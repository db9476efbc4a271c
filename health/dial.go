package health

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// DialChecker reports UP when a TCP connection to Address can be opened.
type DialChecker struct {
	name    string
	address string
	timeout time.Duration

	mu          sync.Mutex
	description string
}

// NewDialChecker creates a TCP dial check. A non-positive timeout defaults to
// five seconds; the timeout belongs to the dial, not to the aggregator.
func NewDialChecker(name, address string, timeout time.Duration) *DialChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DialChecker{
		name:        name,
		address:     address,
		timeout:     timeout,
		description: fmt.Sprintf("%s: tcp %s unreachable", name, address),
	}
}

func (c *DialChecker) Name() string {
	return c.name
}

// Description returns the last dial failure, prefixed with the check name.
func (c *DialChecker) Description() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.description
}

func (c *DialChecker) Evaluate(ctx context.Context) State {
	dialer := &net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		c.mu.Lock()
		c.description = fmt.Sprintf("%s: dial tcp %s: %v", c.name, c.address, err)
		c.mu.Unlock()
		return StateDown
	}
	_ = conn.Close()
	return StateUp
}

var _ Check = (*DialChecker)(nil)
