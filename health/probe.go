package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPCheckerConfig configures an HTTP probe check.
type HTTPCheckerConfig struct {
	// Name identifies the check.
	Name string

	// URL is requested with GET on every evaluation.
	URL string

	// ExpectedStatus is the response code that counts as UP.
	// Default: 200
	ExpectedStatus int

	// Timeout bounds a single request.
	// Default: 5 seconds
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string
}

// HTTPChecker reports UP when a GET of URL answers with ExpectedStatus.
type HTTPChecker struct {
	config HTTPCheckerConfig
	client *resty.Client

	mu          sync.Mutex
	description string
}

// NewHTTPChecker creates an HTTP probe check.
func NewHTTPChecker(config HTTPCheckerConfig) *HTTPChecker {
	if config.ExpectedStatus == 0 {
		config.ExpectedStatus = http.StatusOK
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetHeaders(config.Headers)

	return &HTTPChecker{
		config:      config,
		client:      client,
		description: fmt.Sprintf("%s: GET %s failed", config.Name, config.URL),
	}
}

func (c *HTTPChecker) Name() string {
	return c.config.Name
}

// Description returns the last probe failure, prefixed with the check name.
func (c *HTTPChecker) Description() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.description
}

func (c *HTTPChecker) Evaluate(ctx context.Context) State {
	resp, err := c.client.R().SetContext(ctx).Get(c.config.URL)
	if err != nil {
		c.fail(fmt.Sprintf("%s: GET %s: %v", c.config.Name, c.config.URL, err))
		return StateDown
	}

	if resp.StatusCode() != c.config.ExpectedStatus {
		c.fail(fmt.Sprintf("%s: GET %s: expected status %d, got %d",
			c.config.Name, c.config.URL, c.config.ExpectedStatus, resp.StatusCode()))
		return StateDown
	}

	return StateUp
}

func (c *HTTPChecker) fail(description string) {
	c.mu.Lock()
	c.description = description
	c.mu.Unlock()
}

var _ Check = (*HTTPChecker)(nil)
