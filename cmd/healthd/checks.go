package main

import (
	"fmt"

	"github.com/jonwraymond/healthstatus/config"
	"github.com/jonwraymond/healthstatus/health"
	"github.com/jonwraymond/healthstatus/observe"
)

// newCheck returns the health.Check for a configured check.
func newCheck(c config.CheckConfig) (health.Check, error) {
	switch c.Type {
	case config.CheckTCP:
		return health.NewDialChecker(c.Name, c.Target, c.Timeout.Duration), nil
	case config.CheckHTTP:
		return health.NewHTTPChecker(health.HTTPCheckerConfig{
			Name:           c.Name,
			URL:            c.Target,
			ExpectedStatus: c.ExpectedStatus,
			Timeout:        c.Timeout.Duration,
			Headers:        c.Headers,
		}), nil
	case config.CheckMemory:
		return health.NewMemoryChecker(health.MemoryCheckerConfig{
			Name:              c.Name,
			CriticalThreshold: c.CriticalThreshold,
		}), nil
	default:
		return nil, fmt.Errorf("unknown check type %q", c.Type)
	}
}

// buildAggregator creates an aggregator with every configured check
// registered in file order.
func buildAggregator(cfg *config.Config, mw *observe.Middleware) (*health.Aggregator, error) {
	agg := health.NewAggregator(health.AggregatorConfig{
		ExpirationWindow: cfg.Health.ExpirationWindow.Duration,
		Middleware:       mw,
	})

	for _, c := range cfg.Checks {
		check, err := newCheck(c)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", c.Name, err)
		}
		agg.RegisterCheck(check)
	}
	return agg, nil
}
