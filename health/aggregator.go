package health

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/healthstatus/observe"
)

// DefaultExpirationWindow is how long a computed Status is served from cache.
const DefaultExpirationWindow = 30 * time.Second

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// ExpirationWindow is how long a computed Status stays fresh.
	// Default: 30 seconds
	ExpirationWindow time.Duration

	// Logger receives state-transition logs.
	// Default: the Middleware's logger, or a no-op logger.
	Logger observe.Logger

	// Middleware instruments check evaluation and recomputation.
	// Default: no-op tracing and metrics.
	Middleware *observe.Middleware

	// Now returns the current time.
	// Default: time.Now
	Now func() time.Time
}

// Aggregator holds registered checks and a cached aggregate Status.
//
// Reads of Status recompute the cache synchronously once it is older than the
// expiration window. Recomputation is a full scan: every check runs, in
// registration order, on the calling goroutine, with no per-check timeout. A
// check that blocks therefore blocks every caller of Status until it returns.
type Aggregator struct {
	config AggregatorConfig
	mw     *observe.Middleware
	logger observe.Logger

	// checksMu guards the registration slices. It is never held while a
	// check runs, so a check may register further checks.
	checksMu sync.RWMutex
	checks   []Check
	funcs    []CheckFunc

	// mu guards cached across the read-check-recompute sequence.
	mu     sync.Mutex
	cached Status
}

// NewAggregator creates a new health aggregator. Its initial Status is UP
// with no details, stamped now.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	var cfg AggregatorConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.ExpirationWindow <= 0 {
		cfg.ExpirationWindow = DefaultExpirationWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	mw := cfg.Middleware
	if mw == nil {
		mw = observe.NewMiddleware(nil, nil, cfg.Logger)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = mw.Logger()
	}

	return &Aggregator{
		config: cfg,
		mw:     mw,
		logger: logger,
		cached: NewStatusAt(StateUp, nil, toMillis(cfg.Now())),
	}
}

// ExpirationWindow returns the configured expiration window.
func (a *Aggregator) ExpirationWindow() time.Duration {
	return a.config.ExpirationWindow
}

// RegisterCheck appends an object-style check. Nil checks are ignored.
func (a *Aggregator) RegisterCheck(check Check) {
	if check == nil {
		return
	}
	a.checksMu.Lock()
	defer a.checksMu.Unlock()
	a.checks = append(a.checks, check)
}

// RegisterCheckFunc appends a closure-style check. Nil functions are ignored.
func (a *Aggregator) RegisterCheckFunc(fn CheckFunc) {
	if fn == nil {
		return
	}
	a.checksMu.Lock()
	defer a.checksMu.Unlock()
	a.funcs = append(a.funcs, fn)
}

// CheckCount returns the number of registered checks of both kinds.
func (a *Aggregator) CheckCount() int {
	a.checksMu.RLock()
	defer a.checksMu.RUnlock()
	return len(a.checks) + len(a.funcs)
}

// Status returns the cached Status, recomputing it first when it has expired.
// Concurrent callers that find the cache stale wait for a single
// recomputation and all receive its result.
func (a *Aggregator) Status(ctx context.Context) Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stale(toMillis(a.config.Now())) {
		a.update(ctx)
	}
	return a.cached
}

// ForceUpdateStatus recomputes the Status regardless of its age and returns it.
func (a *Aggregator) ForceUpdateStatus(ctx context.Context) Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.update(ctx)
	return a.cached
}

// stale reports whether the cached Status is older than the expiration
// window. A clock that has not advanced past the timestamp, or has gone
// backwards, counts as fresh.
func (a *Aggregator) stale(now int64) bool {
	ts := a.cached.TimestampMillis()
	if now <= ts {
		return false
	}
	return now-ts > a.config.ExpirationWindow.Milliseconds()
}

// update runs every check and replaces the cached Status. Callers hold a.mu.
func (a *Aggregator) update(ctx context.Context) {
	a.checksMu.RLock()
	checks := slices.Clone(a.checks)
	funcs := slices.Clone(a.funcs)
	a.checksMu.RUnlock()

	var details []string
	run := a.mw.WrapUpdate(len(checks)+len(funcs), func(ctx context.Context) (string, int) {
		details = a.evaluate(ctx, checks, funcs)
		return stateOf(details).String(), len(details)
	})
	run(ctx)

	previous := a.cached.State()
	a.cached = NewStatusAt(stateOf(details), details, toMillis(a.config.Now()))

	if previous != a.cached.State() {
		a.logger.Info(ctx, "health state changed",
			observe.Field{Key: "from", Value: previous.String()},
			observe.Field{Key: "to", Value: a.cached.State().String()},
			observe.Field{Key: "details", Value: a.cached.Details()},
		)
	}
}

// evaluate returns the failure details of object checks followed by those of
// closure checks, each in registration order.
func (a *Aggregator) evaluate(ctx context.Context, checks []Check, funcs []CheckFunc) []string {
	var details []string

	for i, check := range checks {
		meta := observe.CheckMeta{Name: check.Name(), Kind: observe.KindObject, Index: i}
		up := a.mw.Wrap(func(ctx context.Context, _ observe.CheckMeta) bool {
			return check.Evaluate(ctx) != StateDown
		})(ctx, meta)
		if !up {
			details = append(details, check.Description())
		}
	}

	for i, fn := range funcs {
		meta := observe.CheckMeta{Kind: observe.KindClosure, Index: i}
		up := a.mw.Wrap(func(ctx context.Context, _ observe.CheckMeta) bool {
			return fn(ctx) != StateDown
		})(ctx, meta)
		if !up {
			details = append(details, ClosureDownDetail)
		}
	}

	return details
}

func stateOf(details []string) State {
	if len(details) == 0 {
		return StateUp
	}
	return StateDown
}

// Checker returns the aggregator as an object-style Check, so it can be
// registered with another Aggregator. It must not be registered with itself.
func (a *Aggregator) Checker() Check {
	return &aggregatorCheck{agg: a}
}

type aggregatorCheck struct {
	agg *Aggregator

	mu   sync.Mutex
	last Status
}

func (c *aggregatorCheck) Name() string {
	return "aggregate"
}

func (c *aggregatorCheck) Description() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.last.details) == 0 {
		return "all checks passed"
	}
	return "some checks failed: " + strings.Join(c.last.details, "; ")
}

func (c *aggregatorCheck) Evaluate(ctx context.Context) State {
	status := c.agg.Status(ctx)

	c.mu.Lock()
	c.last = status
	c.mu.Unlock()

	return status.State()
}
