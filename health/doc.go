// Package health aggregates registered health checks into a single cached
// UP/DOWN Status.
//
// # Core Concepts
//
// A Check is an object-style check with a name, a failure description and an
// Evaluate method. A CheckFunc is a bare closure; when it reports DOWN the
// fixed ClosureDownDetail is recorded instead of a description.
//
// The Aggregator evaluates every registered check, collects the description of
// each failing one, and produces a Status: DOWN when any check failed, UP
// otherwise. The Status is cached for the configured expiration window
// (30 seconds by default) and recomputed lazily by the next read after it
// expires.
//
// # Basic Usage
//
//	agg := health.NewAggregator(health.AggregatorConfig{
//	    ExpirationWindow: 10 * time.Second,
//	})
//	agg.RegisterCheck(health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//	agg.RegisterCheckFunc(func(ctx context.Context) health.State {
//	    if db.PingContext(ctx) != nil {
//	        return health.StateDown
//	    }
//	    return health.StateUp
//	})
//
//	status := agg.Status(ctx)
//	if status.State() == health.StateDown {
//	    log.Printf("unhealthy: %v", status.Details())
//	}
//
// # Serialization
//
// Status encodes to {"status","details","timestamp"} with the timestamp in
// TimestampLayout. Decoding rejects unknown states and malformed timestamps
// with an *InvalidDataError that wraps ErrInvalidData.
//
// # HTTP Endpoints
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
//
// The status handlers answer 200 for UP and 503 for DOWN.
//
// # Limitations
//
// Recomputation runs every check sequentially on the calling goroutine and
// waits for each to return. There is no per-check timeout; a check that
// blocks stalls every reader until it completes.
package health
