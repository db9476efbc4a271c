// Package observe provides observability primitives for health evaluation.
//
// It is a pure instrumentation library: it never evaluates checks itself.
// The health aggregator wraps every check evaluation and every status
// recomputation with the Middleware returned by MiddlewareFromObserver, which
// records an OpenTelemetry span, a set of counters and a duration histogram,
// and a structured log line.
package observe
