// Package resilience throttles HTTP endpoints with a token bucket.
//
// healthd puts a Limiter in front of the forced-refresh endpoint.
//
//	limiter := resilience.NewLimiter(resilience.LimiterConfig{Rate: 1, Burst: 5})
//	r.With(resilience.Middleware(limiter)).Post("/health/refresh", refresh)
//
// Rejected requests get 429 Too Many Requests with a Retry-After header.
package resilience
