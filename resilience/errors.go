package resilience

import "errors"

// ErrRateLimitExceeded reports that no token was available.
var ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")
