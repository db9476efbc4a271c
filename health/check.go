package health

import "context"

// ClosureDownDetail is the detail recorded when a CheckFunc reports DOWN.
// Closures carry no description of their own.
const ClosureDownDetail = "A health check closure reported status as DOWN."

// Check is an object-style health check.
//
// Contract:
//   - Evaluate must not panic; failures are reported as StateDown.
//   - Description is read after Evaluate returns DOWN and becomes the detail
//     string of the aggregate Status.
//   - Evaluate may honor ctx, but the Aggregator imposes no deadline on it.
type Check interface {
	// Name returns a short identifier for the check.
	Name() string

	// Description returns the human-readable failure description.
	Description() string

	// Evaluate runs the check.
	Evaluate(ctx context.Context) State
}

// CheckFunc is a closure-style check. It has no name or description.
type CheckFunc func(ctx context.Context) State

// Evaluate calls f(ctx).
func (f CheckFunc) Evaluate(ctx context.Context) State {
	return f(ctx)
}

// funcCheck adapts a function to the object-style Check interface.
type funcCheck struct {
	name        string
	description string
	fn          func(context.Context) State
}

// NewCheck creates an object-style Check from a name, a failure description
// and an evaluation function.
func NewCheck(name, description string, fn func(context.Context) State) Check {
	return &funcCheck{name: name, description: description, fn: fn}
}

func (c *funcCheck) Name() string {
	return c.name
}

func (c *funcCheck) Description() string {
	return c.description
}

func (c *funcCheck) Evaluate(ctx context.Context) State {
	return c.fn(ctx)
}
