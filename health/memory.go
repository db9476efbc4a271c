package health

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// MemoryCheckerConfig configures the memory health checker.
type MemoryCheckerConfig struct {
	// Name identifies the check.
	// Default: "memory"
	Name string

	// CriticalThreshold is the fraction of MaxAlloc at which the check
	// reports DOWN. Value should be between 0 and 1. Default: 0.95 (95%)
	CriticalThreshold float64

	// MaxAlloc is the maximum expected heap allocation in bytes.
	// If zero, the memory obtained from the OS (runtime.MemStats.Sys) is used.
	MaxAlloc uint64
}

// MemoryChecker reports DOWN when heap allocation crosses a threshold.
type MemoryChecker struct {
	config MemoryCheckerConfig

	mu          sync.Mutex
	description string
}

// NewMemoryChecker creates a new memory health checker.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	if config.Name == "" {
		config.Name = "memory"
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}

	return &MemoryChecker{
		config:      config,
		description: "memory usage critical",
	}
}

func (m *MemoryChecker) Name() string {
	return m.config.Name
}

// Description returns the outcome of the most recent evaluation.
func (m *MemoryChecker) Description() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.description
}

// Evaluate reads runtime memory statistics.
func (m *MemoryChecker) Evaluate(ctx context.Context) State {
	if err := ctx.Err(); err != nil {
		m.setDescription("memory check cancelled: " + err.Error())
		return StateDown
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		m.setDescription("memory stats unavailable")
		return StateUp
	}

	usage := float64(stats.Alloc) / float64(maxAlloc)
	if usage >= m.config.CriticalThreshold {
		m.setDescription(fmt.Sprintf("memory usage critical: %.1f%% of %d bytes", usage*100, maxAlloc))
		return StateDown
	}

	m.setDescription(fmt.Sprintf("memory usage normal: %.1f%%", usage*100))
	return StateUp
}

func (m *MemoryChecker) setDescription(s string) {
	m.mu.Lock()
	m.description = s
	m.mu.Unlock()
}

var _ Check = (*MemoryChecker)(nil)
