package workouts

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// TimingProber answers whether the underlying store carries the
// actual per-set timing columns.
type TimingProber interface {
	ProbeActualTiming(ctx context.Context) (bool, error)
}

// Capabilities caches the schema probe result for the lifetime of the
// process. All callers after the first share the same answer, even
// across goroutines. A probe error is treated as "not supported" and
// also cached, so a flaky store cannot flip the engine between code
// paths mid-flight.
type Capabilities struct {
	prober TimingProber

	mu           sync.Mutex
	probed       bool
	actualTiming bool
}

func NewCapabilities(prober TimingProber) *Capabilities {
	return &Capabilities{prober: prober}
}

// SupportsActualTiming probes the store on first use and returns the
// cached result thereafter.
func (c *Capabilities) SupportsActualTiming(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.probed {
		return c.actualTiming
	}

	supported, err := c.prober.ProbeActualTiming(ctx)
	if err != nil {
		log.Errorf("probe set timing columns: %s", err)
		supported = false
	}
	c.probed = true
	c.actualTiming = supported
	return c.actualTiming
}

// Reset drops the cached probe result. Meant for tests that swap the
// schema between cases.
func (c *Capabilities) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probed = false
	c.actualTiming = false
}
