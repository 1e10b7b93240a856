// control/probes.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for pool inspection.

package control

import (
	"sync"

	"github.com/momentics/hioload-blockpool/api"
)

// PoolProbes holds registered probe functions.
type PoolProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewPoolProbes creates a probe registry.
func NewPoolProbes() *PoolProbes {
	return &PoolProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (pp *PoolProbes) RegisterProbe(name string, fn func() any) {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.probes[name] = fn
}

// Attach registers a stats probe for a pool under name.
func (pp *PoolProbes) Attach(name string, p api.Pool) {
	pp.RegisterProbe(name, func() any { return p.Stats() })
}

// DumpState returns output of all probes.
func (pp *PoolProbes) DumpState() map[string]any {
	pp.mu.RLock()
	defer pp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range pp.probes {
		out[k] = fn()
	}
	return out
}
