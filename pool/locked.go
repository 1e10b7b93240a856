// File: pool/locked.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex-injected pool wrapper for deployments that cannot hold the
// SPSC discipline. The raw BlockPool stays lock-free; callers opt into
// synchronization here instead of paying for it in the hot path.

package pool

import (
	"sync"

	"github.com/momentics/hioload-blockpool/api"
)

// LockedPool serializes every operation of an inner pool with an
// externally supplied sync.Locker.
type LockedPool struct {
	mu    sync.Locker
	inner api.Pool
}

// NewLocked wraps inner with mu. A nil mu gets a private sync.Mutex.
func NewLocked(inner api.Pool, mu sync.Locker) *LockedPool {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &LockedPool{mu: mu, inner: inner}
}

func (lp *LockedPool) Alloc() (api.Block, error) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.Alloc()
}

func (lp *LockedPool) Free(off uintptr) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.Free(off)
}

func (lp *LockedPool) FreeFast(off uintptr) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.inner.FreeFast(off)
}

func (lp *LockedPool) Reset() {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.inner.Reset()
}

func (lp *LockedPool) Size() uint32 {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.Size()
}

func (lp *LockedPool) Used() uint32 {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.Used()
}

func (lp *LockedPool) FreeCount() uint32 {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.FreeCount()
}

func (lp *LockedPool) NoMem() bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.NoMem()
}

func (lp *LockedPool) Stats() api.PoolStats {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.inner.Stats()
}

// Ensure compile-time compliance.
var _ api.Pool = (*LockedPool)(nil)
