// control/trace.go
// Author: momentics <momentics@gmail.com>
//
// Bounded trace of recent allocator events for leak hunting and
// postmortem inspection. The trace allocates; attach it around a pool
// only where that is acceptable.

package control

import (
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-blockpool/api"
)

// Op identifies a traced pool operation.
type Op int

const (
	OpAlloc Op = iota
	OpFree
	OpFreeFast
	OpReset
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	case OpFreeFast:
		return "free_fast"
	case OpReset:
		return "reset"
	}
	return "unknown"
}

// Event is one recorded pool operation.
type Event struct {
	Op     Op
	Offset uintptr
	Err    error
	Time   time.Time
}

// Trace keeps the most recent events up to a fixed cap.
type Trace struct {
	mu  sync.Mutex
	q   *queue.Queue
	cap int
}

// NewTrace creates a trace retaining up to cap events.
func NewTrace(cap int) *Trace {
	if cap < 1 {
		cap = 1
	}
	return &Trace{
		q:   queue.New(),
		cap: cap,
	}
}

// Add records an event, evicting the oldest past the cap.
func (tr *Trace) Add(ev Event) {
	tr.mu.Lock()
	tr.q.Add(ev)
	for tr.q.Length() > tr.cap {
		tr.q.Remove()
	}
	tr.mu.Unlock()
}

// Len returns the number of retained events.
func (tr *Trace) Len() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.q.Length()
}

// Snapshot returns the retained events, oldest first.
func (tr *Trace) Snapshot() []Event {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]Event, 0, tr.q.Length())
	for i := 0; i < tr.q.Length(); i++ {
		out = append(out, tr.q.Get(i).(Event))
	}
	return out
}

// TracedPool records every operation of an inner pool into a Trace.
type TracedPool struct {
	inner api.Pool
	trace *Trace
}

// NewTracedPool wraps inner, recording into trace.
func NewTracedPool(inner api.Pool, trace *Trace) *TracedPool {
	return &TracedPool{inner: inner, trace: trace}
}

// Trace returns the underlying trace.
func (tp *TracedPool) Trace() *Trace { return tp.trace }

func (tp *TracedPool) Alloc() (api.Block, error) {
	b, err := tp.inner.Alloc()
	ev := Event{Op: OpAlloc, Err: err, Time: time.Now()}
	if err == nil {
		ev.Offset = b.Offset()
	}
	tp.trace.Add(ev)
	return b, err
}

func (tp *TracedPool) Free(off uintptr) error {
	err := tp.inner.Free(off)
	tp.trace.Add(Event{Op: OpFree, Offset: off, Err: err, Time: time.Now()})
	return err
}

func (tp *TracedPool) FreeFast(off uintptr) {
	tp.inner.FreeFast(off)
	tp.trace.Add(Event{Op: OpFreeFast, Offset: off, Time: time.Now()})
}

func (tp *TracedPool) Reset() {
	tp.inner.Reset()
	tp.trace.Add(Event{Op: OpReset, Time: time.Now()})
}

func (tp *TracedPool) Size() uint32         { return tp.inner.Size() }
func (tp *TracedPool) Used() uint32         { return tp.inner.Used() }
func (tp *TracedPool) FreeCount() uint32    { return tp.inner.FreeCount() }
func (tp *TracedPool) NoMem() bool          { return tp.inner.NoMem() }
func (tp *TracedPool) Stats() api.PoolStats { return tp.inner.Stats() }

// Ensure compile-time compliance.
var _ api.Pool = (*TracedPool)(nil)
