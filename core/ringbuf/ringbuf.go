// File: core/ringbuf/ringbuf.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte-oriented SPSC ring buffer over caller-supplied storage.
// One producer and one consumer may run concurrently without locks;
// internal cursors are free-running and masked on access.

package ringbuf

import (
	"sync/atomic"

	"github.com/momentics/hioload-blockpool/api"
)

// RingBuffer is a fixed-capacity circular buffer (power-of-two size).
// It performs no allocation after construction: the storage span passed
// to New is the buffer, owned by the ring for its lifetime.
type RingBuffer struct {
	pool []byte
	mask uint32
	in   uint32
	_    [64]byte // Padding for hot/cold separation
	out  uint32
}

// New prepares a ring buffer over storage. The storage length must be a
// power of two of at least 2 bytes; otherwise ErrQueueCapacity.
func New(storage []byte) (*RingBuffer, error) {
	n := uint32(len(storage))
	if n < 2 || n&(n-1) != 0 {
		return nil, api.ErrQueueCapacity
	}
	return &RingBuffer{
		pool: storage,
		mask: n - 1,
	}, nil
}

// Write copies p into the buffer, returning bytes actually written.
// A short count signals the buffer is full.
func (rb *RingBuffer) Write(p []byte) int {
	in := atomic.LoadUint32(&rb.in)
	out := atomic.LoadUint32(&rb.out)

	size := uint32(len(p))
	free := rb.Cap() - (in - out)
	if size > free {
		size = free
	}

	offset := in & rb.mask
	remain := rb.Cap() - offset
	if remain > size {
		remain = size
	}
	copy(rb.pool[offset:offset+remain], p[:remain])
	copy(rb.pool, p[remain:size])

	atomic.AddUint32(&rb.in, size)
	return int(size)
}

// Read pops the oldest bytes into p, returning bytes actually read.
// A short count signals the buffer is empty.
func (rb *RingBuffer) Read(p []byte) int {
	in := atomic.LoadUint32(&rb.in)
	out := atomic.LoadUint32(&rb.out)

	size := uint32(len(p))
	used := in - out
	if size > used {
		size = used
	}

	offset := out & rb.mask
	remain := rb.Cap() - offset
	if remain > size {
		remain = size
	}
	copy(p[:remain], rb.pool[offset:offset+remain])
	copy(p[remain:size], rb.pool)

	atomic.AddUint32(&rb.out, size)
	return int(size)
}

// PeekScan reads at an explicit caller-held cursor without consuming.
// Only the cursor advances; producer and consumer cursors are untouched.
// Seed the cursor from Out() to walk every queued byte in FIFO order.
//
// The scan races with a concurrent producer by design: entries enqueued
// after the initial cursor snapshot may or may not be seen. Callers that
// need a consistent walk must hold off the producing side.
func (rb *RingBuffer) PeekScan(cursor *uint32, p []byte) int {
	in := atomic.LoadUint32(&rb.in)

	size := uint32(len(p))
	used := in - *cursor
	if size > used {
		size = used
	}

	offset := *cursor & rb.mask
	remain := rb.Cap() - offset
	if remain > size {
		remain = size
	}
	copy(p[:remain], rb.pool[offset:offset+remain])
	copy(p[remain:size], rb.pool)

	*cursor += size
	return int(size)
}

// Out returns a snapshot of the consumer cursor for PeekScan seeding.
func (rb *RingBuffer) Out() uint32 {
	return atomic.LoadUint32(&rb.out)
}

// Reset discards all contents. Must be exclusive of concurrent writers.
func (rb *RingBuffer) Reset() {
	atomic.StoreUint32(&rb.out, atomic.LoadUint32(&rb.in))
}

// UsedBytes returns the number of bytes currently queued.
func (rb *RingBuffer) UsedBytes() uint32 {
	return atomic.LoadUint32(&rb.in) - atomic.LoadUint32(&rb.out)
}

// FreeBytes returns the remaining capacity in bytes.
func (rb *RingBuffer) FreeBytes() uint32 {
	return rb.Cap() - rb.UsedBytes()
}

// IsEmpty reports whether the buffer holds no bytes.
func (rb *RingBuffer) IsEmpty() bool {
	return rb.UsedBytes() == 0
}

// IsFull reports whether the buffer is at capacity.
func (rb *RingBuffer) IsFull() bool {
	return rb.UsedBytes() == rb.Cap()
}

// Cap returns the buffer storage size in bytes.
func (rb *RingBuffer) Cap() uint32 {
	return uint32(len(rb.pool))
}

// Ensure compile-time compliance.
var _ api.FreeQueue = (*RingBuffer)(nil)
