// Package api
// Author: momentics <momentics@gmail.com>
//
// Byte-oriented SPSC ring buffer contract consumed by the block pool
// as its free-list. Short writes/reads signal full/empty instead of errors
// so the hot path stays allocation-free.

package api

// FreeQueue is a power-of-two circular buffer over caller-supplied storage.
//
// One producer and one consumer may operate concurrently without locks;
// everything else requires external synchronization.
type FreeQueue interface {
	// Write copies p into the queue, returning the number of bytes
	// actually written. A short count means the queue is full.
	Write(p []byte) int

	// Read pops the oldest bytes into p, returning the number of bytes
	// actually read. A short count means the queue is empty.
	Read(p []byte) int

	// PeekScan reads at an explicit caller-held cursor without consuming.
	// The cursor advances; the queue itself is not mutated. Seed the
	// cursor from Out() to walk every queued entry in order.
	PeekScan(cursor *uint32, p []byte) int

	// Out returns a snapshot of the consumer cursor for PeekScan seeding.
	Out() uint32

	// Reset discards all contents, emptying the queue.
	Reset()

	// UsedBytes returns the number of bytes currently queued.
	UsedBytes() uint32

	// IsEmpty reports whether the queue holds no bytes.
	IsEmpty() bool

	// Cap returns the queue storage size in bytes.
	Cap() uint32
}
