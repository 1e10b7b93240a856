// Package ringbuf implements the byte-oriented circular buffer backing
// the block pool's free-list. It satisfies api.FreeQueue over a
// caller-supplied power-of-two storage span with zero allocation and a
// lock-free single-producer/single-consumer discipline.
package ringbuf
