// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract block pool API: fixed-size block allocation over a
// caller-supplied flat region, with checked and unchecked deallocation.

package api

// Block is one fixed-size, aligned sub-region of a pool.
type Block interface {
	// Bytes returns the block's memory as a mutable slice.
	Bytes() []byte

	// Offset returns the block's byte offset from the pool base.
	// Offsets are the pool's stable block addresses.
	Offset() uintptr
}

// Pool hands out fixed-size blocks in FIFO order and takes them back.
//
// Raw implementations are unsynchronized: one allocating actor and one
// freeing actor may run concurrently (SPSC), anything more needs a
// wrapper such as pool.LockedPool.
type Pool interface {
	// Alloc pops the longest-free block. Fails with ErrNoMemory when
	// every block is outstanding.
	Alloc() (Block, error)

	// Free returns the block at off to the pool after validating that
	// off belongs to the pool, is block-aligned, and is not already
	// free. O(free-count) due to the double-free scan.
	Free(off uintptr) error

	// FreeFast returns the block at off with no validation. O(1).
	// The caller is solely responsible for off being a live block.
	FreeFast(off uintptr)

	// Reset administratively frees every block. Must be exclusive of
	// all other operations; outstanding blocks become invalid.
	Reset()

	// Size returns the pool capacity in blocks.
	Size() uint32

	// Used returns the number of outstanding blocks.
	Used() uint32

	// FreeCount returns the number of blocks available for Alloc.
	FreeCount() uint32

	// NoMem reports whether Alloc would fail right now.
	NoMem() bool

	// Stats exposes accounting for observability.
	Stats() PoolStats
}

// PoolStats aggregates pool allocation/reuse accounting.
type PoolStats struct {
	BlockSize  uint32
	BlockCount uint32
	Used       uint32
	Free       uint32
	TotalAlloc int64
	TotalFree  int64
}
