// File: pool/blockpool.go
// Package pool implements fixed-size block allocation over a flat region.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"encoding/binary"
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/momentics/hioload-blockpool/api"
	"github.com/momentics/hioload-blockpool/core/ringbuf"
)

// Block addresses travel through the free queue as 8-byte little-endian
// offsets from the pool base — the pool's pointer-size currency.
const addrSize = 8

// Alignment exponents accepted by Config.AlignExp.
const (
	Align4    = 2
	Align8    = 3
	Align16   = 4
	Align32   = 5
	Align64   = 6
	Align128  = 7
	Align256  = 8
	Align512  = 9
	Align1024 = 10
	Align2048 = 11
	Align4096 = 12
)

// Config describes the geometry request for a BlockPool.
type Config struct {
	// AlignExp is the block alignment as a power-of-two exponent,
	// Align4..Align4096.
	AlignExp uint32

	// BlockSize is the requested block size in bytes. It is rounded up
	// to the next multiple of the alignment.
	BlockSize uint32

	// Region is the caller-owned backing memory. The pool never
	// relocates, resizes, or releases it; teardown is the caller
	// reclaiming the region.
	Region []byte
}

// BlockPool partitions a region into equal aligned blocks and recycles
// them through a FIFO free queue carved from the region's tail.
//
// No internal locking: one allocating actor and one freeing actor may
// run concurrently (the free queue's SPSC cursors keep them apart).
// Concurrent callers on the same side, and any Reset, need external
// exclusion — see LockedPool.
type BlockPool struct {
	blockSize uint32
	blockCnt  uint32
	region    []byte
	free      api.FreeQueue

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
}

// New computes the pool geometry over cfg.Region and seeds the free
// queue with every block, lowest offset first.
//
// The block count starts at region/blockSize and shrinks until the
// region tail left over can hold the free queue: the smallest power of
// two of bytes fitting one address per block. A region that cannot host
// a single block plus its queue fails with ErrInvalidConfig.
func New(cfg Config) (*BlockPool, error) {
	if cfg.BlockSize == 0 || len(cfg.Region) == 0 || cfg.AlignExp < Align4 || cfg.AlignExp > Align4096 {
		return nil, api.ErrInvalidConfig
	}
	// Offsets and counts live in the 32-bit domain.
	if uint64(len(cfg.Region)) > math.MaxUint32 {
		return nil, api.ErrInvalidConfig
	}

	align := uint32(1) << cfg.AlignExp
	blockSize := cfg.BlockSize
	if blockSize&(align-1) != 0 {
		blockSize = (blockSize &^ (align - 1)) + align
	}

	// Queue sizing runs in uint64: a candidate count of 2^29 blocks
	// already needs more queue bytes than uint32 can express.
	size := uint64(len(cfg.Region))
	blockCnt := uint32(size / uint64(blockSize))
	var queueSize uint64
	for {
		if blockCnt == 0 {
			return nil, api.ErrInvalidConfig
		}
		queueSize = ceilPow2(uint64(blockCnt) * addrSize)
		if size-uint64(blockCnt)*uint64(blockSize) >= queueSize {
			break
		}
		blockCnt--
	}

	tail := uint64(blockCnt) * uint64(blockSize)
	free, err := ringbuf.New(cfg.Region[tail : tail+queueSize])
	if err != nil {
		return nil, err
	}

	bp := &BlockPool{
		blockSize: blockSize,
		blockCnt:  blockCnt,
		region:    cfg.Region,
		free:      free,
	}
	bp.fill()
	return bp, nil
}

// ceilPow2 rounds v up to the next power of two; exact powers map to
// themselves. v must be nonzero.
func ceilPow2(v uint64) uint64 {
	p := uint64(1) << (bits.Len64(v) - 1)
	if p != v {
		p <<= 1
	}
	return p
}

// fill enqueues every block offset in ascending order, fixing the
// initial allocation order to lowest address first.
func (bp *BlockPool) fill() {
	var item [addrSize]byte
	for i := uint32(0); i < bp.blockCnt; i++ {
		binary.LittleEndian.PutUint64(item[:], uint64(i)*uint64(bp.blockSize))
		bp.free.Write(item[:])
	}
}

// Alloc pops the longest-free block: the block freed longest ago or, at
// startup, the lowest offset. O(1).
func (bp *BlockPool) Alloc() (api.Block, error) {
	var item [addrSize]byte
	if bp.free.Read(item[:]) != addrSize {
		return nil, api.ErrNoMemory
	}
	bp.totalAlloc.Add(1)
	return block{
		region: bp.region,
		off:    uintptr(binary.LittleEndian.Uint64(item[:])),
		size:   bp.blockSize,
	}, nil
}

// Free validates off and returns its block to the pool.
//
// Validation: off must be block-aligned and inside the block array,
// otherwise ErrInvalidAddress. Every entry currently queued is then
// scanned without consuming; a match fails with ErrAlreadyFreed. The
// final enqueue failing after validation means the caller freed more
// than it allocated — surfaced as ErrInternal.
//
// O(free-count) due to the scan; FreeFast is the O(1) alternative.
func (bp *BlockPool) Free(off uintptr) error {
	o := uint64(off)
	if o%uint64(bp.blockSize) != 0 {
		return api.ErrInvalidAddress
	}
	if o/uint64(bp.blockSize) >= uint64(bp.blockCnt) {
		return api.ErrInvalidAddress
	}

	// Double-free guard. The cursor snapshot races with a concurrent
	// freeing actor; single-freer discipline is a precondition.
	cursor := bp.free.Out()
	var item [addrSize]byte
	for bp.free.PeekScan(&cursor, item[:]) == addrSize {
		if binary.LittleEndian.Uint64(item[:]) == o {
			return api.ErrAlreadyFreed
		}
	}

	binary.LittleEndian.PutUint64(item[:], o)
	if bp.free.Write(item[:]) != addrSize {
		return api.ErrInternal
	}
	bp.totalFree.Add(1)
	return nil
}

// FreeFast returns the block at off with no validation and no scan.
// O(1). The caller must guarantee off is a live block of this pool.
func (bp *BlockPool) FreeFast(off uintptr) {
	var item [addrSize]byte
	binary.LittleEndian.PutUint64(item[:], uint64(off))
	bp.free.Write(item[:])
	bp.totalFree.Add(1)
}

// Reset administratively frees every block and restores the ascending
// allocation order. Outstanding blocks become invalid; the caller must
// exclude all other operations for the duration.
func (bp *BlockPool) Reset() {
	bp.free.Reset()
	bp.fill()
}

// Size returns the pool capacity in blocks.
func (bp *BlockPool) Size() uint32 {
	return bp.blockCnt
}

// Used returns the number of outstanding blocks.
func (bp *BlockPool) Used() uint32 {
	return bp.blockCnt - bp.FreeCount()
}

// FreeCount returns the number of blocks available for Alloc.
func (bp *BlockPool) FreeCount() uint32 {
	return bp.free.UsedBytes() / addrSize
}

// NoMem reports whether the pool has no free block.
func (bp *BlockPool) NoMem() bool {
	return bp.free.IsEmpty()
}

// BlockSize returns the aligned per-block size in bytes.
func (bp *BlockPool) BlockSize() uint32 {
	return bp.blockSize
}

// Stats returns an accounting snapshot. TotalAlloc/TotalFree are
// monotonic; Used and Free derive from the queue at call time.
func (bp *BlockPool) Stats() api.PoolStats {
	free := bp.FreeCount()
	return api.PoolStats{
		BlockSize:  bp.blockSize,
		BlockCount: bp.blockCnt,
		Used:       bp.blockCnt - free,
		Free:       free,
		TotalAlloc: bp.totalAlloc.Load(),
		TotalFree:  bp.totalFree.Load(),
	}
}

// block is the api.Block view handed out by Alloc.
type block struct {
	region []byte
	off    uintptr
	size   uint32
}

// Bytes returns the block's memory as a mutable slice.
func (b block) Bytes() []byte {
	return b.region[b.off : b.off+uintptr(b.size)]
}

// Offset returns the block's byte offset from the pool base.
func (b block) Offset() uintptr {
	return b.off
}

// Ensure compile-time compliance.
var _ api.Pool = (*BlockPool)(nil)
var _ api.Block = block{}
