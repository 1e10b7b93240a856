// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-blockpool components.

package benchmarks

import (
	"testing"

	"github.com/momentics/hioload-blockpool/core/ringbuf"
	"github.com/momentics/hioload-blockpool/pool"
	"github.com/momentics/hioload-blockpool/region"
)

func newPool(b *testing.B, blockSize uint32, regionSize int) *pool.BlockPool {
	bp, err := pool.New(pool.Config{
		AlignExp:  pool.Align64,
		BlockSize: blockSize,
		Region:    region.Heap(regionSize),
	})
	if err != nil {
		b.Fatal(err)
	}
	return bp
}

// BenchmarkAllocFreeFast measures the lock-free hot path.
func BenchmarkAllocFreeFast(b *testing.B) {
	bp := newPool(b, 256, 1<<20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blk, err := bp.Alloc()
		if err != nil {
			b.Fatal(err)
		}
		bp.FreeFast(blk.Offset())
	}
}

// BenchmarkCheckedFree measures Free with its duplicate scan at
// different free-queue occupancies.
func BenchmarkCheckedFree(b *testing.B) {
	for _, outstanding := range []uint32{1, 64, 1024} {
		b.Run(map[uint32]string{1: "full-queue", 64: "mid", 1024: "near-empty"}[outstanding], func(b *testing.B) {
			bp := newPool(b, 64, 1<<20)
			if bp.Size() < outstanding {
				b.Skip("pool smaller than requested occupancy")
			}
			offs := make([]uintptr, outstanding)
			for i := range offs {
				blk, err := bp.Alloc()
				if err != nil {
					b.Fatal(err)
				}
				offs[i] = blk.Offset()
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				off := offs[i%len(offs)]
				if err := bp.Free(off); err != nil {
					b.Fatal(err)
				}
				blk, err := bp.Alloc()
				if err != nil {
					b.Fatal(err)
				}
				offs[i%len(offs)] = blk.Offset()
			}
		})
	}
}

// BenchmarkRingBufferThroughput measures raw free-queue byte transfer.
func BenchmarkRingBufferThroughput(b *testing.B) {
	rb, err := ringbuf.New(make([]byte, 1024))
	if err != nil {
		b.Fatal(err)
	}
	item := make([]byte, 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if rb.Write(item) != 8 {
			rb.Read(item)
			rb.Write(item)
		}
		rb.Read(item)
	}
}

// BenchmarkLockedPoolParallel measures the mutex wrapper under contention.
func BenchmarkLockedPoolParallel(b *testing.B) {
	lp := pool.NewLocked(newPool(b, 128, 1<<20), nil)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			blk, err := lp.Alloc()
			if err != nil {
				continue
			}
			lp.FreeFast(blk.Offset())
		}
	})
}
