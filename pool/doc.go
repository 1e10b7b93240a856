// Package pool
// Author: momentics <momentics@gmail.com>
//
// Fixed-size block allocator for heapless and real-time environments.
// Partitions a caller-supplied flat region into equal aligned blocks,
// tracked through a lock-free SPSC free queue carved from the region
// itself. Zero dynamic allocation after construction.
// See blockpool.go and locked.go for implementation details.
package pool
