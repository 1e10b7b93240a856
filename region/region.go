// File: region/region.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Convenience constructors for pool backing regions. The pool itself
// never manages region lifetime; whoever obtains a region here owns it.

package region

// Heap returns a garbage-collected region of size bytes, suitable for
// tests and in-process pools. Go slices are at least 8-byte aligned,
// which satisfies every pool alignment exponent relative to the region
// base.
func Heap(size int) []byte {
	return make([]byte, size)
}
