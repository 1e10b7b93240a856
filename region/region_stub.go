//go:build !unix

// File: region/region_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub mapped regions for unsupported platforms.

package region

import (
	"github.com/momentics/hioload-blockpool/api"
)

// Region is a mapped backing region. Unsupported here.
type Region struct {
	data []byte
}

func (r *Region) Bytes() []byte { return r.data }

func (r *Region) Sync() error { return api.ErrNotSupported }

func (r *Region) Close() error { return nil }

// Map is unavailable; use Heap.
func Map(size int) (*Region, error) {
	return nil, api.ErrNotSupported
}

// MapFile is unavailable; use Heap.
func MapFile(fd uintptr, size int) (*Region, error) {
	return nil, api.ErrNotSupported
}
