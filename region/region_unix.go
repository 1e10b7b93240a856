//go:build unix

// File: region/region_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// mmap-backed regions for unix platforms: page-aligned, outside the Go
// heap, shareable across processes when file-backed.

package region

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-blockpool/api"
)

// Region is a mapped backing region. Close unmaps it; every pool and
// block over it is invalid afterwards.
type Region struct {
	data []byte
}

// Bytes returns the mapped span.
func (r *Region) Bytes() []byte { return r.data }

// Sync flushes a file-backed mapping to its file.
func (r *Region) Sync() error {
	return unix.Msync(r.data, unix.MS_SYNC)
}

// Close unmaps the region.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}

// Map creates an anonymous private mapping of size bytes, page-aligned.
func Map(size int) (*Region, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, api.NewError(api.ErrCodeInternal, "anonymous mmap failed").
			WithContext("size", size).
			WithContext("cause", err)
	}
	return &Region{data: data}, nil
}

// MapFile maps the file fd's [0, size) read-write and shared, for pools
// living in shared memory.
func MapFile(fd uintptr, size int) (*Region, error) {
	data, err := unix.Mmap(int(fd), 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return nil, api.NewError(api.ErrCodeInternal, "file mmap failed").
			WithContext("fd", fd).
			WithContext("size", size).
			WithContext("cause", err)
	}
	return &Region{data: data}, nil
}
