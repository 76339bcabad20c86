// Package mmap provides platform-specific helpers for reserving the arena
// that backs a block pool. Anonymous mappings keep the arena off the Go heap
// so the collector never scans or moves it.
package mmap

import "github.com/cockroachdb/errors"

// Release unmaps or drops an arena. Calling it more than once is a no-op.
type Release func() error

// Heap allocates the arena as an ordinary Go byte slice.
// Requests beyond what the runtime can address are reported as errors
// instead of a makeslice panic.
func Heap(size int) (data []byte, release Release, err error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			data, release, err = nil, nil, errors.Newf("mmap: heap arena of %d bytes: %v", size, r)
		}
	}()
	return make([]byte, size), func() error { return nil }, nil
}

func checkSize(size int) error {
	if size <= 0 {
		return errors.Newf("mmap: invalid arena size %d", size)
	}
	return nil
}
