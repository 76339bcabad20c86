//go:build unix

package mmap

import (
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Anon maps size bytes of private, zero-filled, read-write memory.
func Anon(size int) ([]byte, Release, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "mmap: anonymous mapping of %d bytes", size)
	}
	var once sync.Once
	release := func() error {
		var err error
		once.Do(func() {
			err = unix.Munmap(data)
			if errors.Is(err, unix.EINVAL) {
				// Treat double-unmap as no-op for callers.
				err = nil
			}
		})
		return err
	}
	return data, release, nil
}
