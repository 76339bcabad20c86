//go:build windows

package mmap

import (
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// Anon commits size bytes of zero-filled, read-write memory with VirtualAlloc.
func Anon(size int) ([]byte, Release, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "mmap: VirtualAlloc of %d bytes", size)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	var once sync.Once
	release := func() error {
		var err error
		once.Do(func() {
			err = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		})
		return err
	}
	return data, release, nil
}
