//go:build !unix && !windows

package mmap

// Anon falls back to a heap arena when anonymous mappings are not available.
func Anon(size int) ([]byte, Release, error) {
	return Heap(size)
}
