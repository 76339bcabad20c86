package typed

// HeapSource allocates from the Go heap. It is the reference Source used to
// compare pool-backed containers against ordinary slices.
type HeapSource[T any] struct {
	live int
}

var _ Source[int] = (*HeapSource[int])(nil)

// Allocate returns make([]T, n).
func (h *HeapSource[T]) Allocate(n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	h.live++
	return make([]T, n), nil
}

// Deallocate drops s; the garbage collector reclaims it.
func (h *HeapSource[T]) Deallocate(s []T) error {
	if cap(s) > 0 {
		h.live--
	}
	return nil
}

// Live returns the number of outstanding allocations.
func (h *HeapSource[T]) Live() int { return h.live }
