// Package typed puts element types on top of the byte-oriented allocator.
//
// Allocator[T] converts element counts to allocation requests and returns
// []T slices that alias the pool's arena. Only pointer-free element types are
// accepted because the arena may live outside the Go heap:
//
//	a := alloc.New(p)
//	ints, err := typed.For[int64](a)
//	s, err := ints.Allocate(16)
//	...
//	err = ints.Deallocate(s)
//
// Vec[T] is a small growable container written against the Source[T]
// contract, so it runs unchanged over a pool or over HeapSource.
package typed
