package typed

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/buttception/RagdollEngine-sub001/internal/format"
	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
)

// Source hands out and takes back storage for n values of T.
// Containers such as Vec depend only on this contract.
type Source[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(s []T) error
}

// Allocator adapts an alloc.Allocator to element counts of T.
type Allocator[T any] struct {
	a        alloc.Allocator
	elemSize int
}

var _ Source[uint64] = (*Allocator[uint64])(nil)

// For returns a typed view over a. It fails for element types that contain
// pointers or need more than format.BlockAlignment alignment.
func For[T any](a alloc.Allocator) (*Allocator[T], error) {
	var zero T
	rt := reflect.TypeOf(&zero).Elem()
	if hasPointers(rt) {
		return nil, errors.Wrapf(ErrPointerType, "%s", rt)
	}
	if align := unsafe.Alignof(zero); align > format.BlockAlignment {
		return nil, errors.Wrapf(ErrAlignment, "%s needs %d-byte alignment", rt, align)
	}
	return &Allocator[T]{a: a, elemSize: int(unsafe.Sizeof(zero))}, nil
}

// MustFor is like For but panics on error.
func MustFor[T any](a alloc.Allocator) *Allocator[T] {
	t, err := For[T](a)
	if err != nil {
		panic(err)
	}
	return t
}

// ElemSize returns unsafe.Sizeof(T).
func (t *Allocator[T]) ElemSize() int { return t.elemSize }

// Allocate reserves room for n values of T and returns a slice of length and
// capacity n aliasing arena memory. n == 0 returns nil without touching the pool.
// The contents are whatever the blocks last held unless the underlying
// allocator zeroes payloads.
func (t *Allocator[T]) Allocate(n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	ref, err := t.a.Allocate(t.elemSize, n)
	if err != nil {
		return nil, err
	}
	b, err := t.a.Bytes(ref)
	if err != nil {
		return nil, errors.CombineErrors(err, t.a.Deallocate(ref))
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// Deallocate returns the run behind s. s must be a slice returned by Allocate,
// starting at its first element; reslicing past the start yields alloc.ErrBadRef.
// A nil or zero-capacity slice is a no-op.
func (t *Allocator[T]) Deallocate(s []T) error {
	if cap(s) == 0 {
		return nil
	}
	return t.a.Deallocate(t.RefOf(s))
}

// RefOf maps the first element of s back to the payload ref of its run.
func (t *Allocator[T]) RefOf(s []T) pool.Ref {
	if cap(s) == 0 {
		return pool.NilRef
	}
	return t.a.Pool().RefFor(uintptr(unsafe.Pointer(unsafe.SliceData(s))))
}

// hasPointers reports whether values of rt hold anything the garbage
// collector would need to trace.
func hasPointers(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return rt.Len() > 0 && hasPointers(rt.Elem())
	case reflect.Struct:
		for i := range rt.NumField() {
			if hasPointers(rt.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
