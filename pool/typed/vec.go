package typed

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

const minVecCap = 4

// Vec is a growable vector whose storage comes from a Source.
// Growing allocates a new backing slice, copies, and deallocates the old one.
type Vec[T any] struct {
	src  Source[T]
	data []T
	n    int
}

// NewVec creates an empty vector drawing storage from src.
func NewVec[T any](src Source[T]) *Vec[T] {
	return &Vec[T]{src: src}
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int { return v.n }

// Cap returns the number of elements the current storage can hold.
func (v *Vec[T]) Cap() int { return len(v.data) }

// At returns element i. It panics if i is out of range.
func (v *Vec[T]) At(i int) T {
	v.check(i)
	return v.data[i]
}

// Set replaces element i. It panics if i is out of range.
func (v *Vec[T]) Set(i int, x T) {
	v.check(i)
	v.data[i] = x
}

// Slice returns the live elements. The result is invalidated by growth and Release.
func (v *Vec[T]) Slice() []T { return v.data[:v.n] }

// Push appends x, growing the storage when full.
func (v *Vec[T]) Push(x T) error {
	if v.n == len(v.data) {
		if err := v.Reserve(max(2*len(v.data), minVecCap)); err != nil {
			return err
		}
	}
	v.data[v.n] = x
	v.n++
	return nil
}

// Reserve ensures room for at least n elements.
func (v *Vec[T]) Reserve(n int) error {
	if n <= len(v.data) {
		return nil
	}
	grown, err := v.src.Allocate(n)
	if err != nil {
		return errors.Wrapf(err, "vec: grow to %d", n)
	}
	copy(grown, v.data[:v.n])
	if err := v.src.Deallocate(v.data); err != nil {
		_ = v.src.Deallocate(grown)
		return errors.Wrap(err, "vec: release old storage")
	}
	v.data = grown
	return nil
}

// Release returns the storage to the source and empties the vector.
func (v *Vec[T]) Release() error {
	err := v.src.Deallocate(v.data)
	v.data, v.n = nil, 0
	return err
}

func (v *Vec[T]) check(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("typed: index %d out of range [0:%d]", i, v.n))
	}
}
