package typed

import "github.com/cockroachdb/errors"

var (
	// ErrPointerType indicates an element type that holds Go pointers. Arena
	// memory is not scanned by the garbage collector, so such values would
	// dangle.
	ErrPointerType = errors.New("typed: element type contains pointers")

	// ErrAlignment indicates an element type whose alignment exceeds the
	// alignment of run payloads.
	ErrAlignment = errors.New("typed: element alignment exceeds payload alignment")
)
