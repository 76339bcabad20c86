package alloc

import (
	"sync"

	"github.com/buttception/RagdollEngine-sub001/pool"
)

// SyncAllocator is a mutex-protected wrapper around RunAllocator.
// Every operation, including the free-list head update, runs under one lock.
// Payload slices returned by Bytes are not protected.
type SyncAllocator struct {
	mu sync.Mutex
	a  *RunAllocator
}

var _ Allocator = (*SyncAllocator)(nil)

// NewSync creates a thread-safe allocator over p.
func NewSync(p *pool.Pool, opts ...Option) *SyncAllocator {
	return &SyncAllocator{a: New(p, opts...)}
}

// Allocate thread-safely reserves a run of blocks.
func (s *SyncAllocator) Allocate(elemSize, count int) (pool.Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(elemSize, count)
}

// Deallocate thread-safely releases the run headed by ref.
func (s *SyncAllocator) Deallocate(ref pool.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Deallocate(ref)
}

// Bytes thread-safely resolves the payload of ref.
func (s *SyncAllocator) Bytes(ref pool.Ref) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Bytes(ref)
}

// RunLength thread-safely returns the run length recorded for ref.
func (s *SyncAllocator) RunLength(ref pool.Ref) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.RunLength(ref)
}

// Runs thread-safely lists live allocations.
func (s *SyncAllocator) Runs() []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Runs()
}

// Stats thread-safely returns a statistics snapshot.
func (s *SyncAllocator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Stats()
}

// Pool returns the underlying pool. Direct use bypasses the lock.
func (s *SyncAllocator) Pool() *pool.Pool { return s.a.Pool() }

// Do runs fn with the lock held, for callers that need several operations
// or a consistent view of the pool.
func (s *SyncAllocator) Do(fn func(a *RunAllocator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.a)
}

// Close releases the pool under the lock.
func (s *SyncAllocator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.p.Close()
}
