// Package alloc turns byte-sized allocation requests into runs of whole
// blocks taken from a pool.Pool.
//
// # Overview
//
// Every request is converted to a block count:
//
//	totalBytes   = count*elemSize + pool.MetadataSize
//	blocksNeeded = ceil(totalBytes / BlockSize)
//
// The allocator then walks the pool's free list from its head, looking for
// blocksNeeded blocks that are adjacent in the arena and also consecutive in
// the list. The first such run wins. Its length is written into the head
// block's header and the payload ref of the head block is returned.
//
// # Allocator Interface
//
//   - Allocate(elemSize, count): Reserve a run, returns its payload ref
//   - Deallocate(ref): Prepend the whole run to the free list
//   - Bytes(ref): Payload slice of a live run
//   - Stats(): Occupancy and activity snapshot
//
// # Implementations
//
// RunAllocator: Single-threaded allocator. No locking, no reentrancy guard.
//
// SyncAllocator: Mutex wrapper. Same algorithm, each call holds one lock.
//
// # Usage Example
//
//	p, err := pool.New(pool.Config{BlockSize: 64, BlockCount: 4})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	a := alloc.New(p)
//	ref, err := a.Allocate(40, 1) // 40 + 8 header bytes -> 1 block
//	if err != nil {
//	    return err
//	}
//	payload, _ := a.Bytes(ref)    // 56 usable bytes
//	copy(payload, "hello")
//
//	err = a.Deallocate(ref)
//
// # Run Search
//
// The search keeps a candidate start and a counter that begins at 1 on the
// head. If the next list node is the physically next block the counter grows;
// otherwise the candidate restarts at that node. With blocks 0 and 2 free and
// blocks 1 and 3 in use, a 2-block request fails even though 2 blocks are free.
//
// Blocks 2 and 3 free in list order 3 -> 2 also cannot serve a 2-block
// request: a run must be ascending and unbroken in list order.
//
// # Release
//
// Deallocate rebuilds the run's chain from its last block back to its first.
// The last block links to the previous head, and the head moves to the first
// block, so the run is prepended as one chain in address order.
//
// # Errors
//
// ErrNoSpace, ErrBadRef, ErrNotAllocated, ErrBadSize and ErrCorrupt all signal
// usage or configuration bugs. The pool is fixed-size, so retrying without
// freeing something first cannot succeed. Must converts them into panics.
//
// # Thread Safety
//
// RunAllocator instances are not thread-safe. Use SyncAllocator, or the
// process-wide allocator in package global, when several goroutines share a pool.
package alloc
