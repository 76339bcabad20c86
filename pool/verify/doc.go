// Package verify checks the structural invariants of a block pool.
//
// # Overview
//
// It is primarily used in tests, and by the stress command, to confirm that
// allocation and release keep the pool consistent:
//
//   - FreeList: the chain from the head stays inside the arena, never
//     revisits a block, only visits free blocks, and its length matches the
//     pool's free-block count
//   - Runs: every run head records a length that fits the arena and is
//     followed by exactly length-1 continuation blocks
//   - Partition: free-list blocks and live-run blocks are disjoint and
//     together cover every block
//
// # Quick Start
//
//	if err := verify.AllInvariants(p); err != nil {
//	    t.Fatalf("pool corrupted: %v", err)
//	}
//
// # ValidationError
//
// All checks return *ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string         // Check that failed ("FreeList", "Runs", "Partition")
//	    Message string         // Human-readable description
//	    Block   int            // Block index where the problem was found (-1 if N/A)
//	    Details map[string]any // Additional context
//	}
package verify
