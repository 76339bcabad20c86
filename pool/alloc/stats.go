package alloc

import "github.com/buttception/RagdollEngine-sub001/pool"

// Stats is a point-in-time snapshot of pool occupancy and allocator activity.
type Stats struct {
	BlockSize  int // Bytes per block
	BlockCount int // Blocks in the arena

	FreeBlocks int // Blocks on the free list
	UsedBlocks int // Blocks reserved by live runs
	LiveRuns   int // Live allocations

	AllocCalls   int   // Allocate calls, including failed ones
	FreeCalls    int   // Deallocate calls, including rejected ones
	FailedAllocs int   // Allocate calls that returned an error
	SearchSteps  int64 // Free-list nodes visited while searching for runs

	PeakUsedBlocks int // High-water mark of UsedBlocks

	// LargestFreeSpan is the longest stretch of address-adjacent free blocks.
	// It is an upper bound on the largest run Allocate can find, since a run
	// must also be consecutive in free-list order.
	LargestFreeSpan int
}

// Utilization returns UsedBlocks / BlockCount (0.0 to 1.0).
func (s Stats) Utilization() float64 {
	if s.BlockCount == 0 {
		return 0
	}
	return float64(s.UsedBlocks) / float64(s.BlockCount)
}

// Stats returns a snapshot of allocator statistics.
func (a *RunAllocator) Stats() Stats {
	s := Stats{
		BlockSize:      a.p.BlockSize(),
		BlockCount:     a.p.BlockCount(),
		FreeBlocks:     a.p.FreeBlocks(),
		LiveRuns:       a.live,
		AllocCalls:     a.stats.AllocCalls,
		FreeCalls:      a.stats.FreeCalls,
		FailedAllocs:   a.stats.FailedAllocs,
		SearchSteps:    a.stats.SearchSteps,
		PeakUsedBlocks: a.stats.PeakUsedBlocks,
	}
	s.UsedBlocks = s.BlockCount - s.FreeBlocks
	if !a.p.Closed() {
		s.LargestFreeSpan = largestFreeSpan(a.p)
	}
	return s
}

func largestFreeSpan(p *pool.Pool) int {
	best, cur := 0, 0
	for i := range p.BlockCount() {
		if p.State(i) != pool.StateFree {
			cur = 0
			continue
		}
		cur++
		best = max(best, cur)
	}
	return best
}
