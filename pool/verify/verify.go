package verify

import (
	"fmt"

	"github.com/buttception/RagdollEngine-sub001/pool"
)

// ValidationError describes a violated pool invariant.
type ValidationError struct {
	Type    string
	Message string
	Block   int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Block >= 0 {
		return fmt.Sprintf("%s at block %d: %s", e.Type, e.Block, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates all pool invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(p *pool.Pool) error {
	if err := FreeList(p); err != nil {
		return err
	}
	if err := Runs(p); err != nil {
		return err
	}
	return Partition(p)
}

// FreeChain returns the free list as block indexes, head first. The walk stops
// after BlockCount steps so a cyclic list cannot hang the caller.
func FreeChain(p *pool.Pool) []int {
	if p.Closed() {
		return nil
	}
	var chain []int
	for i := p.Head(); i != pool.NilIndex && len(chain) < p.BlockCount(); {
		chain = append(chain, int(i))
		if int(i) < 0 || int(i) >= p.BlockCount() {
			break
		}
		i = p.Next(int(i))
	}
	return chain
}

// FreeList validates the chain reachable from the free-list head.
func FreeList(p *pool.Pool) error {
	if p.Closed() {
		return &ValidationError{Type: "FreeList", Message: "pool is closed", Block: -1}
	}

	seen := make([]bool, p.BlockCount())
	steps := 0
	for i := p.Head(); i != pool.NilIndex; i = p.Next(int(i)) {
		idx := int(i)
		if idx < 0 || idx >= p.BlockCount() {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("link out of range: %d (block count %d)", idx, p.BlockCount()),
				Block:   -1,
				Details: map[string]any{"step": steps},
			}
		}
		if seen[idx] {
			return &ValidationError{
				Type:    "FreeList",
				Message: "cycle: block reached twice",
				Block:   idx,
				Details: map[string]any{"step": steps},
			}
		}
		if st := p.State(idx); st != pool.StateFree {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("listed block is %s", st),
				Block:   idx,
			}
		}
		seen[idx] = true
		steps++
	}

	if steps != p.FreeBlocks() {
		return &ValidationError{
			Type:    "FreeList",
			Message: fmt.Sprintf("list length %d does not match free count %d", steps, p.FreeBlocks()),
			Block:   -1,
			Details: map[string]any{"listed": steps, "free": p.FreeBlocks()},
		}
	}
	return nil
}

// Runs validates every live run by scanning the arena in address order.
func Runs(p *pool.Pool) error {
	if p.Closed() {
		return &ValidationError{Type: "Runs", Message: "pool is closed", Block: -1}
	}

	for i := 0; i < p.BlockCount(); i++ {
		switch p.State(i) {
		case pool.StateFree:
			continue
		case pool.StateContinuation:
			return &ValidationError{Type: "Runs", Message: "continuation block without a run head", Block: i}
		case pool.StateHead:
			n := p.RunLength(i)
			if !p.RunFits(i, n) {
				return &ValidationError{
					Type:    "Runs",
					Message: fmt.Sprintf("run length %d does not fit the arena", n),
					Block:   i,
					Details: map[string]any{"length": n, "block_count": p.BlockCount()},
				}
			}
			for k := i + 1; k < i+n; k++ {
				if st := p.State(k); st != pool.StateContinuation {
					return &ValidationError{
						Type:    "Runs",
						Message: fmt.Sprintf("block inside run is %s", st),
						Block:   k,
						Details: map[string]any{"head": i, "length": n},
					}
				}
			}
			i += n - 1
		default:
			return &ValidationError{Type: "Runs", Message: fmt.Sprintf("invalid state %d", p.State(i)), Block: i}
		}
	}
	return nil
}

// Partition validates that the free list and the live runs together cover
// every block exactly once.
func Partition(p *pool.Pool) error {
	if p.Closed() {
		return &ValidationError{Type: "Partition", Message: "pool is closed", Block: -1}
	}

	const (
		unowned = iota
		ownedFree
		ownedRun
	)
	owner := make([]uint8, p.BlockCount())

	for _, idx := range FreeChain(p) {
		if idx < 0 || idx >= len(owner) {
			return &ValidationError{Type: "Partition", Message: "free list leaves the arena", Block: idx}
		}
		if owner[idx] != unowned {
			return &ValidationError{Type: "Partition", Message: "block listed twice", Block: idx}
		}
		owner[idx] = ownedFree
	}

	for i := 0; i < p.BlockCount(); i++ {
		if p.State(i) != pool.StateHead {
			continue
		}
		n := p.RunLength(i)
		end := len(owner)
		if p.RunFits(i, n) {
			end = i + n
		}
		for k := i; k < end; k++ {
			if owner[k] != unowned {
				msg := "block is both free and in a live run"
				if owner[k] == ownedRun {
					msg = "block belongs to two runs"
				}
				return &ValidationError{
					Type:    "Partition",
					Message: msg,
					Block:   k,
					Details: map[string]any{"head": i, "length": n},
				}
			}
			owner[k] = ownedRun
		}
	}

	for i, o := range owner {
		if o == unowned {
			return &ValidationError{
				Type:    "Partition",
				Message: fmt.Sprintf("block is neither listed nor in a run (state %s)", p.State(i)),
				Block:   i,
			}
		}
	}
	return nil
}
