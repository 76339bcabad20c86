package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
	"github.com/buttception/RagdollEngine-sub001/pool/printer"
	"github.com/buttception/RagdollEngine-sub001/pool/verify"
)

func init() {
	rootCmd.AddCommand(newScenarioCmd())
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Replay the reference allocation scenario on a 64x4 pool",
		Long: `The scenario command builds a pool of four 64-byte blocks and walks
through a fixed sequence: a one-block allocation, a three-block allocation
that empties the pool, a request that must fail, release of the three-block
run, and a second three-block allocation that reuses it. The block map is printed after
every step and the pool invariants are checked.

Example:
  poolctl scenario
  poolctl scenario --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario()
		},
	}
}

// ScenarioStep records one step of the scenario.
type ScenarioStep struct {
	Action    string `json:"action"`
	Ref       int64  `json:"ref,omitempty"`
	Blocks    int    `json:"blocks,omitempty"`
	Error     string `json:"error,omitempty"`
	Map       string `json:"map"`
	FreeList  []int  `json:"free_list"`
	FreeCount int    `json:"free_blocks"`
}

func runScenario() error {
	p, err := pool.New(poolConfig(64, 4))
	if err != nil {
		return err
	}
	defer p.Close()
	a := alloc.New(p)

	steps, err := scenarioSteps(a)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(steps)
	}
	for i, s := range steps {
		printInfo("%d. %s\n", i+1, s.Action)
		switch {
		case s.Error != "":
			printInfo("   -> %s\n", styled(errorStyle, "error: "+s.Error))
		case s.Ref != 0:
			printInfo("   -> %s (%d blocks)\n", styled(refStyle, fmt.Sprintf("ref %d", s.Ref)), s.Blocks)
		}
		printInfo("   map [%s]  free list %v\n", styleMap(s.Map), s.FreeList)
	}
	return nil
}

// scenarioSteps performs the scenario and checks every expected outcome.
func scenarioSteps(a *alloc.RunAllocator) ([]ScenarioStep, error) {
	p := a.Pool()
	var steps []ScenarioStep
	record := func(action string, ref pool.Ref, err error) error {
		s := ScenarioStep{Action: action, Ref: int64(ref)}
		if err != nil {
			s.Error = err.Error()
		} else if ref != pool.NilRef {
			s.Blocks, _ = a.RunLength(ref)
		}
		s.Map = printer.BlockMap(p)
		s.FreeList = verify.FreeChain(p)
		s.FreeCount = p.FreeBlocks()
		steps = append(steps, s)
		printVerbose("   checked invariants after %q\n", action)
		return verify.AllInvariants(p)
	}

	r1, err := a.Allocate(40, 1)
	if err != nil {
		return nil, errors.Wrap(err, "allocate 40 bytes")
	}
	if err := record("allocate 40 bytes", r1, nil); err != nil {
		return nil, err
	}

	r2, err := a.Allocate(150, 1)
	if err != nil {
		return nil, errors.Wrap(err, "allocate 150 bytes")
	}
	if err := record("allocate 150 bytes", r2, nil); err != nil {
		return nil, err
	}

	_, err = a.Allocate(1, 1)
	if !errors.Is(err, alloc.ErrNoSpace) {
		return nil, errors.Newf("allocate on a full pool: expected no space, got %v", err)
	}
	if err := record("allocate 1 byte on a full pool", pool.NilRef, err); err != nil {
		return nil, err
	}

	if err := a.Deallocate(r2); err != nil {
		return nil, errors.Wrap(err, "deallocate three-block run")
	}
	if err := record(fmt.Sprintf("deallocate ref %d", r2), pool.NilRef, nil); err != nil {
		return nil, err
	}

	r3, err := a.Allocate(150, 1)
	if err != nil {
		return nil, errors.Wrap(err, "reallocate 150 bytes")
	}
	if r3 != r2 {
		return nil, errors.Newf("reallocation returned ref %d, expected %d", r3, r2)
	}
	if err := record("allocate 150 bytes again", r3, nil); err != nil {
		return nil, err
	}
	return steps, nil
}
