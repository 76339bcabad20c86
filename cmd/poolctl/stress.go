package main

import (
	"math/rand"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
	"github.com/buttception/RagdollEngine-sub001/pool/printer"
	"github.com/buttception/RagdollEngine-sub001/pool/verify"
)

var (
	stressSeed       int64
	stressOps        int
	stressBlockSize  int
	stressBlockCount int
	stressMaxBlocks  int
	stressFreeRatio  float64
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().Int64Var(&stressSeed, "seed", 42, "Random seed")
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Number of operations")
	cmd.Flags().IntVar(&stressBlockSize, "block-size", pool.DefaultBlockSize, "Block size in bytes")
	cmd.Flags().IntVar(&stressBlockCount, "block-count", pool.DefaultBlockCount, "Number of blocks")
	cmd.Flags().IntVar(&stressMaxBlocks, "max-blocks", 8, "Largest request, in blocks")
	cmd.Flags().Float64Var(&stressFreeRatio, "free-ratio", 0.4, "Probability that an operation is a deallocation")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a seeded random allocate/deallocate workload",
		Long: `The stress command performs a reproducible random mix of allocations
and deallocations, checking the free-list and run invariants after every
operation. Allocation failures from fragmentation are counted, not fatal.
At the end every live run is released and the pool must be entirely free.

Example:
  poolctl stress --seed 7 --ops 50000
  poolctl stress --block-size 32 --block-count 256 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// StressResult summarizes a stress run.
type StressResult struct {
	Seed         int64 `json:"seed"`
	Ops          int   `json:"ops"`
	Allocations  int   `json:"allocations"`
	Releases     int   `json:"releases"`
	NoSpace      int   `json:"no_space"`
	PeakLiveRuns int   `json:"peak_live_runs"`
}

func runStress() error {
	if stressMaxBlocks < 1 {
		return errors.Newf("--max-blocks must be at least 1, got %d", stressMaxBlocks)
	}
	p, err := pool.New(poolConfig(stressBlockSize, stressBlockCount))
	if err != nil {
		return err
	}
	defer p.Close()
	a := alloc.New(p)

	printVerbose("Stress: seed=%d ops=%d pool=%dx%d\n", stressSeed, stressOps, stressBlockCount, stressBlockSize)
	res, err := stress(a, rand.New(rand.NewSource(stressSeed)), stressOps)
	if err != nil {
		return err
	}
	res.Seed = stressSeed

	if jsonOut {
		return printJSON(res)
	}
	printInfo("Ops: %d, allocations: %d, releases: %d, no space: %d, peak live runs: %d\n",
		res.Ops, res.Allocations, res.Releases, res.NoSpace, res.PeakLiveRuns)
	if quiet {
		return nil
	}
	return printer.New(a, os.Stdout, printerOptions()).PrintStats()
}

// stress drives a with rng for ops operations and then drains it.
func stress(a *alloc.RunAllocator, rng *rand.Rand, ops int) (StressResult, error) {
	p := a.Pool()
	res := StressResult{Ops: ops}
	var live []pool.Ref

	for op := range ops {
		if len(live) > 0 && rng.Float64() < stressFreeRatio {
			i := rng.Intn(len(live))
			if err := a.Deallocate(live[i]); err != nil {
				return res, errors.Wrapf(err, "op %d: deallocate", op)
			}
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			res.Releases++
		} else {
			blocks := 1 + rng.Intn(stressMaxBlocks)
			size := max(1, blocks*p.BlockSize()-pool.MetadataSize-rng.Intn(p.BlockSize()))
			ref, err := a.Allocate(size, 1)
			switch {
			case errors.Is(err, alloc.ErrNoSpace):
				res.NoSpace++
			case err != nil:
				return res, errors.Wrapf(err, "op %d: allocate %d bytes", op, size)
			default:
				live = append(live, ref)
				res.Allocations++
				res.PeakLiveRuns = max(res.PeakLiveRuns, len(live))
			}
		}
		if err := verify.AllInvariants(p); err != nil {
			return res, errors.Wrapf(err, "op %d", op)
		}
	}

	for _, ref := range live {
		if err := a.Deallocate(ref); err != nil {
			return res, errors.Wrap(err, "drain")
		}
	}
	if err := verify.AllInvariants(p); err != nil {
		return res, errors.Wrap(err, "drain")
	}
	if p.FreeBlocks() != p.BlockCount() {
		return res, errors.Newf("drain left %d of %d blocks free", p.FreeBlocks(), p.BlockCount())
	}
	return res, nil
}
