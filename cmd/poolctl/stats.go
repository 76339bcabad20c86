package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
	"github.com/buttception/RagdollEngine-sub001/pool/printer"
)

var (
	statsBlockSize  int
	statsBlockCount int
	statsAllocs     []string
	statsFrees      []int
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsBlockSize, "block-size", pool.DefaultBlockSize, "Block size in bytes")
	cmd.Flags().IntVar(&statsBlockCount, "block-count", pool.DefaultBlockCount, "Number of blocks")
	cmd.Flags().StringSliceVar(&statsAllocs, "alloc", nil, "Allocation as SIZExCOUNT (repeatable)")
	cmd.Flags().IntSliceVar(&statsFrees, "free", nil, "Release the Nth allocation, 0-based (repeatable)")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pool statistics and the block map after a list of allocations",
		Long: `The stats command creates a pool, performs the given allocations in
order, releases the selected ones, and prints statistics followed by the
block map ('.' free, 'H' run head, '=' continuation).

Example:
  poolctl stats --block-size 64 --block-count 16 --alloc 40x1 --alloc 8x20
  poolctl stats --alloc 100x1,100x1,100x1 --free 1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

// allocRequest is one parsed --alloc value.
type allocRequest struct {
	ElemSize int
	Count    int
}

// parseAllocRequest parses "SIZExCOUNT", or "SIZE" for a count of 1.
func parseAllocRequest(s string) (allocRequest, error) {
	sizePart, countPart, found := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	size, err := strconv.Atoi(sizePart)
	if err != nil {
		return allocRequest{}, errors.Wrapf(err, "alloc %q: size", s)
	}
	req := allocRequest{ElemSize: size, Count: 1}
	if found {
		req.Count, err = strconv.Atoi(countPart)
		if err != nil {
			return allocRequest{}, errors.Wrapf(err, "alloc %q: count", s)
		}
	}
	return req, nil
}

func runStats() error {
	reqs := make([]allocRequest, 0, len(statsAllocs))
	for _, s := range statsAllocs {
		req, err := parseAllocRequest(s)
		if err != nil {
			return err
		}
		reqs = append(reqs, req)
	}

	p, err := pool.New(poolConfig(statsBlockSize, statsBlockCount))
	if err != nil {
		return err
	}
	defer p.Close()
	a := alloc.New(p)

	refs := make([]pool.Ref, len(reqs))
	for i, req := range reqs {
		ref, err := a.Allocate(req.ElemSize, req.Count)
		if err != nil {
			// Failed requests are part of the picture; keep going.
			printVerbose("alloc %d (%dx%d): %v\n", i, req.ElemSize, req.Count, err)
			continue
		}
		refs[i] = ref
	}
	for _, i := range statsFrees {
		if i < 0 || i >= len(refs) {
			return errors.Newf("--free %d: no such allocation", i)
		}
		if refs[i] == pool.NilRef {
			continue
		}
		if err := a.Deallocate(refs[i]); err != nil {
			return errors.Wrapf(err, "free allocation %d", i)
		}
		refs[i] = pool.NilRef
	}

	if quiet {
		return nil
	}
	return printer.New(a, os.Stdout, printerOptions()).PrintReport()
}
