package printer

import (
	"fmt"
	"strings"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/verify"
)

func (p *Printer) printStatsText() error {
	st := p.alloc.Stats()
	pl := p.alloc.Pool()
	m := p.msg

	m.Fprintf(p.writer, "Pool: %d blocks x %d bytes (%s)\n", st.BlockCount, st.BlockSize, pl.Backing())
	if pl.Closed() {
		_, err := fmt.Fprintln(p.writer, "  closed")
		return err
	}
	m.Fprintf(p.writer, "  Arena:             %d bytes\n", pl.Len())
	m.Fprintf(p.writer, "  Free blocks:       %d\n", st.FreeBlocks)
	m.Fprintf(p.writer, "  Used blocks:       %d (%.1f%%)\n", st.UsedBlocks, st.Utilization()*100)
	m.Fprintf(p.writer, "  Live runs:         %d\n", st.LiveRuns)
	m.Fprintf(p.writer, "  Largest free span: %d\n", st.LargestFreeSpan)
	m.Fprintf(p.writer, "  Peak used blocks:  %d\n", st.PeakUsedBlocks)
	m.Fprintf(p.writer, "  Alloc calls:       %d (%d failed)\n", st.AllocCalls, st.FailedAllocs)
	m.Fprintf(p.writer, "  Free calls:        %d\n", st.FreeCalls)
	_, err := m.Fprintf(p.writer, "  Search steps:      %d\n", st.SearchSteps)
	return err
}

func (p *Printer) printMapText() error {
	pl := p.alloc.Pool()
	bm := BlockMap(pl)

	fmt.Fprintln(p.writer, "Block map:")
	for off := 0; off < len(bm); off += p.opts.MapWidth {
		end := min(off+p.opts.MapWidth, len(bm))
		fmt.Fprintf(p.writer, "  %6d  %s\n", off, bm[off:end])
	}

	if p.opts.ShowRuns {
		runs := liveRuns(pl)
		fmt.Fprintf(p.writer, "Runs: %d\n", len(runs))
		for _, r := range runs {
			p.msg.Fprintf(p.writer, "  block %d: %d blocks, ref %d, %d payload bytes\n",
				r.Start, r.Blocks, int64(r.Ref), r.Blocks*pl.BlockSize()-pool.MetadataSize)
		}
	}

	if p.opts.ShowFreeList {
		chain := verify.FreeChain(pl)
		if len(chain) == 0 {
			fmt.Fprintln(p.writer, "Free list: (empty)")
		} else {
			parts := make([]string, len(chain))
			for i, b := range chain {
				parts[i] = fmt.Sprint(b)
			}
			fmt.Fprintf(p.writer, "Free list: %s\n", strings.Join(parts, " -> "))
		}
	}
	return nil
}
