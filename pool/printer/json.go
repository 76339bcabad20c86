package printer

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/verify"
)

func (p *Printer) printStatsJSON() error {
	w := jwriter.NewWriter()
	obj := w.Object()
	p.writeStatsFields(&obj)
	obj.End()
	return p.flush(&w)
}

func (p *Printer) printMapJSON() error {
	w := jwriter.NewWriter()
	obj := w.Object()
	p.writeMapFields(&obj)
	obj.End()
	return p.flush(&w)
}

func (p *Printer) printReportJSON() error {
	w := jwriter.NewWriter()
	obj := w.Object()
	p.writeStatsFields(&obj)
	p.writeMapFields(&obj)
	obj.End()
	return p.flush(&w)
}

// Field writers take the object state by pointer so the comma state carries
// across calls.
func (p *Printer) writeStatsFields(obj *jwriter.ObjectState) {
	st := p.alloc.Stats()
	pl := p.alloc.Pool()

	obj.Name("block_size").Int(st.BlockSize)
	obj.Name("block_count").Int(st.BlockCount)
	obj.Name("backing").String(pl.Backing().String())
	obj.Name("closed").Bool(pl.Closed())
	obj.Name("free_blocks").Int(st.FreeBlocks)
	obj.Name("used_blocks").Int(st.UsedBlocks)
	obj.Name("utilization").Float64(st.Utilization())
	obj.Name("live_runs").Int(st.LiveRuns)
	obj.Name("largest_free_span").Int(st.LargestFreeSpan)
	obj.Name("peak_used_blocks").Int(st.PeakUsedBlocks)
	obj.Name("alloc_calls").Int(st.AllocCalls)
	obj.Name("failed_allocs").Int(st.FailedAllocs)
	obj.Name("free_calls").Int(st.FreeCalls)
	obj.Name("search_steps").Int(int(st.SearchSteps))
}

func (p *Printer) writeMapFields(obj *jwriter.ObjectState) {
	pl := p.alloc.Pool()
	obj.Name("map").String(BlockMap(pl))

	if p.opts.ShowRuns {
		arr := obj.Name("runs").Array()
		for _, r := range liveRuns(pl) {
			ro := arr.Object()
			ro.Name("start").Int(r.Start)
			ro.Name("blocks").Int(r.Blocks)
			ro.Name("ref").Int(int(r.Ref))
			ro.Name("payload_bytes").Int(r.Blocks*pl.BlockSize() - pool.MetadataSize)
			ro.End()
		}
		arr.End()
	}

	if p.opts.ShowFreeList {
		arr := obj.Name("free_list").Array()
		for _, b := range verify.FreeChain(pl) {
			arr.Int(b)
		}
		arr.End()
	}
}

func (p *Printer) flush(w *jwriter.Writer) error {
	if err := w.Error(); err != nil {
		return err
	}
	out := append(w.Bytes(), '\n')
	_, err := p.writer.Write(out)
	return err
}
