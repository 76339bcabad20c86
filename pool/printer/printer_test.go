package printer

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
)

// scenarioAllocator returns a 64x4 pool holding a freed one-block run at
// block 0 and a live three-block run at block 1.
func scenarioAllocator(t *testing.T) *alloc.RunAllocator {
	t.Helper()
	p, err := pool.New(pool.Config{BlockSize: 64, BlockCount: 4, Backing: pool.BackingHeap})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	a := alloc.New(p)
	r1 := alloc.Must(a.Allocate(40, 1))
	alloc.Must(a.Allocate(150, 1))
	require.NoError(t, a.Deallocate(r1))
	return a
}

func TestBlockMap(t *testing.T) {
	a := scenarioAllocator(t)
	require.Equal(t, ".H==", BlockMap(a.Pool()))

	require.NoError(t, a.Pool().Close())
	require.Empty(t, BlockMap(a.Pool()))
}

func TestPrinter_Text(t *testing.T) {
	a := scenarioAllocator(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowFreeList = true
	require.NoError(t, New(a, &buf, opts).PrintReport())

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	require.Contains(t, output, "Pool: 4 blocks x 64 bytes (heap)")
	require.Contains(t, output, "Free blocks:       1")
	require.Contains(t, output, "Used blocks:       3 (75.0%)")
	require.Contains(t, output, "Live runs:         1")
	require.Contains(t, output, "       0  .H==")
	require.Contains(t, output, "block 1: 3 blocks, ref 72, 184 payload bytes")
	require.Contains(t, output, "Free list: 0")
}

func TestPrinter_TextWrapsMap(t *testing.T) {
	p, err := pool.New(pool.Config{BlockSize: 16, BlockCount: 10, Backing: pool.BackingHeap})
	require.NoError(t, err)
	defer p.Close()

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.MapWidth = 4
	opts.ShowRuns = false
	require.NoError(t, New(alloc.New(p), &buf, opts).PrintMap())

	require.Equal(t, "Block map:\n       0  ....\n       4  ....\n       8  ..\n", buf.String())
}

func TestPrinter_LocalizedNumbers(t *testing.T) {
	p, err := pool.New(pool.Config{BlockSize: 64, BlockCount: 2048, Backing: pool.BackingHeap})
	require.NoError(t, err)
	defer p.Close()
	a := alloc.New(p)

	var buf bytes.Buffer
	require.NoError(t, New(a, &buf, DefaultOptions()).PrintStats())
	require.Contains(t, buf.String(), "Pool: 2,048 blocks")
	require.Contains(t, buf.String(), "131,072 bytes")

	buf.Reset()
	opts := DefaultOptions()
	opts.Language = language.German
	require.NoError(t, New(a, &buf, opts).PrintStats())
	require.Contains(t, buf.String(), "Pool: 2.048 blocks")
}

func TestPrinter_Closed(t *testing.T) {
	a := scenarioAllocator(t)
	require.NoError(t, a.Pool().Close())

	var buf bytes.Buffer
	require.NoError(t, New(a, &buf, DefaultOptions()).PrintStats())
	require.Contains(t, buf.String(), "closed")
}

func TestPrinter_JSON(t *testing.T) {
	a := scenarioAllocator(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowFreeList = true
	require.NoError(t, New(a, &buf, opts).PrintReport())

	var report struct {
		BlockSize   int     `json:"block_size"`
		BlockCount  int     `json:"block_count"`
		Backing     string  `json:"backing"`
		FreeBlocks  int     `json:"free_blocks"`
		UsedBlocks  int     `json:"used_blocks"`
		Utilization float64 `json:"utilization"`
		LiveRuns    int     `json:"live_runs"`
		AllocCalls  int     `json:"alloc_calls"`
		FreeCalls   int     `json:"free_calls"`
		Map         string  `json:"map"`
		Runs        []struct {
			Start  int `json:"start"`
			Blocks int `json:"blocks"`
			Ref    int `json:"ref"`
		} `json:"runs"`
		FreeList []int `json:"free_list"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report), buf.String())

	require.Equal(t, 64, report.BlockSize)
	require.Equal(t, 4, report.BlockCount)
	require.Equal(t, "heap", report.Backing)
	require.Equal(t, 1, report.FreeBlocks)
	require.Equal(t, 3, report.UsedBlocks)
	require.InDelta(t, 0.75, report.Utilization, 1e-9)
	require.Equal(t, 2, report.AllocCalls)
	require.Equal(t, 1, report.FreeCalls)
	require.Equal(t, ".H==", report.Map)
	require.Len(t, report.Runs, 1)
	require.Equal(t, 1, report.Runs[0].Start)
	require.Equal(t, 3, report.Runs[0].Blocks)
	require.Equal(t, 72, report.Runs[0].Ref)
	require.Equal(t, []int{0}, report.FreeList)
}

func TestPrinter_JSONMapOnly(t *testing.T) {
	a := scenarioAllocator(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.ShowRuns = false
	require.NoError(t, New(a, &buf, opts).PrintMap())
	require.JSONEq(t, `{"map":".H=="}`, buf.String())
}

func TestPrinter_CorruptRunLength(t *testing.T) {
	a := scenarioAllocator(t)
	a.Pool().SetRunLength(1, math.MaxInt)

	opts := DefaultOptions()
	opts.Format = FormatJSON
	var buf bytes.Buffer
	require.NoError(t, New(a, &buf, opts).PrintReport())
	require.True(t, json.Valid(buf.Bytes()), buf.String())

	var got struct {
		Runs []struct {
			Start int `json:"start"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Runs, 1)
	require.Equal(t, 1, got.Runs[0].Start)
}
