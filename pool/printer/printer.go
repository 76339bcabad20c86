// Package printer renders pool occupancy for humans and tools.
package printer

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
)

// DefaultMapWidth is the number of blocks per text block-map row.
const DefaultMapWidth = 64

// Block map symbols.
const (
	SymbolFree         = '.'
	SymbolHead         = 'H'
	SymbolContinuation = '='
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// MapWidth is the number of blocks per block-map row (text format only).
	// Default: 64
	MapWidth int

	// ShowFreeList includes the free list in traversal order.
	// Default: false
	ShowFreeList bool

	// ShowRuns includes one line per live run.
	// Default: true
	ShowRuns bool

	// Language selects number formatting for text output.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:       FormatText,
		MapWidth:     DefaultMapWidth,
		ShowFreeList: false,
		ShowRuns:     true,
		Language:     language.English,
	}
}

// Printer handles formatted output of pool state.
type Printer struct {
	opts   Options
	writer io.Writer
	alloc  alloc.Allocator
	msg    *message.Printer
}

// New creates a new Printer over a's pool.
//
// Example:
//
//	a := alloc.New(p)
//	pr := printer.New(a, os.Stdout, printer.DefaultOptions())
//	pr.PrintReport()
func New(a alloc.Allocator, w io.Writer, opts Options) *Printer {
	if opts.MapWidth <= 0 {
		opts.MapWidth = DefaultMapWidth
	}
	return &Printer{
		opts:   opts,
		writer: w,
		alloc:  a,
		msg:    message.NewPrinter(opts.Language),
	}
}

// PrintStats prints allocator statistics.
func (p *Printer) PrintStats() error {
	if p.opts.Format == FormatJSON {
		return p.printStatsJSON()
	}
	return p.printStatsText()
}

// PrintMap prints one symbol per block in address order.
func (p *Printer) PrintMap() error {
	if p.opts.Format == FormatJSON {
		return p.printMapJSON()
	}
	return p.printMapText()
}

// PrintReport prints statistics, the block map, and the optional sections
// selected in Options.
func (p *Printer) PrintReport() error {
	if p.opts.Format == FormatJSON {
		return p.printReportJSON()
	}
	if err := p.printStatsText(); err != nil {
		return err
	}
	return p.printMapText()
}

// BlockMap returns one symbol per block: '.' free, 'H' run head,
// '=' run continuation. A closed pool yields an empty string.
func BlockMap(pl *pool.Pool) string {
	if pl.Closed() {
		return ""
	}
	var sb strings.Builder
	sb.Grow(pl.BlockCount())
	for i := range pl.BlockCount() {
		sb.WriteByte(symbol(pl.State(i)))
	}
	return sb.String()
}

func symbol(s pool.State) byte {
	switch s {
	case pool.StateFree:
		return SymbolFree
	case pool.StateHead:
		return SymbolHead
	case pool.StateContinuation:
		return SymbolContinuation
	default:
		return '?'
	}
}

// liveRuns scans the pool in address order. It reads block states directly so
// it works for any Allocator implementation.
func liveRuns(pl *pool.Pool) []alloc.Run {
	if pl.Closed() {
		return nil
	}
	var runs []alloc.Run
	for i := 0; i < pl.BlockCount(); i++ {
		if pl.State(i) != pool.StateHead {
			continue
		}
		n := pl.RunLength(i)
		runs = append(runs, alloc.Run{Ref: pl.RefOf(i), Start: i, Blocks: n})
		if n > 1 && pl.RunFits(i, n) {
			i += n - 1
		}
	}
	return runs
}
