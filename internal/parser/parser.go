package parser

import (
	"math"

	"fortio.org/safecast"

	"forgelsp/internal/registry"
	"forgelsp/internal/source"
)

// DefaultMaxDepth bounds nested argument parsing.
const DefaultMaxDepth = 64

// Registry is the read-only view of the signature registry a parse needs.
// *registry.Registry implements it; a registry that also offers
// Suggest(name, n) []string gets "did you mean" notes on unknown calls.
type Registry interface {
	Lookup(name string) (*registry.Signature, bool)
}

type suggester interface {
	Suggest(name string, n int) []string
}

// Options tune a parse. The zero value is ready to use.
type Options struct {
	// MaxDepth bounds nested call recursion; <= 0 means DefaultMaxDepth.
	MaxDepth int
	// Raw treats the input as bare ForgeScript and skips block extraction.
	Raw bool
	// File is stamped into every span.
	File source.FileID
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Parse extracts the embedded script blocks of a host document and parses
// them. A document without blocks yields an empty result. Spans are in
// document coordinates.
func Parse(reg Registry, doc string, opts Options) Result {
	if opts.Raw {
		return parseAt(reg, doc, 0, opts)
	}
	blocks, ok := ExtractBlocks(doc)
	if !ok {
		return Result{}
	}
	return parseAt(reg, blocks.Code, blocks.Offset, opts)
}

// ParseCode parses bare ForgeScript; spans are offsets into code.
func ParseCode(reg Registry, code string, opts Options) Result {
	return parseAt(reg, code, 0, opts)
}

// ParseFile parses a loaded file, binding spans to its FileID.
func ParseFile(reg Registry, f *source.File, opts Options) Result {
	if f == nil {
		return Result{}
	}
	opts.File = f.ID
	return Parse(reg, string(f.Content), opts)
}

func parseAt(reg Registry, code string, base int, opts Options) Result {
	if _, err := safecast.Conv[uint32](base + len(code)); err != nil {
		// Offsets would not fit a span; nothing sensible can be reported.
		return Result{}
	}
	var res Result
	s := &scanner{
		reg:   reg,
		opts:  opts,
		src:   code,
		base:  base,
		diags: &res.Diagnostics,
	}
	s.run()
	res.Tokens = s.tokens
	res.Functions = s.funcs
	return res
}

func off32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}
