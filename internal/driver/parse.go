package driver

import (
	"context"
	"fmt"

	"forgelsp/internal/diag"
	"forgelsp/internal/observ"
	"forgelsp/internal/parser"
	"forgelsp/internal/source"
	"forgelsp/internal/trace"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Result parser.Result // empty when the file failed to load or came from cache
	Bag    *diag.Bag
	Cached bool
	// Functions is the number of top-level calls, also known for cached files.
	Functions int
	Timing    *observ.Report
}

// ParseFile loads and parses one file. Diagnostics end up in the result's Bag;
// the returned error is reserved for I/O failures.
func ParseFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "parse-file", trace.ParentID(ctx))
	defer span.End(path)

	opts.pinRegistry()
	fs := source.NewFileSet()
	timer := newPhaseTimer(opts.EnableTimings)

	loadIdx := timer.begin("load")
	loadSpan := trace.Begin(tr, trace.ScopePass, "load", span.ID())
	id, err := opts.load(fs, path)
	loadSpan.End("")
	timer.end(loadIdx, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	res := parseLoaded(ctx, fs.Get(id), opts, timer, span.ID())
	return fs, res, nil
}

// parseLoaded runs the parser on an already loaded file.
func parseLoaded(ctx context.Context, file *source.File, opts Options, timer phaseTimer, parent uint64) *FileResult {
	tr := trace.FromContext(ctx)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &FileResult{Path: file.Path, FileID: file.ID, Bag: bag}

	parseIdx := timer.begin("parse")
	parseSpan := trace.Begin(tr, trace.ScopePass, "parse", parent)
	res.Result = parser.ParseFile(opts.Registry, file, opts.parseOptions(file.Path))
	res.Functions = len(res.Result.Functions)
	if dropped := bag.AddAll(res.Result.Diagnostics); dropped > 0 {
		parseSpan.WithExtra("dropped", fmt.Sprint(dropped))
	}
	bag.Dedup()
	parseSpan.WithExtra("diags", fmt.Sprint(len(res.Result.Diagnostics))).End(file.Path)
	timer.end(parseIdx, fmt.Sprintf("calls=%d diags=%d", res.Functions, len(res.Result.Diagnostics)))

	res.Timing = timer.report(bag, file.Path)
	return res
}
