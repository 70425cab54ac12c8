// Package trace records where forgelsp spends its time.
//
// Enable it from the command line:
//
//	forgelsp diag --trace=- --trace-level=detail commands/
//
// Events are spans (begin/end pairs) and points, tagged with a scope. The
// level decides which scopes are written:
//
//   - LevelPhase: driver and pass boundaries (load, extract, parse, render)
//   - LevelDetail: plus one span per file
//   - LevelDebug: everything
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// The parser itself never traces; only the driver and the CLI do.
package trace
