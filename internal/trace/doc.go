// Package trace is the logging layer of deob: a leveled, scoped event
// tracer that follows a command through its phases and files.
//
// Enable it from the command line:
//
//	deob normalize --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: disabled tracing, the default
//   - StreamTracer: writes each event as it arrives (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// Levels decide which scopes are emitted: LevelPhase shows commands and
// phases, LevelDetail adds one span per file, LevelDebug adds node-level
// events such as individual query matches.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", 0)
//	defer span.End("")
package trace
