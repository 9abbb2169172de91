// Package trace is the structured event log of the rill toolchain.
//
// Passes open spans around their work and may emit point events:
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parent)
//	defer span.End("")
//	trace.Point(t, trace.ScopeNode, "fn", "main")
//
// Levels gate scopes: phase shows driver and pass spans, detail adds per-file
// spans, debug adds per-node events. StreamTracer writes text or NDJSON as
// events happen, RingTracer keeps the last N events for a dump after a panic.
//
// Enable from the CLI with --trace=- --trace-level=phase.
package trace
