// Package trace records what the tokenizer pipeline is doing.
//
// The driver opens a span per run and per document, the engine opens one per
// Write/End call and, at debug level, emits a point per dispatched event. It
// is meant for finding where a large input spends its time or gets stuck.
//
// # Usage
//
//	saxwasm tokenize --trace=- --trace-level=detail page.html
//
// # Tracers
//
//   - Nop discards everything
//   - StreamTracer writes each event as it happens
//   - RingTracer keeps the newest events and writes them on Close
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopeDocument, LevelDetail adds
// ScopeWrite, LevelDebug adds ScopeEvent.
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeDocument, "tokenize", path)
//	defer span.End("")
//
// Spans started from ctx nest under the current one and inherit its
// document.
package trace
