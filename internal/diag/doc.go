// Package diag defines the diagnostic model for lexical findings.
//
// The tokenizer never fails on malformed markup: it degrades the offending
// bytes to literal text or an empty-named token and keeps going. Each such
// recovery is also reported as a Diagnostic so tools can surface it.
//
// # Data model
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; keep it short.
//   - Primary – the source.Range the finding covers.
//   - Notes – optional secondary ranges, e.g. where an element was opened.
//
// # Emitting diagnostics
//
// Producers hold a Reporter and either call Report directly or build one with
// ReportWarning/ReportInfo and WithNote before Emit. BagReporter collects into
// a Bag, which supports sorting and deduplication; DedupReporter filters
// repeated findings before forwarding.
//
// Rendering lives in internal/diagfmt; FormatShort is the plain single-line
// form used in golden tests.
package diag
