package diag

import "saxwasm/internal/source"

type dedupKey struct {
	code Code
	at   source.Position
}

// DedupReporter drops a diagnostic when one with the same code was already
// reported at the same start position. Recovery after malformed markup can
// otherwise flag one spot repeatedly while the lexer resynchronises.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Range, msg string, notes []Note) {
	key := dedupKey{code: code, at: primary.Start}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed counts dropped duplicates since the last Reset.
func (r *DedupReporter) Suppressed() int { return r.suppressed }

// Reset is called between documents.
func (r *DedupReporter) Reset() {
	clear(r.seen)
	r.suppressed = 0
}
