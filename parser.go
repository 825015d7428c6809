package saxwasm

import (
	"fmt"

	"saxwasm/internal/arena"
	"saxwasm/internal/diag"
	"saxwasm/internal/engine"
	"saxwasm/internal/event"
	"saxwasm/internal/reader"
	"saxwasm/internal/trace"
)

// Handler receives one event. Entities are lazy views into shared memory:
// read what you need inside the callback or keep a Detach copy.
type Handler func(kind Kind, e Entity)

// Options configures a Parser.
type Options struct {
	// Events is the initial subscription. The zero value delivers nothing.
	Events Set
	// InputSize is the initial input window in bytes; 0 selects the default.
	// Larger chunks are split across several writes.
	InputSize int
	// WhitespaceText reports text runs made only of whitespace.
	WhitespaceText bool
	// OnDiagnostic receives non-fatal recovery notes (unmatched close tags,
	// unterminated constructs and so on).
	OnDiagnostic func(Diagnostic)
	// Tracer records write/end spans and per-event points.
	Tracer trace.Tracer
}

// Stats mirrors engine counters.
type Stats = engine.Stats

// Parser is the push-style host adapter. It is not safe for concurrent use.
type Parser struct {
	eng     *engine.Engine
	handler Handler
	err     error
}

// NewParser creates a parser delivering events to h.
func NewParser(h Handler, opts Options) (*Parser, error) {
	if h == nil {
		return nil, engine.ErrNoHandler
	}
	p := &Parser{handler: h}
	var rep diag.Reporter
	if opts.OnDiagnostic != nil {
		rep = diag.FuncReporter(opts.OnDiagnostic)
	}
	eng, err := engine.New(p.dispatch, engine.Options{
		InputSize:      opts.InputSize,
		Events:         opts.Events,
		WhitespaceText: opts.WhitespaceText,
		Reporter:       rep,
		Tracer:         opts.Tracer,
	})
	if err != nil {
		return nil, err
	}
	p.eng = eng
	return p, nil
}

func (p *Parser) dispatch(kind event.Kind, ptr arena.Ptr) {
	ent, err := reader.Decode(p.eng.Memory(), kind, ptr)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("saxwasm: %w", err)
		}
		return
	}
	p.handler(kind, ent)
}

// Write tokenizes b. It implements io.Writer, so io.Copy can feed a parser
// straight from a reader. Events fire before Write returns.
func (p *Parser) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		n := min(len(b), p.eng.Memory().InputCap())
		in, err := p.eng.Input(n)
		if err != nil {
			return written, err
		}
		copy(in, b[:n])
		if err := p.eng.Write(n); err != nil {
			return written, err
		}
		written += n
		b = b[n:]
		if err := p.takeErr(); err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteString is Write for strings.
func (p *Parser) WriteString(s string) (int, error) {
	return p.Write([]byte(s))
}

// End finishes the document: pending constructs are flushed and open
// elements closed. The parser can take a new document afterwards.
func (p *Parser) End() error {
	if err := p.eng.End(); err != nil {
		return err
	}
	return p.takeErr()
}

// SetEvents changes the subscription; it may be called from a handler.
func (p *Parser) SetEvents(s Set) {
	p.eng.SetEvents(s)
}

func (p *Parser) Events() Set {
	return p.eng.Events()
}

func (p *Parser) Stats() Stats {
	return p.eng.Stats()
}

func (p *Parser) takeErr() error {
	err := p.err
	p.err = nil
	return err
}
