// Package engine is the sandboxed side of the host boundary. It owns the
// shared arena, runs the lexer over bytes the host placed in the input
// window and hands every subscribed event back as a pointer into the arena.
package engine

import (
	"errors"
	"fmt"
	"strconv"

	"saxwasm/internal/arena"
	"saxwasm/internal/diag"
	"saxwasm/internal/event"
	"saxwasm/internal/lexer"
	"saxwasm/internal/trace"
)

var (
	// ErrReentrant is returned when Input, Write or End is called from
	// inside an event callback.
	ErrReentrant = errors.New("engine: call from inside an event callback")
	// ErrInputRange is returned for a length outside the input window.
	ErrInputRange = errors.New("engine: length outside the input window")
	// ErrNoHandler is returned by New without a callback.
	ErrNoHandler = errors.New("engine: nil event handler")
)

// Handler receives one framed entity. p addresses it inside the arena and
// stays readable until the next event or the next call into the engine.
type Handler func(kind event.Kind, p arena.Ptr)

type Options struct {
	// InputSize is the initial input window; 0 selects the default.
	InputSize      int
	Events         event.Set
	WhitespaceText bool
	Reporter       diag.Reporter // может быть nil
	Tracer         trace.Tracer  // может быть nil
	// TraceParent nests write spans under a caller's span.
	TraceParent uint64
}

// Stats counts work done since New.
type Stats struct {
	Writes    uint64
	Bytes     uint64
	Events    uint64
	Documents uint64
}

type Engine struct {
	mem     *arena.Arena
	lx      *lexer.Lexer
	handler Handler
	events  event.Set
	tracer  trace.Tracer
	busy    bool
	stats   Stats
	span    uint64 // текущий write-span для событий
	parent  uint64
}

func New(h Handler, opts Options) (*Engine, error) {
	if h == nil {
		return nil, ErrNoHandler
	}
	if opts.InputSize < 0 {
		return nil, fmt.Errorf("%w: input size %d", ErrInputRange, opts.InputSize)
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	e := &Engine{
		mem:     arena.New(opts.InputSize),
		handler: h,
		events:  opts.Events,
		tracer:  tr,
		parent:  opts.TraceParent,
	}
	e.lx = lexer.New(dispatcher{e}, lexer.Options{
		Reporter:       opts.Reporter,
		WhitespaceText: opts.WhitespaceText,
	})
	return e, nil
}

// Memory exposes the shared arena for reading event payloads.
func (e *Engine) Memory() *arena.Arena {
	return e.mem
}

// Input returns the input window grown to hold at least n bytes. The host
// copies its next chunk there and calls Write. Any slice obtained before is
// invalid after this call.
func (e *Engine) Input(n int) ([]byte, error) {
	if e.busy {
		return nil, ErrReentrant
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInputRange, n)
	}
	return e.mem.Input(n), nil
}

// Write tokenizes the first n bytes of the input window. Events fire
// synchronously before Write returns.
func (e *Engine) Write(n int) error {
	if e.busy {
		return ErrReentrant
	}
	if n < 0 || n > e.mem.InputCap() {
		return fmt.Errorf("%w: %d (window %d)", ErrInputRange, n, e.mem.InputCap())
	}
	e.busy = true
	defer func() { e.busy = false }()

	span := trace.Begin(e.tracer, trace.ScopeWrite, "write", e.parent)
	e.span = span.ID()
	before := e.stats.Events
	e.lx.Write(e.mem.InputBytes(n))
	e.stats.Writes++
	e.stats.Bytes += uint64(n)
	span.WithExtra("bytes", strconv.Itoa(n)).
		WithExtra("events", strconv.FormatUint(e.stats.Events-before, 10)).
		End("")
	return nil
}

// End flushes the document, closes open elements and resets positions. The
// engine is ready for the next document afterwards.
func (e *Engine) End() error {
	if e.busy {
		return ErrReentrant
	}
	e.busy = true
	defer func() { e.busy = false }()

	span := trace.Begin(e.tracer, trace.ScopeWrite, "end", e.parent)
	e.span = span.ID()
	before := e.stats.Events
	e.lx.End()
	e.stats.Documents++
	span.WithExtra("events", strconv.FormatUint(e.stats.Events-before, 10)).End("")
	return nil
}

// SetEvents replaces the subscription. It may be called at any time, from
// inside a callback too; tokens recognised afterwards use the new set.
func (e *Engine) SetEvents(s event.Set) {
	e.events = s
}

func (e *Engine) Events() event.Set {
	return e.events
}

func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) dispatch(kind event.Kind, p arena.Ptr) {
	e.stats.Events++
	trace.Point(e.tracer, trace.ScopeEvent, kind.String(), p.String(), e.span)
	e.handler(kind, p)
}
