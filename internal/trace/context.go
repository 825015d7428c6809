package trace

import "context"

type ctxKey struct{}

// FromContext returns the context's tracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is the innermost open span and the document it works on.
type SpanContext struct {
	SpanID uint64
	Doc    string
}

type spanCtxKey struct{}

// CurrentSpan returns the zero SpanContext outside any span.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanCtxKey{}).(SpanContext)
	return sc
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// Start opens a span under the context's current span and returns a
// context carrying it. doc "" inherits the parent's document.
func Start(ctx context.Context, scope Scope, name, doc string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	if doc == "" {
		doc = parent.Doc
	}
	span := begin(FromContext(ctx), scope, name, parent.SpanID, doc)
	// без трейсера контекст не трогаем
	if span.ID() == 0 {
		return ctx, span
	}
	return WithSpanContext(ctx, SpanContext{SpanID: span.ID(), Doc: doc}), span
}
