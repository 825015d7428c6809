package lexer

import (
	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда диагностики игнорируем (но продолжаем лексить)
	// WhitespaceText reports text runs made only of whitespace.
	WhitespaceText bool
}

// Sink receives completed tokens. Byte slices inside the entities alias
// lexer memory and are valid only for the duration of the call.
type Sink interface {
	// Wants reports whether kind is subscribed right now. The lexer skips
	// building entities nobody asked for.
	Wants(kind event.Kind) bool
	// Text receives Text, Comment, Cdata, Doctype and Declaration events.
	Text(kind event.Kind, t *entity.Text)
	Attribute(a *entity.Attribute)
	// Tag receives OpenTagStart, OpenTag and CloseTag events.
	Tag(kind event.Kind, t *entity.Tag)
	ProcInst(p *entity.ProcInst)
}
