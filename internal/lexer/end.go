package lexer

import (
	"fmt"

	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
	"saxwasm/internal/source"
)

// End flushes whatever the stream left unfinished, closes every open
// element and resets the lexer for a new document. Positions restart at
// 0:0.
func (lx *Lexer) End() {
	lx.run(true)
	lx.flushPending()

	end := lx.trk.Pos()
	// Suspended tags never got their '>': close what opened inside the
	// brace value, then hand everything from the tag's '<' back as text.
	for i := len(lx.frames) - 1; i >= 0; i-- {
		f := lx.frames[i]
		lx.closeUnclosed(f.depth, end)
		diag.ReportWarning(lx.opts.Reporter, diag.LexSuspendedTag,
			source.Range{Start: f.tok.pos, End: end},
			fmt.Sprintf("<%s> never finished after a nested element in its attribute value", f.tag.Name)).Emit()
		lx.emitText(f.tok.pos, end, lx.bytes(f.tok.off, lx.off))
	}
	lx.frames = lx.frames[:0]
	lx.closeUnclosed(0, end)
	lx.reset()
}

// closeUnclosed pops elements down to depth with CloseTag positions at end.
func (lx *Lexer) closeUnclosed(depth int, end source.Position) {
	for len(lx.stack) > depth {
		top := &lx.stack[len(lx.stack)-1]
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnclosedElement,
			source.Range{Start: top.tag.OpenStart, End: top.tag.OpenEnd},
			fmt.Sprintf("<%s> is not closed before end of input", top.tag.Name)).Emit()
		lx.popElement(end, end)
	}
}

// flushPending emits the token the stream stopped in.
func (lx *Lexer) flushPending() {
	st := lx.state
	lx.state = stText
	end := lx.trk.Pos()
	here := lx.here()
	rng := source.Range{Start: lx.tok.pos, End: end}

	switch {
	case st == stText:
		lx.flushText()
	case st == stTagOpen:
		lx.emitText(lx.tok.pos, end, lx.bytes(lx.tok.off, lx.off))
	case st.inTag():
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedTag, rng, "tag is not terminated before end of input").Emit()
		lx.emitText(lx.tok.pos, end, lx.bytes(lx.tok.off, lx.off))
	case st.inBang():
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedDecl, rng, "declaration is not terminated").Emit()
		lx.emitMarkup(event.Declaration, lx.bytes(lx.tok.off+2, lx.off))
	case st == stComment:
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedComment, rng, "comment is not terminated").Emit()
		lx.emitMarkup(event.Comment, lx.bytes(lx.val.off, lx.off))
	case st == stCDATA:
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedCDATA, rng, "CDATA section is not terminated").Emit()
		lx.emitMarkup(event.Cdata, lx.bytes(lx.val.off, lx.off))
	case st == stDoctype:
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedDoctype, rng, "doctype is not terminated").Emit()
		var body []byte
		if lx.started {
			body = trimRightSpace(lx.bytes(lx.val.off, lx.off))
		}
		lx.emitMarkup(event.Doctype, body)
	default:
		diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedPI, rng, "processing instruction is not terminated").Emit()
		switch st {
		case stPITarget:
			lx.nameEnd = here
			lx.val = here
		case stPIContentWS:
			lx.val = here
		}
		lx.aux = here
		lx.emitPI()
	}
}

func (lx *Lexer) reset() {
	lx.buf.Reset()
	lx.trk.Reset()
	lx.names.Reset()
	lx.off = 0
	lx.state = stText
	lx.bomDone = false
	lx.textOpen = false
	clear(lx.stack)
	lx.stack = lx.stack[:0]
	clear(lx.frames)
	lx.frames = lx.frames[:0]
	lx.tag = entity.Tag{}
	lx.tagID = source.NoStringID
	lx.attr = attrBuilder{}
}
