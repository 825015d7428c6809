package lexer

import (
	"fmt"

	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
	"saxwasm/internal/source"
)

// element is an open element waiting for its close tag.
type element struct {
	id  source.StringID
	tag entity.Tag
}

// frame is an open tag suspended in the middle of a brace attribute value
// because a nested element started there. The tag resumes once the element
// stack is back at depth.
type frame struct {
	tag   entity.Tag
	tagID source.StringID
	tok   mark
	attr  attrBuilder
	val   mark
	brace int
	depth int
}

func (lx *Lexer) suspend() {
	lx.frames = append(lx.frames, frame{
		tag:   lx.tag,
		tagID: lx.tagID,
		tok:   lx.tok,
		attr:  lx.attr,
		val:   lx.val,
		brace: lx.depth,
		depth: len(lx.stack),
	})
}

// resumeFrame returns to the innermost suspended tag if everything opened
// inside its brace value has been closed.
func (lx *Lexer) resumeFrame() {
	n := len(lx.frames)
	if n == 0 || lx.frames[n-1].depth != len(lx.stack) {
		return
	}
	f := lx.frames[n-1]
	lx.frames[n-1] = frame{}
	lx.frames = lx.frames[:n-1]

	lx.tag = f.tag
	lx.tagID = f.tagID
	lx.tok = f.tok
	lx.attr = f.attr
	lx.val = f.val
	lx.depth = f.brace
	lx.quote = 0
	lx.escape = false
	lx.state = stAttrValueBrace
}

// floor is the lowest stack index a close tag may match. Elements below the
// innermost suspended tag are out of reach until it resumes.
func (lx *Lexer) floor() int {
	if n := len(lx.frames); n > 0 {
		return lx.frames[n-1].depth
	}
	return 0
}

func (lx *Lexer) lookup(name []byte) int {
	id := source.NoStringID
	if len(name) > 0 {
		var ok bool
		if id, ok = lx.names.Find(name); !ok {
			return -1
		}
	}
	for i := len(lx.stack) - 1; i >= lx.floor(); i-- {
		if lx.stack[i].id == id {
			return i
		}
	}
	return -1
}

// closeTag resolves "</name>" once its '>' was consumed.
func (lx *Lexer) closeTag(name []byte) {
	lx.state = stText
	end := lx.trk.Pos()
	idx := lx.lookup(name)
	if idx < 0 {
		code, msg := diag.LexUnmatchedCloseTag, fmt.Sprintf("no open element for </%s>", name)
		if len(name) == 0 {
			code, msg = diag.LexEmptyCloseTag, "empty close tag outside a fragment"
		}
		diag.ReportWarning(lx.opts.Reporter, code, source.Range{Start: lx.tok.pos, End: end}, msg).Emit()
		lx.emitText(lx.tok.pos, end, lx.bytes(lx.tok.off, lx.off))
		return
	}
	for len(lx.stack)-1 > idx {
		top := &lx.stack[len(lx.stack)-1]
		diag.ReportInfo(lx.opts.Reporter, diag.LexImplicitClose,
			source.Range{Start: lx.tok.pos, End: lx.tok.pos},
			fmt.Sprintf("<%s> closed implicitly by </%s>", top.tag.Name, name)).
			WithNote(source.Range{Start: top.tag.OpenStart, End: top.tag.OpenEnd}, "opened here").
			Emit()
		lx.popElement(lx.tok.pos, lx.tok.pos)
	}
	lx.popElement(lx.tok.pos, end)
	lx.resumeFrame()
}

func (lx *Lexer) popElement(closeStart, closeEnd source.Position) {
	n := len(lx.stack)
	top := &lx.stack[n-1]
	top.tag.CloseStart = closeStart
	top.tag.CloseEnd = closeEnd
	if lx.sink.Wants(event.CloseTag) {
		lx.sink.Tag(event.CloseTag, &top.tag)
	}
	lx.stack[n-1] = element{}
	lx.stack = lx.stack[:n-1]
}

func (lx *Lexer) stepCloseTagName(b byte) {
	if isSpace(b) || b == '>' {
		lx.nameEnd = lx.here()
		lx.state = stCloseTagEnd
		return
	}
	lx.bump(b)
}

func (lx *Lexer) stepCloseTagEnd(b byte) {
	lx.bump(b)
	if b == '>' {
		lx.closeTag(lx.bytes(lx.name.off, lx.nameEnd.off))
	}
}
