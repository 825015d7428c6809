package lexer

import (
	"bytes"

	"saxwasm/internal/entity"
	"saxwasm/internal/event"
)

func (lx *Lexer) startTag() {
	lx.tag = entity.Tag{OpenStart: lx.tok.pos}
	lx.tagID = 0
}

// openTagStart fixes the tag name and fires OpenTagStart.
func (lx *Lexer) openTagStart(name []byte) {
	lx.tag.Name = bytes.Clone(name)
	lx.tagID = lx.names.InternBytes(name)
	if lx.sink.Wants(event.OpenTagStart) {
		lx.sink.Tag(event.OpenTagStart, &lx.tag)
	}
}

// finishOpenTag runs once the closing '>' of an open tag was consumed.
func (lx *Lexer) finishOpenTag(selfClosing bool) {
	lx.tag.OpenEnd = lx.trk.Pos()
	lx.tag.SelfClosing = selfClosing
	if selfClosing {
		lx.tag.CloseStart = lx.tag.OpenStart
		lx.tag.CloseEnd = lx.tag.OpenEnd
	}
	if lx.sink.Wants(event.OpenTag) {
		lx.sink.Tag(event.OpenTag, &lx.tag)
	}
	if selfClosing {
		if lx.sink.Wants(event.CloseTag) {
			lx.sink.Tag(event.CloseTag, &lx.tag)
		}
	} else {
		lx.stack = append(lx.stack, element{id: lx.tagID, tag: lx.tag})
	}
	lx.tag = entity.Tag{}
	lx.state = stText
	lx.resumeFrame()
}

func (lx *Lexer) stepTagName(b byte) {
	if isSpace(b) || b == '/' || b == '>' {
		lx.openTagStart(lx.bytes(lx.name.off, lx.off))
		lx.state = stAttrSpace
		return
	}
	lx.bump(b)
}

func (lx *Lexer) stepAttrSpace(b byte) {
	switch {
	case isSpace(b):
		lx.bump(b)
	case b == '>':
		lx.bump(b)
		lx.finishOpenTag(false)
	case b == '/':
		lx.bump(b)
		lx.state = stTagSlash
	case b == '{':
		// {...props}: значение без имени
		at := lx.here()
		lx.attr = attrBuilder{typ: entity.BraceExpression, nameStart: at, nameEnd: at}
		lx.bump(b)
		lx.beginBrace()
	default:
		lx.attr = attrBuilder{nameStart: lx.here()}
		lx.bump(b)
		lx.state = stAttrName
	}
}

func (lx *Lexer) stepTagSlash(b byte) {
	if b == '>' {
		lx.bump(b)
		lx.finishOpenTag(true)
		return
	}
	// одиночный '/' внутри тега игнорируем
	lx.state = stAttrSpace
}

func (lx *Lexer) stepAttrName(b byte) {
	if isSpace(b) || b == '=' || b == '>' || b == '/' {
		lx.attr.nameEnd = lx.here()
		lx.state = stAttrAfterName
		return
	}
	lx.bump(b)
}

func (lx *Lexer) stepAttrAfterName(b byte) {
	switch {
	case isSpace(b):
		lx.bump(b)
	case b == '=':
		lx.bump(b)
		lx.state = stAttrEq
	default:
		// булев атрибут: пустое значение в конце имени
		lx.attr.typ = entity.Unquoted
		lx.finishAttr(lx.attr.nameEnd, lx.attr.nameEnd)
		lx.state = stAttrSpace
	}
}

func (lx *Lexer) stepAttrEq(b byte) {
	switch {
	case isSpace(b):
		lx.bump(b)
	case b == '"':
		lx.attr.typ = entity.DoubleQuoted
		lx.bump(b)
		lx.val = lx.here()
		lx.state = stAttrValueDQ
	case b == '\'':
		lx.attr.typ = entity.SingleQuoted
		lx.bump(b)
		lx.val = lx.here()
		lx.state = stAttrValueSQ
	case b == '{':
		lx.attr.typ = entity.BraceExpression
		lx.bump(b)
		lx.beginBrace()
	case b == '>':
		at := lx.here()
		lx.attr.typ = entity.Unquoted
		lx.finishAttr(at, at)
		lx.state = stAttrSpace
	default:
		lx.attr.typ = entity.Unquoted
		lx.val = lx.here()
		lx.state = stAttrValueUnquoted
	}
}

func (lx *Lexer) stepAttrValueQuoted(b, quote byte) {
	if b == quote {
		lx.finishAttr(lx.val, lx.here())
		lx.bump(b)
		lx.state = stAttrSpace
		return
	}
	lx.bump(b)
}

func (lx *Lexer) stepAttrValueUnquoted(b byte) {
	switch {
	case isSpace(b) || b == '>':
		lx.finishAttr(lx.val, lx.here())
		lx.state = stAttrSpace
	case b == '/':
		lx.aux = lx.here()
		lx.bump(b)
		lx.state = stAttrValueUnquotedSlash
	default:
		lx.bump(b)
	}
}

// stepAttrValueUnquotedSlash decides whether the '/' just read ends the tag
// ("/>") or belongs to the value.
func (lx *Lexer) stepAttrValueUnquotedSlash(b byte) {
	if b == '>' {
		lx.finishAttr(lx.val, lx.aux)
		lx.bump(b)
		lx.finishOpenTag(true)
		return
	}
	lx.state = stAttrValueUnquoted
}

// beginBrace starts a brace value right after the opening '{'.
func (lx *Lexer) beginBrace() {
	lx.val = lx.here()
	lx.depth = 1
	lx.quote = 0
	lx.escape = false
	lx.state = stAttrValueBrace
}

func (lx *Lexer) stepAttrValueBrace(b byte) {
	if lx.quote != 0 {
		switch {
		case lx.escape:
			lx.escape = false
		case b == '\\':
			lx.escape = true
		case b == lx.quote:
			lx.quote = 0
		}
		lx.bump(b)
		return
	}
	switch b {
	case '"', '\'', '`':
		lx.quote = b
	case '{':
		lx.depth++
	case '}':
		lx.depth--
		if lx.depth == 0 {
			lx.finishAttr(lx.val, lx.here())
			lx.bump(b)
			lx.state = stAttrSpace
			return
		}
	case '<':
		lx.aux = lx.here()
		lx.bump(b)
		lx.state = stAttrValueBraceLt
		return
	}
	lx.bump(b)
}

// stepAttrValueBraceLt looks at the byte after a '<' inside a brace value:
// a name start or '>' opens a nested element, anything else is an operator.
func (lx *Lexer) stepAttrValueBraceLt(b byte) {
	if isNameStart(b) || b == '>' {
		lx.suspend()
		lx.tok = lx.aux
		lx.state = stTagOpen
		return
	}
	lx.state = stAttrValueBrace
}

// finishAttr completes the pending attribute with the value between from
// and to.
func (lx *Lexer) finishAttr(from, to mark) {
	wantEvent := lx.sink.Wants(event.Attribute)
	keep := lx.sink.Wants(event.OpenTag) || lx.sink.Wants(event.CloseTag)
	if !wantEvent && !keep {
		return
	}
	a := entity.Attribute{
		Type: lx.attr.typ,
		Name: entity.Text{
			Start: lx.attr.nameStart.pos,
			End:   lx.attr.nameEnd.pos,
			Value: lx.bytes(lx.attr.nameStart.off, lx.attr.nameEnd.off),
		},
		Value: entity.Text{
			Start: from.pos,
			End:   to.pos,
			Value: lx.bytes(from.off, to.off),
		},
	}
	if wantEvent {
		lx.sink.Attribute(&a)
	}
	if keep {
		lx.tag.Attributes = append(lx.tag.Attributes, a.Clone())
	}
}
