package lexer

import (
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
	"saxwasm/internal/source"
)

// mark: абсолютное смещение в потоке вместе с позицией.
type mark struct {
	off uint64
	pos source.Position
}

// attrBuilder keeps an unfinished attribute as marks, never as slices: the
// accumulator compacts in place, so slices would not survive a Write.
type attrBuilder struct {
	typ       entity.AttrType
	nameStart mark
	nameEnd   mark
}

// Lexer is a push tokenizer. Feed it with Write in chunks of any size and
// finish the document with End; the event stream does not depend on how the
// input was split.
type Lexer struct {
	sink  Sink
	opts  Options
	buf   source.Buffer
	trk   source.Tracker
	names *source.Interner

	off     uint64 // следующий непрочитанный байт
	state   state
	bomDone bool

	// текущий текстовый прогон
	text      mark
	textOpen  bool
	textBlank bool

	tok     mark // '<' текущего токена
	name    mark // начало имени тега, close-тега или цели PI
	nameEnd mark
	val     mark // начало значения атрибута, тела комментария, содержимого PI
	aux     mark // последний '/' или '?' для заглядывания на байт вперёд

	dashRun   int  // длина серии '-' или ']'
	depth     int  // глубина {} в значении атрибута или [] в doctype
	quote     byte // открытая кавычка
	escape    bool
	started   bool // тело doctype началось
	marker    string
	markerIdx int

	tag    entity.Tag
	tagID  source.StringID
	attr   attrBuilder
	stack  []element
	frames []frame
}

func New(sink Sink, opts Options) *Lexer {
	return &Lexer{
		sink:  sink,
		opts:  opts,
		names: source.NewInterner(),
	}
}

// Write appends p to the stream and tokenizes as far as possible. p is
// copied; the caller may reuse it after Write returns.
func (lx *Lexer) Write(p []byte) {
	if len(p) == 0 {
		return
	}
	lx.buf.Append(p)
	lx.run(false)
}

// Pos returns the position of the next byte to be tokenized.
func (lx *Lexer) Pos() source.Position {
	return lx.trk.Pos()
}

// Depth returns the number of open elements.
func (lx *Lexer) Depth() int {
	return len(lx.stack)
}

// Retained returns how many input bytes the lexer still holds for
// unfinished tokens.
func (lx *Lexer) Retained() int {
	return lx.buf.Retained()
}

func (lx *Lexer) run(final bool) {
	if !lx.bomDone && !lx.skipBOM(final) {
		return
	}
	end := lx.buf.End()
	for lx.off < end {
		lx.step(lx.buf.At(lx.off))
	}
	lx.buf.Release(lx.pin())
}

var bom = [3]byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a byte-order mark at the start of the document. It returns
// false while too few bytes have arrived to decide.
func (lx *Lexer) skipBOM(final bool) bool {
	n := min(lx.buf.End()-lx.off, uint64(len(bom)))
	for i := range n {
		if lx.buf.At(lx.off+i) != bom[i] {
			lx.bomDone = true
			return true
		}
	}
	if n < uint64(len(bom)) {
		if !final {
			return false
		}
		lx.bomDone = true
		return true
	}
	lx.off += uint64(len(bom))
	lx.bomDone = true
	return true
}

// pin is the oldest offset still referenced by unfinished state.
func (lx *Lexer) pin() uint64 {
	p := lx.off
	if lx.textOpen && lx.text.off < p {
		p = lx.text.off
	}
	if lx.state != stText && lx.tok.off < p {
		p = lx.tok.off
	}
	if len(lx.frames) > 0 && lx.frames[0].tok.off < p {
		p = lx.frames[0].tok.off
	}
	return p
}

func (lx *Lexer) here() mark {
	return mark{off: lx.off, pos: lx.trk.Pos()}
}

func (lx *Lexer) bump(b byte) {
	lx.trk.Advance(b)
	lx.off++
}

func (lx *Lexer) bytes(from, to uint64) []byte {
	return lx.buf.Bytes(source.Span{Start: from, End: to})
}

// step processes b, the byte at lx.off. It either consumes b or moves to a
// state that will.
func (lx *Lexer) step(b byte) {
	switch lx.state {
	case stText:
		lx.stepText(b)
	case stTagOpen:
		lx.stepTagOpen(b)
	case stTagName:
		lx.stepTagName(b)
	case stAttrSpace:
		lx.stepAttrSpace(b)
	case stAttrName:
		lx.stepAttrName(b)
	case stAttrAfterName:
		lx.stepAttrAfterName(b)
	case stAttrEq:
		lx.stepAttrEq(b)
	case stAttrValueDQ:
		lx.stepAttrValueQuoted(b, '"')
	case stAttrValueSQ:
		lx.stepAttrValueQuoted(b, '\'')
	case stAttrValueUnquoted:
		lx.stepAttrValueUnquoted(b)
	case stAttrValueUnquotedSlash:
		lx.stepAttrValueUnquotedSlash(b)
	case stAttrValueBrace:
		lx.stepAttrValueBrace(b)
	case stAttrValueBraceLt:
		lx.stepAttrValueBraceLt(b)
	case stTagSlash:
		lx.stepTagSlash(b)
	case stCloseTagName:
		lx.stepCloseTagName(b)
	case stCloseTagEnd:
		lx.stepCloseTagEnd(b)
	case stBang:
		lx.stepBang(b)
	case stBangDash:
		lx.stepBangDash(b)
	case stBangMarker:
		lx.stepBangMarker(b)
	case stComment:
		lx.stepRunTerminated(b, '-', event.Comment)
	case stCDATA:
		lx.stepRunTerminated(b, ']', event.Cdata)
	case stDoctype:
		lx.stepDoctype(b)
	case stDeclaration:
		lx.stepDeclaration(b)
	case stPITarget:
		lx.stepPITarget(b)
	case stPIContentWS:
		lx.stepPIContentWS(b)
	case stPIContent:
		lx.stepPIContent(b)
	case stPIQuestion:
		lx.stepPIQuestion(b)
	default:
		panic("lexer: unknown state " + lx.state.String())
	}
}

func (lx *Lexer) stepText(b byte) {
	if b == '<' {
		lx.flushText()
		lx.tok = lx.here()
		lx.bump(b)
		lx.state = stTagOpen
		return
	}
	if !lx.textOpen {
		lx.textOpen = true
		lx.textBlank = true
		lx.text = lx.here()
	}
	if !isSpace(b) {
		lx.textBlank = false
	}
	lx.bump(b)
}

func (lx *Lexer) stepTagOpen(b byte) {
	switch {
	case isNameStart(b):
		lx.startTag()
		lx.name = lx.here()
		lx.bump(b)
		lx.state = stTagName
	case b == '>':
		// <>: JSX-фрагмент с пустым именем
		lx.startTag()
		lx.bump(b)
		lx.openTagStart(nil)
		lx.finishOpenTag(false)
	case b == '/':
		lx.bump(b)
		lx.name = lx.here()
		lx.state = stCloseTagName
	case b == '!':
		lx.bump(b)
		lx.state = stBang
	case b == '?':
		lx.bump(b)
		lx.name = lx.here()
		lx.state = stPITarget
	default:
		// не тег: '<' открывает обычный текст
		lx.textOpen = true
		lx.textBlank = false
		lx.text = lx.tok
		lx.state = stText
	}
}

// flushText emits the pending text run, if any, ending at the current byte.
func (lx *Lexer) flushText() {
	if !lx.textOpen {
		return
	}
	lx.textOpen = false
	if lx.textBlank && !lx.opts.WhitespaceText {
		return
	}
	lx.emitText(lx.text.pos, lx.trk.Pos(), lx.bytes(lx.text.off, lx.off))
}

// emitText delivers character data and records it as a text node of the
// innermost open element.
func (lx *Lexer) emitText(start, end source.Position, value []byte) {
	wantText := lx.sink.Wants(event.Text)
	wantNode := len(lx.stack) > 0 && lx.sink.Wants(event.CloseTag)
	if !wantText && !wantNode {
		return
	}
	t := entity.Text{Start: start, End: end, Value: value}
	if wantNode {
		top := &lx.stack[len(lx.stack)-1]
		top.tag.TextNodes = append(top.tag.TextNodes, t.Clone())
	}
	if wantText {
		lx.sink.Text(event.Text, &t)
	}
}

// emitMarkup delivers comment, CDATA, doctype and declaration bodies. The
// positions span the whole markup from '<' up to the current offset.
func (lx *Lexer) emitMarkup(kind event.Kind, body []byte) {
	if !lx.sink.Wants(kind) {
		return
	}
	t := entity.Text{Start: lx.tok.pos, End: lx.trk.Pos(), Value: body}
	lx.sink.Text(kind, &t)
}
