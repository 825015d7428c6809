package lexer

import (
	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
	"saxwasm/internal/source"
)

const (
	cdataMarker   = "[CDATA["
	doctypeMarker = "DOCTYPE"
)

func (lx *Lexer) stepBang(b byte) {
	switch {
	case b == '-':
		lx.bump(b)
		lx.state = stBangDash
	case b == '[':
		lx.beginMarker(cdataMarker, b)
	case b == 'd' || b == 'D':
		lx.beginMarker(doctypeMarker, b)
	case b == '>':
		lx.bump(b)
		lx.state = stText
		lx.emitMarkup(event.Declaration, nil)
	default:
		lx.degradeToDeclaration()
	}
}

func (lx *Lexer) beginMarker(marker string, b byte) {
	lx.marker = marker
	lx.markerIdx = 1
	lx.bump(b)
	lx.state = stBangMarker
}

// degradeToDeclaration turns whatever followed "<!" into a declaration body.
// The body keeps the bytes already matched against a marker.
func (lx *Lexer) degradeToDeclaration() {
	lx.val = mark{off: lx.tok.off + 2}
	lx.quote = 0
	lx.state = stDeclaration
}

func (lx *Lexer) stepBangDash(b byte) {
	if b != '-' {
		lx.degradeToDeclaration()
		return
	}
	lx.bump(b)
	lx.val = lx.here()
	lx.dashRun = 0
	lx.state = stComment
}

// stepBangMarker matches "[CDATA[" or "DOCTYPE" case-insensitively.
func (lx *Lexer) stepBangMarker(b byte) {
	if upper(b) != lx.marker[lx.markerIdx] {
		lx.degradeToDeclaration()
		return
	}
	lx.bump(b)
	lx.markerIdx++
	if lx.markerIdx < len(lx.marker) {
		return
	}
	if lx.marker == cdataMarker {
		lx.val = lx.here()
		lx.dashRun = 0
		lx.state = stCDATA
		return
	}
	lx.started = false
	lx.depth = 0
	lx.quote = 0
	lx.state = stDoctype
}

// stepRunTerminated handles comment and CDATA bodies: both end at a run of
// at least two terminator bytes followed by '>'.
func (lx *Lexer) stepRunTerminated(b, term byte, kind event.Kind) {
	switch {
	case b == term:
		lx.dashRun++
	case b == '>' && lx.dashRun >= 2:
		body := lx.bytes(lx.val.off, lx.off-2)
		lx.bump(b)
		lx.state = stText
		lx.emitMarkup(kind, body)
		return
	default:
		lx.dashRun = 0
	}
	lx.bump(b)
}

func (lx *Lexer) stepDoctype(b byte) {
	if !lx.started {
		if isSpace(b) {
			lx.bump(b)
			return
		}
		lx.started = true
		lx.val = lx.here()
	}
	if lx.quote != 0 {
		if b == lx.quote {
			lx.quote = 0
		}
		lx.bump(b)
		return
	}
	switch b {
	case '"', '\'':
		lx.quote = b
	case '[':
		lx.depth++
	case ']':
		if lx.depth > 0 {
			lx.depth--
		}
	case '>':
		if lx.depth == 0 {
			body := trimRightSpace(lx.bytes(lx.val.off, lx.off))
			lx.bump(b)
			lx.state = stText
			lx.emitMarkup(event.Doctype, body)
			return
		}
	}
	lx.bump(b)
}

func (lx *Lexer) stepDeclaration(b byte) {
	if lx.quote != 0 {
		if b == lx.quote {
			lx.quote = 0
		}
		lx.bump(b)
		return
	}
	switch b {
	case '"', '\'':
		lx.quote = b
	case '>':
		body := lx.bytes(lx.val.off, lx.off)
		lx.bump(b)
		lx.state = stText
		lx.emitMarkup(event.Declaration, body)
		return
	}
	lx.bump(b)
}

func (lx *Lexer) stepPITarget(b byte) {
	switch {
	case isSpace(b):
		lx.nameEnd = lx.here()
		lx.bump(b)
		lx.state = stPIContentWS
	case b == '?':
		lx.nameEnd = lx.here()
		lx.val = lx.nameEnd
		lx.aux = lx.nameEnd
		lx.bump(b)
		lx.state = stPIQuestion
	case b == '>':
		// <?> и <?name> без "?>": вырожденная форма, закрываем сразу
		lx.nameEnd = lx.here()
		lx.val = lx.nameEnd
		lx.aux = lx.nameEnd
		lx.bump(b)
		lx.emitPI()
	default:
		lx.bump(b)
	}
}

func (lx *Lexer) stepPIContentWS(b byte) {
	if isSpace(b) {
		lx.bump(b)
		return
	}
	lx.val = lx.here()
	lx.state = stPIContent
}

func (lx *Lexer) stepPIContent(b byte) {
	if b == '?' {
		lx.aux = lx.here()
		lx.state = stPIQuestion
	}
	lx.bump(b)
}

func (lx *Lexer) stepPIQuestion(b byte) {
	switch b {
	case '>':
		lx.bump(b)
		lx.emitPI()
	case '?':
		lx.aux = lx.here()
		lx.bump(b)
	default:
		lx.bump(b)
		lx.state = stPIContent
	}
}

// emitPI fires ProcessingInstruction with the target between name and
// nameEnd and the content between val and aux.
func (lx *Lexer) emitPI() {
	lx.state = stText
	end := lx.trk.Pos()
	if lx.nameEnd.off == lx.name.off {
		diag.ReportWarning(lx.opts.Reporter, diag.LexEmptyPITarget,
			source.Range{Start: lx.tok.pos, End: end}, "processing instruction has no target").Emit()
	}
	if !lx.sink.Wants(event.ProcessingInstruction) {
		return
	}
	p := entity.ProcInst{
		Start: lx.tok.pos,
		End:   end,
		Target: entity.Text{
			Start: lx.name.pos,
			End:   lx.nameEnd.pos,
			Value: lx.bytes(lx.name.off, lx.nameEnd.off),
		},
		Content: entity.Text{
			Start: lx.val.pos,
			End:   lx.aux.pos,
			Value: lx.bytes(lx.val.off, lx.aux.off),
		},
	}
	lx.sink.ProcInst(&p)
}
