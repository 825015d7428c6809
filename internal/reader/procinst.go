package reader

import (
	"saxwasm/internal/entity"
	"saxwasm/internal/source"
)

// ProcInst is a lazy view of a framed processing instruction.
type ProcInst struct {
	view
	done      uint8
	start     source.Position
	end       source.Position
	targetLen int
	target    *Text
	content   *Text
}

func validateProcInst(b []byte) (targetLen int, err error) {
	if len(b) < entity.PITargetOff {
		return 0, malformed("processing instruction of %d bytes", len(b))
	}
	rest := b[entity.PITargetOff:]
	n, err := length(rest, entity.TextValueLenOff, "target")
	if err != nil {
		return 0, err
	}
	targetLen = entity.TextHeaderSize + n
	if err := validateText(rest[:targetLen]); err != nil {
		return 0, err
	}
	if err := validateText(rest[targetLen:]); err != nil {
		return 0, err
	}
	return targetLen, nil
}

func (p *ProcInst) Start() source.Position {
	if p.done&decStart == 0 {
		p.start = position(p.bytes(), entity.PIStartOff)
		p.done |= decStart
	}
	return p.start
}

func (p *ProcInst) End() source.Position {
	if p.done&decEnd == 0 {
		p.end = position(p.bytes(), entity.PIEndOff)
		p.done |= decEnd
	}
	return p.end
}

func (p *ProcInst) Target() *Text {
	if p.target == nil {
		p.check()
		p.target = &Text{view: p.sub(entity.PITargetOff, entity.PITargetOff+p.targetLen)}
	}
	return p.target
}

func (p *ProcInst) Content() *Text {
	if p.content == nil {
		p.check()
		p.content = &Text{view: p.sub(entity.PITargetOff+p.targetLen, len(p.raw))}
	}
	return p.content
}

func (p *ProcInst) Detach() *ProcInst {
	return &ProcInst{view: p.detached(), targetLen: p.targetLen}
}

func (p *ProcInst) Entity() entity.ProcInst {
	return entity.ProcInst{
		Start:   p.Start(),
		End:     p.End(),
		Target:  p.Target().Entity(),
		Content: p.Content().Entity(),
	}
}

func (p *ProcInst) detachEntity() Entity { return p.Detach() }
