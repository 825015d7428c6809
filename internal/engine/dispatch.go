package engine

import (
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
)

// dispatcher frames completed tokens into the arena output region and
// forwards them to the host handler.
type dispatcher struct{ e *Engine }

func (d dispatcher) Wants(kind event.Kind) bool {
	return d.e.events.Has(kind)
}

func (d dispatcher) Text(kind event.Kind, t *entity.Text) {
	buf, p := d.e.mem.Reserve(entity.SizeText(t))
	entity.PutText(buf, t)
	d.e.dispatch(kind, p)
}

func (d dispatcher) Attribute(a *entity.Attribute) {
	buf, p := d.e.mem.Reserve(entity.SizeAttribute(a))
	entity.PutAttribute(buf, a)
	d.e.dispatch(event.Attribute, p)
}

func (d dispatcher) Tag(kind event.Kind, t *entity.Tag) {
	buf, p := d.e.mem.Reserve(entity.SizeTag(t))
	entity.PutTag(buf, t)
	d.e.dispatch(kind, p)
}

func (d dispatcher) ProcInst(pi *entity.ProcInst) {
	buf, p := d.e.mem.Reserve(entity.SizeProcInst(pi))
	entity.PutProcInst(buf, pi)
	d.e.dispatch(event.ProcessingInstruction, p)
}
