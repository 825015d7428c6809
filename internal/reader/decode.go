package reader

import (
	"fmt"

	"saxwasm/internal/arena"
	"saxwasm/internal/event"
)

// Entity is one of *Text, *Attribute, *Tag or *ProcInst.
type Entity interface {
	Stale() bool
	Detached() bool
	detachEntity() Entity
}

// Detach deep-copies any entity.
func Detach(e Entity) Entity {
	if e == nil {
		return nil
	}
	return e.detachEntity()
}

type decoder func(v view) (Entity, error)

var decoders = [...]decoder{
	event.PayloadText: func(v view) (Entity, error) {
		if err := validateText(v.raw); err != nil {
			return nil, err
		}
		return &Text{view: v}, nil
	},
	event.PayloadAttribute: func(v view) (Entity, error) {
		n, err := validateAttribute(v.raw)
		if err != nil {
			return nil, err
		}
		return &Attribute{view: v, nameLen: n}, nil
	},
	event.PayloadTag: func(v view) (Entity, error) {
		if err := validateTag(v.raw); err != nil {
			return nil, err
		}
		return &Tag{view: v}, nil
	},
	event.PayloadProcInst: func(v view) (Entity, error) {
		n, err := validateProcInst(v.raw)
		if err != nil {
			return nil, err
		}
		return &ProcInst{view: v, targetLen: n}, nil
	},
}

// Decode wraps the entity at p in a lazy view. The view reads the arena in
// place and goes stale once mem moves to a new epoch.
func Decode(mem Memory, kind event.Kind, p arena.Ptr) (Entity, error) {
	dec, err := decoderFor(kind)
	if err != nil {
		return nil, err
	}
	raw, err := mem.View(p)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return dec(view{mem: mem, epoch: mem.Epoch(), raw: raw})
}

// FromBytes decodes a detached entity from b, which the result takes
// ownership of.
func FromBytes(kind event.Kind, b []byte) (Entity, error) {
	dec, err := decoderFor(kind)
	if err != nil {
		return nil, err
	}
	return dec(view{raw: b})
}

func decoderFor(kind event.Kind) (decoder, error) {
	p := kind.Payload()
	if p == event.PayloadNone || int(p) >= len(decoders) || decoders[p] == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, kind)
	}
	return decoders[p], nil
}
