package reader

import (
	"saxwasm/internal/entity"
)

// Attribute is a lazy view of a framed Attribute.
type Attribute struct {
	view
	nameLen int
	name    *Text
	value   *Text
}

func validateAttribute(b []byte) (nameLen int, err error) {
	if len(b) < entity.AttrNameOff {
		return 0, malformed("attribute of %d bytes", len(b))
	}
	if entity.AttrType(b[entity.AttrTypeOff]) > entity.BraceExpression {
		return 0, malformed("attribute type %d", b[entity.AttrTypeOff])
	}
	nameLen, err = length(b, entity.AttrNameLenOff, "attribute name")
	if err != nil {
		return 0, err
	}
	if err := validateText(b[entity.AttrNameOff : entity.AttrNameOff+nameLen]); err != nil {
		return 0, err
	}
	if err := validateText(b[entity.AttrNameOff+nameLen:]); err != nil {
		return 0, err
	}
	return nameLen, nil
}

func (a *Attribute) Type() entity.AttrType {
	return entity.AttrType(a.bytes()[entity.AttrTypeOff])
}

func (a *Attribute) Name() *Text {
	if a.name == nil {
		a.check()
		a.name = &Text{view: a.sub(entity.AttrNameOff, entity.AttrNameOff+a.nameLen)}
	}
	return a.name
}

func (a *Attribute) Value() *Text {
	if a.value == nil {
		a.check()
		a.value = &Text{view: a.sub(entity.AttrNameOff+a.nameLen, len(a.raw))}
	}
	return a.value
}

// Detach returns a copy that owns its bytes; nested texts are re-read from
// the copy.
func (a *Attribute) Detach() *Attribute {
	return &Attribute{view: a.detached(), nameLen: a.nameLen}
}

func (a *Attribute) Entity() entity.Attribute {
	return entity.Attribute{Type: a.Type(), Name: a.Name().Entity(), Value: a.Value().Entity()}
}

func (a *Attribute) detachEntity() Entity { return a.Detach() }
