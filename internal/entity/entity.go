package entity

import (
	"bytes"

	"saxwasm/internal/source"
)

// AttrType records how an attribute value was delimited.
type AttrType uint8

const (
	DoubleQuoted AttrType = iota
	SingleQuoted
	Unquoted
	BraceExpression
)

func (t AttrType) String() string {
	switch t {
	case DoubleQuoted:
		return "double_quoted"
	case SingleQuoted:
		return "single_quoted"
	case Unquoted:
		return "unquoted"
	case BraceExpression:
		return "brace_expression"
	default:
		return "invalid"
	}
}

// Text is a positioned byte span. Value is UTF-8 and may alias tokenizer
// memory; use Clone before keeping it past the event that produced it.
type Text struct {
	Start source.Position
	End   source.Position
	Value []byte
}

// Clone returns a copy of t that owns its bytes.
func (t Text) Clone() Text {
	t.Value = bytes.Clone(t.Value)
	return t
}

// Attribute is one name/value pair of an open tag. Value is empty for
// boolean attributes.
type Attribute struct {
	Type  AttrType
	Name  Text
	Value Text
}

// Clone returns a copy of a that owns its bytes.
func (a Attribute) Clone() Attribute {
	a.Name = a.Name.Clone()
	a.Value = a.Value.Clone()
	return a
}

// Tag is an element. Which fields are filled depends on the event: the
// OpenTagStart payload carries only Name and OpenStart, OpenTag adds OpenEnd
// and Attributes, CloseTag carries everything.
type Tag struct {
	OpenStart   source.Position
	OpenEnd     source.Position
	CloseStart  source.Position
	CloseEnd    source.Position
	SelfClosing bool
	Name        []byte
	Attributes  []Attribute
	TextNodes   []Text
}

// ProcInst is <?target content?>.
type ProcInst struct {
	Start   source.Position
	End     source.Position
	Target  Text
	Content Text
}
