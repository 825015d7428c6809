package event

import (
	"fmt"
	"math/bits"
	"strings"
)

// Kind identifies one class of structural event. Each kind is a single bit.
type Kind uint32

const (
	// Text is a run of character data between markup.
	Text Kind = 1 << iota
	// ProcessingInstruction is <?target content?>.
	ProcessingInstruction
	// Declaration is an SGML declaration such as <!ELEMENT ...>.
	Declaration
	// Doctype is <!DOCTYPE ...>.
	Doctype
	// Comment is <!-- ... -->.
	Comment
	// OpenTagStart fires once a tag name is known, before attributes.
	OpenTagStart
	// Attribute fires for each completed attribute of an open tag.
	Attribute
	// OpenTag fires at the end of an open tag, with all attributes.
	OpenTag
	// CloseTag fires when an element closes, with attributes and text nodes.
	CloseTag
	// Cdata is <![CDATA[ ... ]]>.
	Cdata

	kindEnd
)

// Payload names the entity shape a Kind carries in its framed payload.
type Payload uint8

const (
	PayloadNone Payload = iota
	PayloadText
	PayloadAttribute
	PayloadTag
	PayloadProcInst
)

func (p Payload) String() string {
	switch p {
	case PayloadText:
		return "Text"
	case PayloadAttribute:
		return "Attribute"
	case PayloadTag:
		return "Tag"
	case PayloadProcInst:
		return "ProcInst"
	default:
		return "None"
	}
}

var kindNames = [...]string{
	"text",
	"processing_instruction",
	"declaration",
	"doctype",
	"comment",
	"open_tag_start",
	"attribute",
	"open_tag",
	"close_tag",
	"cdata",
}

// Kinds returns every kind in bit order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := Text; k < kindEnd; k <<= 1 {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is exactly one known bit.
func (k Kind) Valid() bool {
	return k != 0 && k < kindEnd && k&(k-1) == 0
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%#x)", uint32(k))
	}
	return kindNames[bits.TrailingZeros32(uint32(k))]
}

// Payload reports which entity shape k carries.
func (k Kind) Payload() Payload {
	switch k {
	case Text, Comment, Cdata, Doctype, Declaration:
		return PayloadText
	case ProcessingInstruction:
		return PayloadProcInst
	case Attribute:
		return PayloadAttribute
	case OpenTagStart, OpenTag, CloseTag:
		return PayloadTag
	default:
		return PayloadNone
	}
}

// ParseKind accepts the snake_case name, the CamelCase name, or a few common
// short forms ("pi", "cdata").
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch norm {
	case "pi", "procinst", "processinginstruction":
		return ProcessingInstruction, nil
	case "sgml_declaration", "sgmldeclaration":
		return Declaration, nil
	}
	for i, name := range kindNames {
		if norm == name || norm == strings.ReplaceAll(name, "_", "") {
			return Kind(1) << i, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}
