package entity

import (
	"bytes"
	"encoding/binary"
	"testing"

	"saxwasm/internal/source"
)

func pos(line, char uint32) source.Position {
	return source.Position{Line: line, Character: char}
}

func TestPutText_Layout(t *testing.T) {
	txt := Text{Start: pos(1, 2), End: pos(3, 4), Value: []byte("héllo")}
	b := EncodeText(&txt)

	if len(b) != TextHeaderSize+len(txt.Value) {
		t.Fatalf("len = %d, want %d", len(b), TextHeaderSize+len(txt.Value))
	}
	want := []uint32{1, 2, 3, 4, uint32(len(txt.Value))}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(b[i*4:]); got != w {
			t.Errorf("word %d = %d, want %d", i, got, w)
		}
	}
	if !bytes.Equal(b[TextHeaderSize:], txt.Value) {
		t.Errorf("value bytes = %q", b[TextHeaderSize:])
	}
}

func TestPutAttribute_Layout(t *testing.T) {
	a := Attribute{
		Type:  SingleQuoted,
		Name:  Text{Start: pos(0, 5), End: pos(0, 10), Value: []byte("class")},
		Value: Text{Start: pos(0, 12), End: pos(0, 16), Value: []byte("main")},
	}
	b := EncodeAttribute(&a)

	if b[AttrTypeOff] != byte(SingleQuoted) {
		t.Fatalf("type byte = %d", b[AttrTypeOff])
	}
	nameLen := int(binary.LittleEndian.Uint32(b[AttrNameLenOff:]))
	if nameLen != TextHeaderSize+5 {
		t.Fatalf("name_len = %d, want %d", nameLen, TextHeaderSize+5)
	}
	name := b[AttrNameOff : AttrNameOff+nameLen]
	if got := string(name[TextHeaderSize:]); got != "class" {
		t.Fatalf("name = %q", got)
	}
	value := b[AttrNameOff+nameLen:]
	if got := string(value[TextHeaderSize:]); got != "main" {
		t.Fatalf("value = %q", got)
	}
	if len(b) != SizeAttribute(&a) {
		t.Fatalf("len = %d, SizeAttribute = %d", len(b), SizeAttribute(&a))
	}
}

func TestPutProcInst_Layout(t *testing.T) {
	p := ProcInst{
		Start:   pos(0, 0),
		End:     pos(0, 21),
		Target:  Text{Start: pos(0, 2), End: pos(0, 5), Value: []byte("xml")},
		Content: Text{Start: pos(0, 6), End: pos(0, 19), Value: []byte(`version="1.0"`)},
	}
	b := EncodeProcInst(&p)
	if got := binary.LittleEndian.Uint32(b[PIEndOff+4:]); got != 21 {
		t.Fatalf("end character = %d", got)
	}
	targetLen := int(binary.LittleEndian.Uint32(b[PITargetOff+TextValueLenOff:]))
	if targetLen != 3 {
		t.Fatalf("target len = %d", targetLen)
	}
	contentAt := PITargetOff + TextHeaderSize + targetLen
	if got := string(b[contentAt+TextHeaderSize:]); got != `version="1.0"` {
		t.Fatalf("content = %q", got)
	}
}

func TestPutTag_BlockOffsets(t *testing.T) {
	tag := Tag{
		OpenStart:   pos(0, 0),
		OpenEnd:     pos(0, 19),
		CloseStart:  pos(0, 23),
		CloseEnd:    pos(0, 29),
		SelfClosing: false,
		Name:        []byte("body"),
		Attributes: []Attribute{
			{Type: DoubleQuoted, Name: Text{Value: []byte("class")}, Value: Text{Value: []byte("main")}},
			{Type: Unquoted, Name: Text{Value: []byte("hidden")}},
		},
		TextNodes: []Text{{Start: pos(0, 19), End: pos(0, 23), Value: []byte("text")}},
	}
	b := EncodeTag(&tag)
	if len(b) != SizeTag(&tag) {
		t.Fatalf("len = %d, SizeTag = %d", len(b), SizeTag(&tag))
	}

	attrsAt := int(binary.LittleEndian.Uint32(b[TagAttrsAtOff:]))
	textsAt := int(binary.LittleEndian.Uint32(b[TagTextsAtOff:]))
	if attrsAt != TagNameOff+len(tag.Name) {
		t.Fatalf("attrs_at = %d, want %d", attrsAt, TagNameOff+len(tag.Name))
	}
	if got := binary.LittleEndian.Uint32(b[attrsAt:]); got != 2 {
		t.Fatalf("attribute count = %d", got)
	}
	first := int(binary.LittleEndian.Uint32(b[attrsAt+LenSize:]))
	if first != SizeAttribute(&tag.Attributes[0]) {
		t.Fatalf("first attribute len = %d", first)
	}
	if got := binary.LittleEndian.Uint32(b[textsAt:]); got != 1 {
		t.Fatalf("text node count = %d", got)
	}
	textLen := int(binary.LittleEndian.Uint32(b[textsAt+LenSize:]))
	if textsAt+2*LenSize+textLen != len(b) {
		t.Fatalf("text block does not end the tag: %d+%d != %d", textsAt+2*LenSize, textLen, len(b))
	}
	if b[TagSelfClosingOff] != 0 {
		t.Fatalf("self_closing byte = %d", b[TagSelfClosingOff])
	}
	if got := string(b[TagNameOff : TagNameOff+4]); got != "body" {
		t.Fatalf("name = %q", got)
	}
}

func TestPutTag_Empty(t *testing.T) {
	tag := Tag{SelfClosing: true}
	b := EncodeTag(&tag)
	// заголовок, позиции, флаг, длина имени и два пустых блока
	if len(b) != TagNameOff+2*LenSize {
		t.Fatalf("len = %d, want %d", len(b), TagNameOff+2*LenSize)
	}
	if b[TagSelfClosingOff] != 1 {
		t.Fatalf("self_closing byte = %d", b[TagSelfClosingOff])
	}
}

func TestClone_Detaches(t *testing.T) {
	src := []byte("value")
	a := Attribute{Name: Text{Value: src[:2]}, Value: Text{Value: src}}
	c := a.Clone()
	src[0] = 'X'
	if string(c.Value.Value) != "value" || string(c.Name.Value) != "va" {
		t.Fatalf("clone shares memory with source: %q %q", c.Name.Value, c.Value.Value)
	}
}
