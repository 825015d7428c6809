package entity

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"

	"saxwasm/internal/source"
)

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("entity length overflow: %w", err))
	}
	return v
}

func putPosition(dst []byte, p source.Position) {
	binary.LittleEndian.PutUint32(dst, p.Line)
	binary.LittleEndian.PutUint32(dst[4:], p.Character)
}

// SizeText returns the framed size of t.
func SizeText(t *Text) int {
	return TextHeaderSize + len(t.Value)
}

// SizeAttribute returns the framed size of a.
func SizeAttribute(a *Attribute) int {
	return AttrNameOff + SizeText(&a.Name) + SizeText(&a.Value)
}

// SizeProcInst returns the framed size of p.
func SizeProcInst(p *ProcInst) int {
	return PITargetOff + SizeText(&p.Target) + SizeText(&p.Content)
}

// SizeTag returns the framed size of t, blocks included.
func SizeTag(t *Tag) int {
	n := TagNameOff + len(t.Name)
	n += LenSize
	for i := range t.Attributes {
		n += LenSize + SizeAttribute(&t.Attributes[i])
	}
	n += LenSize
	for i := range t.TextNodes {
		n += LenSize + SizeText(&t.TextNodes[i])
	}
	return n
}

// PutText frames t into dst and returns the number of bytes written.
// dst must hold at least SizeText(t) bytes.
func PutText(dst []byte, t *Text) int {
	putPosition(dst[TextStartOff:], t.Start)
	putPosition(dst[TextEndOff:], t.End)
	binary.LittleEndian.PutUint32(dst[TextValueLenOff:], u32(len(t.Value)))
	return TextHeaderSize + copy(dst[TextHeaderSize:], t.Value)
}

// PutAttribute frames a into dst and returns the number of bytes written.
func PutAttribute(dst []byte, a *Attribute) int {
	dst[AttrTypeOff] = byte(a.Type)
	nameLen := PutText(dst[AttrNameOff:], &a.Name)
	binary.LittleEndian.PutUint32(dst[AttrNameLenOff:], u32(nameLen))
	n := AttrNameOff + nameLen
	return n + PutText(dst[n:], &a.Value)
}

// PutProcInst frames p into dst and returns the number of bytes written.
func PutProcInst(dst []byte, p *ProcInst) int {
	putPosition(dst[PIStartOff:], p.Start)
	putPosition(dst[PIEndOff:], p.End)
	n := PITargetOff
	n += PutText(dst[n:], &p.Target)
	return n + PutText(dst[n:], &p.Content)
}

// PutTag frames t into dst and returns the number of bytes written.
func PutTag(dst []byte, t *Tag) int {
	putPosition(dst[TagOpenStartOff:], t.OpenStart)
	putPosition(dst[TagOpenEndOff:], t.OpenEnd)
	putPosition(dst[TagCloseStartOff:], t.CloseStart)
	putPosition(dst[TagCloseEndOff:], t.CloseEnd)
	if t.SelfClosing {
		dst[TagSelfClosingOff] = 1
	} else {
		dst[TagSelfClosingOff] = 0
	}
	binary.LittleEndian.PutUint32(dst[TagNameLenOff:], u32(len(t.Name)))
	n := TagNameOff + copy(dst[TagNameOff:], t.Name)

	// блок атрибутов
	binary.LittleEndian.PutUint32(dst[TagAttrsAtOff:], u32(n))
	binary.LittleEndian.PutUint32(dst[n:], u32(len(t.Attributes)))
	n += LenSize
	for i := range t.Attributes {
		w := PutAttribute(dst[n+LenSize:], &t.Attributes[i])
		binary.LittleEndian.PutUint32(dst[n:], u32(w))
		n += LenSize + w
	}

	// блок текстовых узлов
	binary.LittleEndian.PutUint32(dst[TagTextsAtOff:], u32(n))
	binary.LittleEndian.PutUint32(dst[n:], u32(len(t.TextNodes)))
	n += LenSize
	for i := range t.TextNodes {
		w := PutText(dst[n+LenSize:], &t.TextNodes[i])
		binary.LittleEndian.PutUint32(dst[n:], u32(w))
		n += LenSize + w
	}
	return n
}

// EncodeText returns the framing of t in a fresh slice.
func EncodeText(t *Text) []byte {
	b := make([]byte, SizeText(t))
	PutText(b, t)
	return b
}

// EncodeAttribute returns the framing of a in a fresh slice.
func EncodeAttribute(a *Attribute) []byte {
	b := make([]byte, SizeAttribute(a))
	PutAttribute(b, a)
	return b
}

// EncodeProcInst returns the framing of p in a fresh slice.
func EncodeProcInst(p *ProcInst) []byte {
	b := make([]byte, SizeProcInst(p))
	PutProcInst(b, p)
	return b
}

// EncodeTag returns the framing of t in a fresh slice.
func EncodeTag(t *Tag) []byte {
	b := make([]byte, SizeTag(t))
	PutTag(b, t)
	return b
}
