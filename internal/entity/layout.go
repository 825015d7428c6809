package entity

// Fixed offsets of the framing. Exported for the host-side reader.
const (
	PositionSize = 8
	LenSize      = 4
)

// Text
const (
	TextStartOff    = 0
	TextEndOff      = PositionSize
	TextValueLenOff = 2 * PositionSize
	TextHeaderSize  = TextValueLenOff + LenSize
)

// Attribute
const (
	AttrTypeOff    = 0
	AttrNameLenOff = 1
	AttrNameOff    = AttrNameLenOff + LenSize
)

// ProcInst
const (
	PIStartOff  = 0
	PIEndOff    = PositionSize
	PITargetOff = 2 * PositionSize
)

// Tag
const (
	TagAttrsAtOff     = 0
	TagTextsAtOff     = LenSize
	TagHeaderSize     = 2 * LenSize
	TagOpenStartOff   = TagHeaderSize
	TagOpenEndOff     = TagOpenStartOff + PositionSize
	TagCloseStartOff  = TagOpenEndOff + PositionSize
	TagCloseEndOff    = TagCloseStartOff + PositionSize
	TagSelfClosingOff = TagCloseEndOff + PositionSize
	TagNameLenOff     = TagSelfClosingOff + 1
	TagNameOff        = TagNameLenOff + LenSize
)
