package source

// Tracker advances a Position one byte at a time.
//
// Counting is per byte so that a multi-byte sequence split across two writes
// is counted exactly as if it had arrived whole:
//   - '\n' starts a new line;
//   - ASCII and lead bytes of 2- and 3-byte sequences add one unit;
//   - lead bytes of 4-byte sequences add two units (a surrogate pair);
//   - continuation bytes add nothing.
type Tracker struct {
	pos Position
}

// Pos returns the position of the next byte to be consumed.
func (t *Tracker) Pos() Position {
	return t.pos
}

// Advance accounts for one consumed byte.
func (t *Tracker) Advance(b byte) {
	if b == '\n' {
		t.pos.Line++
		t.pos.Character = 0
		return
	}
	t.pos.Character += Units(b)
}

// Reset возвращает трекер в начало документа.
func (t *Tracker) Reset() {
	t.pos = Position{}
}

// Units returns how many UTF-16 code units byte b contributes to the
// character counter. Invalid lead bytes count as one unit, matching the
// replacement character a UTF-8 decoder would produce for them.
func Units(b byte) uint32 {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0: // continuation
		return 0
	case b < 0xF0:
		return 1
	case b < 0xF8:
		return 2
	default:
		return 1
	}
}
