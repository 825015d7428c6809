package reader

import (
	"saxwasm/internal/entity"
	"saxwasm/internal/source"
)

const (
	decStart uint8 = 1 << iota
	decEnd
	decValue
	decFlag
	decName
	decChildren
	decOpen
	decClose
)

// Text is a lazy view of a framed Text.
type Text struct {
	view
	done  uint8
	start source.Position
	end   source.Position
	value string
}

func validateText(b []byte) error {
	if len(b) < entity.TextHeaderSize {
		return malformed("text of %d bytes", len(b))
	}
	n, err := length(b, entity.TextValueLenOff, "text value")
	if err != nil {
		return err
	}
	if entity.TextHeaderSize+n != len(b) {
		return malformed("text value %d bytes in %d byte frame", n, len(b))
	}
	return nil
}

func (t *Text) Start() source.Position {
	if t.done&decStart == 0 {
		t.start = position(t.bytes(), entity.TextStartOff)
		t.done |= decStart
	}
	return t.start
}

func (t *Text) End() source.Position {
	if t.done&decEnd == 0 {
		t.end = position(t.bytes(), entity.TextEndOff)
		t.done |= decEnd
	}
	return t.end
}

// Value returns the text as a string.
func (t *Text) Value() string {
	if t.done&decValue == 0 {
		t.value = string(t.bytes()[entity.TextHeaderSize:])
		t.done |= decValue
	}
	return t.value
}

// Bytes returns the raw UTF-8 value without copying. For an attached view
// the slice aliases the arena.
func (t *Text) Bytes() []byte {
	return t.bytes()[entity.TextHeaderSize:]
}

// Len returns the byte length of the value.
func (t *Text) Len() int {
	return len(t.bytes()) - entity.TextHeaderSize
}

func (t *Text) Range() source.Range {
	return source.Range{Start: t.Start(), End: t.End()}
}

// Detach returns a copy that owns its bytes.
func (t *Text) Detach() *Text {
	d := *t
	d.view = t.detached()
	return &d
}

// Entity decodes every field into an owned record.
func (t *Text) Entity() entity.Text {
	return entity.Text{Start: t.Start(), End: t.End(), Value: []byte(t.Value())}
}

func (t *Text) detachEntity() Entity { return t.Detach() }
