package reader

import (
	"saxwasm/internal/entity"
	"saxwasm/internal/source"
)

// Tag is a lazy view of a framed Tag.
type Tag struct {
	view
	done        uint8
	openStart   source.Position
	openEnd     source.Position
	closeStart  source.Position
	closeEnd    source.Position
	selfClosing bool
	name        string
	attrs       []*Attribute
	texts       []*Text
}

// validateTag walks the whole frame once so lazy accessors can index
// without further bounds checks.
func validateTag(b []byte) error {
	if len(b) < entity.TagNameOff {
		return malformed("tag of %d bytes", len(b))
	}
	nameLen, err := length(b, entity.TagNameLenOff, "tag name")
	if err != nil {
		return err
	}
	attrsAt := int(u32(b, entity.TagAttrsAtOff))
	textsAt := int(u32(b, entity.TagTextsAtOff))
	if attrsAt < entity.TagNameOff+nameLen || attrsAt > len(b) || textsAt > len(b) {
		return malformed("tag blocks at %d/%d in %d bytes", attrsAt, textsAt, len(b))
	}
	if b[entity.TagSelfClosingOff] > 1 {
		return malformed("self_closing byte %d", b[entity.TagSelfClosingOff])
	}
	attrsEnd, err := walkBlock(b, attrsAt, "attribute", func(e []byte) error {
		_, err := validateAttribute(e)
		return err
	})
	if err != nil {
		return err
	}
	if textsAt < attrsEnd {
		return malformed("text node block at %d overlaps attributes ending at %d", textsAt, attrsEnd)
	}
	_, err = walkBlock(b, textsAt, "text node", validateText)
	return err
}

// walkBlock validates a count-prefixed block of length-prefixed entries
// and returns the offset just past it.
func walkBlock(b []byte, at int, what string, entry func([]byte) error) (int, error) {
	if at+entity.LenSize > len(b) {
		return 0, malformed("%s block at %d past end %d", what, at, len(b))
	}
	count := int(u32(b, at))
	off := at + entity.LenSize
	for i := 0; i < count; i++ {
		n, err := length(b, off, what)
		if err != nil {
			return 0, err
		}
		off += entity.LenSize
		if err := entry(b[off : off+n]); err != nil {
			return 0, err
		}
		off += n
	}
	return off, nil
}

func (t *Tag) decodeOpen() {
	if t.done&decOpen == 0 {
		b := t.bytes()
		t.openStart = position(b, entity.TagOpenStartOff)
		t.openEnd = position(b, entity.TagOpenEndOff)
		t.done |= decOpen
	}
}

func (t *Tag) decodeClose() {
	if t.done&decClose == 0 {
		b := t.bytes()
		t.closeStart = position(b, entity.TagCloseStartOff)
		t.closeEnd = position(b, entity.TagCloseEndOff)
		t.done |= decClose
	}
}

func (t *Tag) OpenStart() source.Position {
	t.decodeOpen()
	return t.openStart
}

func (t *Tag) OpenEnd() source.Position {
	t.decodeOpen()
	return t.openEnd
}

func (t *Tag) CloseStart() source.Position {
	t.decodeClose()
	return t.closeStart
}

func (t *Tag) CloseEnd() source.Position {
	t.decodeClose()
	return t.closeEnd
}

func (t *Tag) SelfClosing() bool {
	if t.done&decFlag == 0 {
		t.selfClosing = t.bytes()[entity.TagSelfClosingOff] == 1
		t.done |= decFlag
	}
	return t.selfClosing
}

// Name returns the tag name; "" for a JSX fragment.
func (t *Tag) Name() string {
	if t.done&decName == 0 {
		t.name = string(t.NameBytes())
		t.done |= decName
	}
	return t.name
}

// NameBytes returns the raw name without copying.
func (t *Tag) NameBytes() []byte {
	b := t.bytes()
	n := int(u32(b, entity.TagNameLenOff))
	return b[entity.TagNameOff : entity.TagNameOff+n]
}

// NumAttributes reads only the attribute count.
func (t *Tag) NumAttributes() int {
	b := t.bytes()
	return int(u32(b, int(u32(b, entity.TagAttrsAtOff))))
}

// NumTextNodes reads only the text node count.
func (t *Tag) NumTextNodes() int {
	b := t.bytes()
	return int(u32(b, int(u32(b, entity.TagTextsAtOff))))
}

func (t *Tag) Attributes() []*Attribute {
	t.decodeChildren()
	return t.attrs
}

func (t *Tag) TextNodes() []*Text {
	t.decodeChildren()
	return t.texts
}

// Attribute returns the first attribute called name.
func (t *Tag) Attribute(name string) (*Attribute, bool) {
	for _, a := range t.Attributes() {
		if string(a.Name().Bytes()) == name {
			return a, true
		}
	}
	return nil, false
}

func (t *Tag) decodeChildren() {
	if t.done&decChildren != 0 {
		return
	}
	b := t.bytes()
	t.attrs = make([]*Attribute, 0, t.NumAttributes())
	t.each(int(u32(b, entity.TagAttrsAtOff)), func(v view) {
		t.attrs = append(t.attrs, &Attribute{view: v, nameLen: int(u32(v.raw, entity.AttrNameLenOff))})
	})
	t.texts = make([]*Text, 0, t.NumTextNodes())
	t.each(int(u32(b, entity.TagTextsAtOff)), func(v view) {
		t.texts = append(t.texts, &Text{view: v})
	})
	t.done |= decChildren
}

func (t *Tag) each(at int, fn func(v view)) {
	count := int(u32(t.raw, at))
	off := at + entity.LenSize
	for i := 0; i < count; i++ {
		n := int(u32(t.raw, off))
		off += entity.LenSize
		fn(t.sub(off, off+n))
		off += n
	}
}

// Detach returns a copy that owns its bytes. Attributes and text nodes of
// the copy are detached too.
func (t *Tag) Detach() *Tag {
	return &Tag{view: t.detached()}
}

func (t *Tag) Entity() entity.Tag {
	out := entity.Tag{
		OpenStart:   t.OpenStart(),
		OpenEnd:     t.OpenEnd(),
		CloseStart:  t.CloseStart(),
		CloseEnd:    t.CloseEnd(),
		SelfClosing: t.SelfClosing(),
		Name:        []byte(t.Name()),
	}
	for _, a := range t.Attributes() {
		out.Attributes = append(out.Attributes, a.Entity())
	}
	for _, tn := range t.TextNodes() {
		out.TextNodes = append(out.TextNodes, tn.Entity())
	}
	return out
}

func (t *Tag) detachEntity() Entity { return t.Detach() }
