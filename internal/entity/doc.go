// Package entity holds the structural records built by the tokenizer and
// their self-describing binary framing.
//
// # Framing
//
// All integers are little-endian. A Position is line(u32) + character(u32).
//
//	Text       start(8) end(8) value_len(4) value
//	Attribute  type(1) name_len(4) name:Text value:Text
//	ProcInst   start(8) end(8) target:Text content:Text
//	Tag        attrs_at(4) texts_at(4)
//	           open_start(8) open_end(8) close_start(8) close_end(8)
//	           self_closing(1) name_len(4) name
//	           [attrs_at]  count(4) { len(4) Attribute }*
//	           [texts_at]  count(4) { len(4) Text }*
//
// Attribute name_len is the length of the nested Text encoding of the name;
// the value Text runs to the end of the Attribute. Tag block offsets are
// relative to the first byte of the Tag, so a reader can jump straight to
// either block. Sizes are computed up front (Size* functions) and the Put*
// functions fill a caller-provided slice of exactly that size, which lets
// the engine frame an entity directly into shared memory.
package entity
