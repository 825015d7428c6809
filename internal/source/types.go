package source

import "fmt"

// Position is a zero-based line/character location in the input stream.
// Character counts UTF-16 code units, so a host holding the document as a
// UTF-16 string can slice it with these offsets directly.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Less reports whether p comes strictly before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// LessEq reports whether p does not come after other.
func (p Position) LessEq(other Position) bool {
	return !other.Less(p)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a pair of positions, Start inclusive, End exclusive.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Cover возвращает минимальный Range, покрывающий оба.
func (r Range) Cover(other Range) Range {
	if other.Start.Less(r.Start) {
		r.Start = other.Start
	}
	if r.End.Less(other.End) {
		r.End = other.End
	}
	return r
}
