package source

import (
	"fmt"
)

// Span is a half-open byte range in absolute stream offsets.
// Offsets keep growing across Write calls and restart from zero only on End.
type Span struct {
	Start uint64 // в байтах включительно
	End   uint64 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint64 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off uint64) bool {
	return off >= s.Start && off < s.End
}
