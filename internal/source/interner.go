package source

import (
	"slices"
)

// StringID identifies an interned tag name.
type StringID uint32

// NoStringID is reserved for the empty name (JSX fragments).
const NoStringID StringID = 0

// Interner maps tag names to small integers so the element stack can match
// close tags by comparing IDs instead of bytes.
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// InternBytes returns the ID for b, copying b only the first time it is seen.
func (i *Interner) InternBytes(b []byte) StringID {
	// string(b) в индексе map не аллоцирует
	if id, ok := i.index[string(b)]; ok {
		return id
	}
	s := string(b)
	id := StringID(len(i.byID))
	i.byID = append(i.byID, s)
	i.index[s] = id
	return id
}

// Lookup возвращает строку по ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// Find returns the ID of b without interning it.
func (i *Interner) Find(b []byte) (StringID, bool) {
	id, ok := i.index[string(b)]
	return id, ok
}

// Len returns the number of interned names, NoStringID included.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Reset drops every name except the empty one. Names are per document.
func (i *Interner) Reset() {
	clear(i.index)
	i.index[""] = NoStringID
	i.byID = slices.Delete(i.byID, 1, len(i.byID))
}
