package event

import (
	"strings"
)

// Set is the subscription bitmask: one bit per Kind.
type Set uint32

const (
	// None subscribes to nothing.
	None Set = 0
	// All subscribes to every kind.
	All = Set(kindEnd - 1)
)

// SetOf builds a Set from kinds.
func SetOf(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= Set(k)
	}
	return s
}

// Has reports whether k is subscribed.
func (s Set) Has(k Kind) bool {
	return s&Set(k) != 0
}

// With returns s with kinds added.
func (s Set) With(kinds ...Kind) Set {
	return s | SetOf(kinds...)
}

// Without returns s with kinds removed.
func (s Set) Without(kinds ...Kind) Set {
	return s &^ SetOf(kinds...)
}

// Kinds lists the subscribed kinds in bit order.
func (s Set) Kinds() []Kind {
	var out []Kind
	for _, k := range Kinds() {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s Set) String() string {
	if s&All == 0 {
		return "none"
	}
	if s&All == All {
		return "all"
	}
	names := make([]string, 0, 4)
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}

// ParseSet parses names separated by commas or '|'. "all" and "none" are
// accepted as whole-set shorthands.
func ParseSet(spec string) (Set, error) {
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	return ParseNames(fields)
}

// ParseNames builds a Set from a list of kind names.
func ParseNames(names []string) (Set, error) {
	var s Set
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
			continue
		case "all":
			s |= All
			continue
		case "none":
			continue
		}
		k, err := ParseKind(name)
		if err != nil {
			return None, err
		}
		s |= Set(k)
	}
	return s, nil
}
