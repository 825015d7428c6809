package trace

import (
	"fmt"
	"strings"
)

// Level picks the finest Scope that gets recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelPhase        // runs and documents
	LevelDetail       // plus every Write/End call
	LevelDebug        // plus every dispatched event
)

var levelNames = [...]string{LevelOff: "off", LevelPhase: "phase", LevelDetail: "detail", LevelDebug: "debug"}

// finest scope recorded at each level
var levelScope = [...]Scope{LevelOff: 0, LevelPhase: ScopeDocument, LevelDetail: ScopeWrite, LevelDebug: ScopeEvent}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScope) {
		return false
	}
	return scope != 0 && scope <= levelScope[l]
}
