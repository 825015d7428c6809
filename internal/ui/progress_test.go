package ui

import (
	"errors"
	"strings"
	"testing"

	"saxwasm/internal/driver"
)

func TestProgressModel_AppliesEvents(t *testing.T) {
	m := NewProgressModel("tokenize", []string{"a.xml", "b.xml"}, nil).(*progressModel)

	m.Update(eventMsg{File: "a.xml", Stage: driver.StageTokenize, Status: driver.StatusWorking, Fraction: 0.5})
	if got := statusLabel(m.items[0]); got != " 50%" {
		t.Errorf("label = %q", got)
	}
	m.Update(eventMsg{File: "a.xml", Stage: driver.StageTokenize, Status: driver.StatusDone, Fraction: 1})
	m.Update(eventMsg{File: "b.xml", Stage: driver.StageRead, Status: driver.StatusError, Err: errors.New("gone")})
	m.Update(eventMsg{File: "unknown.xml", Status: driver.StatusDone})

	if m.failed != 1 {
		t.Errorf("failed = %d", m.failed)
	}
	if p := m.percent(); p != 1 {
		t.Errorf("percent = %v, want 1", p)
	}
	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: tokenize (2 files), 1 failed", "a.xml", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("ab", 6); got != "ab" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("got %q", got)
	}
}
