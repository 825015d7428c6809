package source

import (
	"testing"
)

func TestBuffer_AppendAndBytes(t *testing.T) {
	var b Buffer
	b.Append([]byte("hello "))
	b.Append([]byte("world"))

	if b.End() != 11 {
		t.Fatalf("End() = %d, want 11", b.End())
	}
	if got := string(b.Bytes(Span{Start: 3, End: 9})); got != "lo wor" {
		t.Fatalf("Bytes() = %q, want %q", got, "lo wor")
	}
	if b.At(6) != 'w' {
		t.Fatalf("At(6) = %q, want 'w'", b.At(6))
	}
}

func TestBuffer_ReleaseKeepsAbsoluteOffsets(t *testing.T) {
	var b Buffer
	b.Append([]byte("<div class=\"a\">"))
	b.Release(5)

	if b.Base() != 5 {
		t.Fatalf("Base() = %d, want 5", b.Base())
	}
	if b.Retained() != 10 {
		t.Fatalf("Retained() = %d, want 10", b.Retained())
	}
	if got := string(b.Bytes(Span{Start: 5, End: 10})); got != "class" {
		t.Fatalf("Bytes() after release = %q, want %q", got, "class")
	}

	b.Append([]byte("text"))
	if got := string(b.Bytes(Span{Start: 15, End: 19})); got != "text" {
		t.Fatalf("Bytes() of appended chunk = %q, want %q", got, "text")
	}
}

func TestBuffer_ReleaseBounds(t *testing.T) {
	var b Buffer
	b.Append([]byte("abc"))

	b.Release(0) // no-op
	if b.Base() != 0 || b.Retained() != 3 {
		t.Fatalf("Release(0) must be a no-op")
	}

	b.Release(100) // clamps to End
	if b.Base() != 3 || b.Retained() != 0 {
		t.Fatalf("Release past end: base=%d retained=%d", b.Base(), b.Retained())
	}
}

func TestBuffer_AtReleasedPanics(t *testing.T) {
	var b Buffer
	b.Append([]byte("abcdef"))
	b.Release(4)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when reading a released offset")
		}
	}()
	_ = b.At(1)
}

func TestBuffer_Reset(t *testing.T) {
	var b Buffer
	b.Append([]byte("abcdef"))
	b.Release(2)
	b.Reset()
	if b.Base() != 0 || b.End() != 0 {
		t.Fatalf("Reset() must restart offsets, got base=%d end=%d", b.Base(), b.End())
	}
}

func TestSpan_Basics(t *testing.T) {
	s := Span{Start: 3, End: 7}
	if s.Len() != 4 || s.Empty() {
		t.Fatalf("unexpected span state: %+v", s)
	}
	if !s.Contains(3) || s.Contains(7) {
		t.Fatalf("Contains must be half-open")
	}
	if s.String() != "3-7" {
		t.Fatalf("String() = %q", s.String())
	}
}
