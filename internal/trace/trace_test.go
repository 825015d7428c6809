package trace

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestLevel_ShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeDocument, true},
		{LevelPhase, ScopeWrite, false},
		{LevelDetail, ScopeWrite, true},
		{LevelDetail, ScopeEvent, false},
		{LevelDebug, ScopeEvent, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracer_SpanAndPoint(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	sp := Begin(tr, ScopeWrite, "write", 0)
	Point(tr, ScopeEvent, "close_tag", "div", sp.ID())
	sp.WithExtra("bytes", "12").End("")

	out := buf.String()
	for _, want := range []string{"\u2192 write", "\u2022 close_tag (div)", "\u2190 write {bytes=12}"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStreamTracer_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeWrite, "write", 0).End("")
	Begin(tr, ScopeDocument, "doc.xml", 0).End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"scope":"document"`) {
		t.Fatalf("unexpected line %s", lines[0])
	}
}

func TestRingTracer_Wraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeEvent, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestRingTracer_DumpsOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, RingSize: 1, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDocument, "a.xml", 0).End("first")
	if buf.Len() != 0 {
		t.Fatalf("ring wrote before Close: %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 || !strings.Contains(buf.String(), "(first)") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestStart_NestsAndCarriesDoc(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopeDocument, "tokenize", "page.html")
	inner, span := Start(ctx, ScopeWrite, "write", "")
	if got := CurrentSpan(inner); got.SpanID != span.ID() || got.Doc != "page.html" {
		t.Fatalf("inner span context = %+v", got)
	}
	span.End("")
	outer.End("")
	if !strings.Contains(buf.String(), fmt.Sprintf(`"parent_id":%d`, outer.ID())) {
		t.Fatalf("inner span not parented:\n%s", buf.String())
	}

	quiet := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText))
	got, s := Start(quiet, ScopeWrite, "write", "x")
	if s.ID() != 0 || CurrentSpan(got) != (SpanContext{}) {
		t.Fatal("filtered scope must not open a span")
	}
}

func TestHeartbeat_StopIdempotent(t *testing.T) {
	var nilBeat *Heartbeat
	nilBeat.Stop()
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat started for Nop")
	}
	h := StartHeartbeat(NewRingTracer(8, LevelPhase), time.Millisecond)
	h.Stop()
	h.Stop()
}

func TestContext_DefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("background context must carry Nop")
	}
	tr := NewRingTracer(4, LevelPhase)
	if FromContext(WithTracer(context.Background(), tr)) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("ParseMode accepted unknown mode")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
}
