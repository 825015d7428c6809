package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimer_Report(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("read")
	time.Sleep(2 * time.Millisecond)
	done("3 files")
	idx := tm.Begin("tokenize")
	tm.End(idx, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "read" || r.Phases[0].Note != "3 files" {
		t.Errorf("first phase = %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS < 1 {
		t.Errorf("read took %.3f ms, want >= 1", r.Phases[0].DurationMS)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f < read %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "read", "// 3 files", "tokenize", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestTimer_Concurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("doc")("")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 8 {
		t.Fatalf("phases = %d, want 8", n)
	}
}

func TestTimer_Nil(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}
