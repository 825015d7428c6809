package trace

import (
	"errors"
	"io"
	"sync"
)

// RingTracer keeps the newest events in a fixed buffer. With a writer it
// dumps them on Close, so a long run leaves only its tail in the trace.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int
	n      int
	level  Level
	out    io.Writer // может быть nil
	format Format
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// DumpTo sets where Close writes the buffered events.
func (t *RingTracer) DumpTo(w io.Writer, format Format) *RingTracer {
	t.out, t.format = w, format
	return t
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	t.mu.Lock()
	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	t.n = min(t.n+1, len(t.buf))
	t.mu.Unlock()
}

// Snapshot returns the buffered events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	start := (t.next - t.n + len(t.buf)) % len(t.buf)
	for i := range t.n {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps to the DumpTo writer, once.
func (t *RingTracer) Close() error {
	t.mu.Lock()
	out := t.out
	t.out = nil
	t.mu.Unlock()
	if out == nil {
		return nil
	}
	err := t.Dump(out, t.format)
	if c, ok := out.(io.Closer); ok && out != stderr {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
