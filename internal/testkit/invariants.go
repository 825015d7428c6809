// Package testkit holds event-stream checks shared by package tests and
// fuzz harnesses.
package testkit

import (
	"bytes"
	"fmt"

	"saxwasm/internal/arena"
	"saxwasm/internal/capture"
	"saxwasm/internal/engine"
	"saxwasm/internal/event"
	"saxwasm/internal/reader"
	"saxwasm/internal/source"
)

// Record tokenizes input as one document, feeding it in pieces cut at
// splits (ascending offsets), and returns the framed stream.
func Record(input []byte, set event.Set, whitespace bool, splits ...int) (*capture.Capture, error) {
	c := capture.New("testkit", set)
	var eng *engine.Engine
	eng, err := engine.New(func(kind event.Kind, p arena.Ptr) {
		raw, err := eng.Memory().View(p)
		if err != nil {
			panic(err)
		}
		c.Add(kind, raw)
	}, engine.Options{Events: set, WhitespaceText: whitespace, Reporter: c})
	if err != nil {
		return nil, err
	}
	prev := 0
	for _, cut := range append(splits, len(input)) {
		cut = min(max(cut, prev), len(input))
		if err := write(eng, input[prev:cut]); err != nil {
			return nil, err
		}
		prev = cut
	}
	if err := eng.End(); err != nil {
		return nil, err
	}
	return c, nil
}

func write(eng *engine.Engine, chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}
	in, err := eng.Input(len(chunk))
	if err != nil {
		return err
	}
	return eng.Write(copy(in, chunk))
}

// SameStream reports the first difference between two framed streams.
func SameStream(want, got *capture.Capture) error {
	if len(want.Frames) != len(got.Frames) {
		return fmt.Errorf("frame count %d, want %d", len(got.Frames), len(want.Frames))
	}
	for i := range want.Frames {
		w, g := want.Frames[i], got.Frames[i]
		if w.Kind != g.Kind {
			return fmt.Errorf("frame %d: kind %s, want %s", i, event.Kind(g.Kind), event.Kind(w.Kind))
		}
		if !bytes.Equal(w.Raw, g.Raw) {
			return fmt.Errorf("frame %d (%s): payload differs", i, event.Kind(w.Kind))
		}
	}
	return nil
}

// CheckChunkInvariance tokenizes input whole and split at every offset in
// splits, and fails on the first split whose stream differs.
func CheckChunkInvariance(input []byte, set event.Set, splits ...int) error {
	whole, err := Record(input, set, false)
	if err != nil {
		return err
	}
	for _, at := range splits {
		split, err := Record(input, set, false, at)
		if err != nil {
			return err
		}
		if err := SameStream(whole, split); err != nil {
			return fmt.Errorf("split at %d: %w", at, err)
		}
	}
	return nil
}

// CheckPositions decodes every frame and verifies that each entity's ranges
// are ordered and that the position an event completes at never moves
// backwards across the stream.
func CheckPositions(c *capture.Capture) error {
	var last source.Position
	for i := range c.Frames {
		kind, e, err := c.Decode(i)
		if err != nil {
			return err
		}
		at, err := anchor(kind, e)
		if err != nil {
			return fmt.Errorf("frame %d (%s): %w", i, kind, err)
		}
		if at.Less(last) {
			return fmt.Errorf("frame %d (%s): position %s before previous %s", i, kind, at, last)
		}
		last = at
	}
	return nil
}

func ordered(name string, a, b source.Position) error {
	if b.Less(a) {
		return fmt.Errorf("%s %s-%s is reversed", name, a, b)
	}
	return nil
}

// anchor is the position at which the event is complete.
func anchor(kind event.Kind, e reader.Entity) (source.Position, error) {
	switch v := e.(type) {
	case *reader.Text:
		return v.End(), ordered("text", v.Start(), v.End())
	case *reader.ProcInst:
		if err := ordered("target", v.Target().Start(), v.Target().End()); err != nil {
			return source.Position{}, err
		}
		return v.End(), ordered("processing instruction", v.Start(), v.End())
	case *reader.Attribute:
		if err := ordered("name", v.Name().Start(), v.Name().End()); err != nil {
			return source.Position{}, err
		}
		return v.Value().End(), ordered("value", v.Value().Start(), v.Value().End())
	case *reader.Tag:
		switch kind {
		case event.OpenTagStart:
			return v.OpenStart(), nil
		case event.OpenTag:
			return v.OpenEnd(), ordered("open tag", v.OpenStart(), v.OpenEnd())
		default:
			if err := ordered("close tag", v.CloseStart(), v.CloseEnd()); err != nil {
				return source.Position{}, err
			}
			return v.CloseEnd(), ordered("element", v.OpenStart(), v.CloseEnd())
		}
	}
	return source.Position{}, fmt.Errorf("unexpected entity %T", e)
}
