package saxwasm

import (
	"errors"
	"io"
	"iter"
)

// DefaultChunkSize is the read size Events uses when none is given.
const DefaultChunkSize = 32 * 1024

// Event is one detached event from the pull adapter.
type Event struct {
	Kind   Kind
	Entity Entity
}

// PullOptions extends Options for Events.
type PullOptions struct {
	Options
	// ChunkSize is the size of each read from the source.
	ChunkSize int
}

// Events tokenizes r and yields every subscribed event in order. Entities
// are detached, so they stay valid after the loop moves on. A read error is
// yielded once and ends the sequence; breaking out of the loop stops reading.
func Events(r io.Reader, opts PullOptions) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		var pending []Event
		p, err := NewParser(func(kind Kind, e Entity) {
			pending = append(pending, Event{Kind: kind, Entity: Detach(e)})
		}, opts.Options)
		if err != nil {
			yield(Event{}, err)
			return
		}

		drain := func() bool {
			for i, ev := range pending {
				if !yield(ev, nil) {
					return false
				}
				pending[i] = Event{}
			}
			pending = pending[:0]
			return true
		}

		size := opts.ChunkSize
		if size <= 0 {
			size = DefaultChunkSize
		}
		buf := make([]byte, size)
		for {
			n, rerr := r.Read(buf)
			if n > 0 {
				if _, err := p.Write(buf[:n]); err != nil {
					yield(Event{}, err)
					return
				}
				if !drain() {
					return
				}
			}
			if errors.Is(rerr, io.EOF) {
				break
			}
			if rerr != nil {
				yield(Event{}, rerr)
				return
			}
		}
		if err := p.End(); err != nil {
			yield(Event{}, err)
			return
		}
		drain()
	}
}

// Collect tokenizes b as one document and returns the detached events.
func Collect(b []byte, opts Options) ([]Event, error) {
	var out []Event
	p, err := NewParser(func(kind Kind, e Entity) {
		out = append(out, Event{Kind: kind, Entity: Detach(e)})
	}, opts)
	if err != nil {
		return nil, err
	}
	if _, err := p.Write(b); err != nil {
		return out, err
	}
	if err := p.End(); err != nil {
		return out, err
	}
	return out, nil
}
