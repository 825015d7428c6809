package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Buffer is the byte-span accumulator: it keeps the tail of the input stream
// that unfinished tokens still point into. Spans are expressed in absolute
// stream offsets, so a token that began in one Write and ends in a later one
// resolves to the same bytes it would have had in a single Write.
type Buffer struct {
	data []byte
	base uint64 // абсолютное смещение data[0]
}

// Append adds a chunk of input to the tail of the buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Base returns the absolute offset of the oldest retained byte.
func (b *Buffer) Base() uint64 {
	return b.base
}

// End returns the absolute offset one past the newest byte.
func (b *Buffer) End() uint64 {
	n, err := safecast.Conv[uint64](len(b.data))
	if err != nil {
		panic(fmt.Errorf("buffer length overflow: %w", err))
	}
	return b.base + n
}

// Retained returns the number of bytes currently held.
func (b *Buffer) Retained() int {
	return len(b.data)
}

// At returns the byte at absolute offset off. The offset must be retained.
func (b *Buffer) At(off uint64) byte {
	return b.data[b.index(off)]
}

// Bytes returns the bytes of sp. The result aliases the buffer and is valid
// until the next Append or Release.
func (b *Buffer) Bytes(sp Span) []byte {
	if sp.Empty() {
		return nil
	}
	return b.data[b.index(sp.Start):b.index(sp.End)]
}

// Release drops every byte before keep. Bytes at or after keep stay put at
// the same absolute offsets.
func (b *Buffer) Release(keep uint64) {
	if keep <= b.base {
		return
	}
	if end := b.End(); keep > end {
		keep = end
	}
	drop := b.index(keep)
	// сдвигаем хвост в начало, чтобы не терять ёмкость
	n := copy(b.data, b.data[drop:])
	b.data = b.data[:n]
	b.base = keep
}

// Reset forgets all bytes and restarts offsets from zero.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.base = 0
}

func (b *Buffer) index(off uint64) int {
	if off < b.base {
		panic(fmt.Errorf("offset %d already released (base %d)", off, b.base))
	}
	i, err := safecast.Conv[int](off - b.base)
	if err != nil {
		panic(fmt.Errorf("buffer index overflow: %w", err))
	}
	return i
}
