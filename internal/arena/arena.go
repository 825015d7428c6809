// Package arena holds the single growable byte region shared by the engine
// and its host. The first inputCap bytes are the input window the host fills
// before each write; everything after it is scratch space the engine frames
// entities into. Pointers handed across the boundary are offset/length pairs
// and every read is bounds-checked.
package arena

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

var ErrOutOfBounds = errors.New("arena: pointer out of bounds")

const (
	defaultInput = 64 * 1024
	minOutput    = 4 * 1024
)

// Ptr addresses Len bytes at Off inside an Arena.
type Ptr struct {
	Off uint32
	Len uint32
}

func (p Ptr) End() uint64 {
	return uint64(p.Off) + uint64(p.Len)
}

func (p Ptr) String() string {
	return fmt.Sprintf("%d+%d", p.Off, p.Len)
}

// Arena is not safe for concurrent use.
type Arena struct {
	mem      []byte
	inputCap int
	epoch    uint64
	gen      uint64
}

// New returns an arena whose input window holds at least inputSize bytes.
// inputSize <= 0 selects the default window.
func New(inputSize int) *Arena {
	if inputSize <= 0 {
		inputSize = defaultInput
	}
	a := &Arena{inputCap: inputSize}
	a.mem = make([]byte, inputSize+minOutput)
	return a
}

// Epoch is bumped on every operation that may change arena contents.
func (a *Arena) Epoch() uint64 { return a.epoch }

// Gen is bumped whenever the backing slice is reallocated.
func (a *Arena) Gen() uint64 { return a.gen }

// InputCap is the current size of the input window.
func (a *Arena) InputCap() int { return a.inputCap }

// Len is the total size of the arena.
func (a *Arena) Len() int { return len(a.mem) }

// Input returns the input window, grown so that it holds at least n bytes.
// Previously returned slices must not be used after a call that grew the
// window.
func (a *Arena) Input(n int) []byte {
	a.epoch++
	if n > a.inputCap {
		a.grow(n, len(a.mem)-a.inputCap)
	}
	return a.mem[:a.inputCap:a.inputCap]
}

// InputBytes returns the first n bytes of the input window without bumping
// the epoch. n must not exceed InputCap.
func (a *Arena) InputBytes(n int) []byte {
	return a.mem[:n:n]
}

// Reserve returns a zeroed-length scratch region of n bytes after the input
// window and the pointer addressing it. The region is valid until the next
// Reserve or Input call.
func (a *Arena) Reserve(n int) ([]byte, Ptr) {
	a.epoch++
	if a.inputCap+n > len(a.mem) {
		a.grow(a.inputCap, n)
	}
	off, err := safecast.Conv[uint32](a.inputCap)
	if err != nil {
		panic(fmt.Errorf("arena offset overflow: %w", err))
	}
	ln, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("arena length overflow: %w", err))
	}
	return a.mem[a.inputCap : a.inputCap+n : a.inputCap+n], Ptr{Off: off, Len: ln}
}

// View returns the bytes addressed by p. The slice aliases arena memory.
func (a *Arena) View(p Ptr) ([]byte, error) {
	end := p.End()
	if end > uint64(len(a.mem)) {
		return nil, fmt.Errorf("%w: %s (arena %d bytes)", ErrOutOfBounds, p, len(a.mem))
	}
	return a.mem[p.Off:end:end], nil
}

// Mem returns the whole backing slice. It is invalidated by growth.
func (a *Arena) Mem() []byte { return a.mem }

func (a *Arena) grow(input, output int) {
	if output < minOutput {
		output = minOutput
	}
	size := len(a.mem)
	for size < input+output {
		size *= 2
	}
	next := make([]byte, size)
	copy(next, a.mem[:a.inputCap])
	// окно ввода растёт на весь новый запас, если его просили расширить
	if input > a.inputCap {
		a.inputCap = size - output
	}
	a.mem = next
	a.gen++
}
