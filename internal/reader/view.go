package reader

import (
	"encoding/binary"
	"errors"
	"fmt"

	"saxwasm/internal/arena"
	"saxwasm/internal/entity"
	"saxwasm/internal/source"
)

var (
	ErrUnknownEvent = errors.New("reader: unknown event kind")
	ErrMalformed    = errors.New("reader: malformed entity framing")
	ErrStale        = errors.New("reader: entity read after the shared buffer was reused")
)

// Memory is the shared buffer views read from. *arena.Arena implements it.
type Memory interface {
	View(p arena.Ptr) ([]byte, error)
	Epoch() uint64
}

// view is the common part of every entity: its framed bytes and the arena
// epoch they were taken at. mem is nil for detached views.
type view struct {
	mem   Memory
	epoch uint64
	raw   []byte
}

// Stale reports whether the bytes behind the view have been reused.
func (v *view) Stale() bool {
	return v.mem != nil && v.mem.Epoch() != v.epoch
}

// Detached reports whether the view owns its bytes.
func (v *view) Detached() bool {
	return v.mem == nil
}

// check panics with ErrStale if the view can no longer be decoded.
func (v *view) check() {
	if v.Stale() {
		panic(fmt.Errorf("%w (taken at epoch %d, now %d)", ErrStale, v.epoch, v.mem.Epoch()))
	}
}

func (v *view) bytes() []byte {
	v.check()
	return v.raw
}

func (v *view) sub(from, to int) view {
	return view{mem: v.mem, epoch: v.epoch, raw: v.raw[from:to:to]}
}

func (v *view) detached() view {
	return view{raw: append([]byte(nil), v.bytes()...)}
}

func u32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func position(b []byte, off int) source.Position {
	return source.Position{Line: u32(b, off), Character: u32(b, off+4)}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// length reads a u32 length at off and checks that it fits in the rest of b.
func length(b []byte, off int, what string) (int, error) {
	if off+entity.LenSize > len(b) {
		return 0, malformed("%s length at %d past end %d", what, off, len(b))
	}
	n := int(u32(b, off))
	if n > len(b)-off-entity.LenSize {
		return 0, malformed("%s length %d overruns %d bytes", what, n, len(b)-off-entity.LenSize)
	}
	return n, nil
}
