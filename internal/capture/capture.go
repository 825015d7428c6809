// Package capture records the framed event stream of one document in a
// msgpack file and replays it later. Frames are stored exactly as the
// engine produced them, so a capture doubles as a golden file for the
// binary layout.
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"saxwasm/internal/diag"
	"saxwasm/internal/event"
	"saxwasm/internal/reader"
	"saxwasm/internal/source"
)

// schemaVersion is bumped whenever Capture changes shape.
const schemaVersion uint16 = 1

var ErrSchema = errors.New("capture: unsupported schema")

// Frame is one event: its kind bit and framed payload.
type Frame struct {
	Kind uint32 `msgpack:"k"`
	Raw  []byte `msgpack:"r"`
}

// Diag is a diagnostic reduced to plain fields.
type Diag struct {
	Severity uint8        `msgpack:"s"`
	Code     uint16       `msgpack:"c"`
	Message  string       `msgpack:"m"`
	Range    source.Range `msgpack:"p"`
}

type Capture struct {
	Schema      uint16  `msgpack:"schema"`
	Source      string  `msgpack:"source"`
	Events      string  `msgpack:"events"`
	Frames      []Frame `msgpack:"frames"`
	Diagnostics []Diag  `msgpack:"diags,omitempty"`
}

// New returns an empty capture for a document read from src with the
// given subscription.
func New(src string, events event.Set) *Capture {
	return &Capture{Schema: schemaVersion, Source: src, Events: events.String()}
}

// Add copies raw; the caller may reuse it afterwards.
func (c *Capture) Add(kind event.Kind, raw []byte) {
	c.Frames = append(c.Frames, Frame{Kind: uint32(kind), Raw: append([]byte(nil), raw...)})
}

// Report implements diag.Reporter.
func (c *Capture) Report(code diag.Code, sev diag.Severity, primary source.Range, msg string, _ []diag.Note) {
	c.Diagnostics = append(c.Diagnostics, Diag{Severity: uint8(sev), Code: uint16(code), Message: msg, Range: primary})
}

// Decode returns frame i as a detached entity.
func (c *Capture) Decode(i int) (event.Kind, reader.Entity, error) {
	if i < 0 || i >= len(c.Frames) {
		return 0, nil, fmt.Errorf("capture: frame %d of %d", i, len(c.Frames))
	}
	f := c.Frames[i]
	kind := event.Kind(f.Kind)
	e, err := reader.FromBytes(kind, append([]byte(nil), f.Raw...))
	if err != nil {
		return kind, nil, fmt.Errorf("frame %d: %w", i, err)
	}
	return kind, e, nil
}

// Diagnostic converts d back to a diag.Diagnostic.
func (d Diag) Diagnostic() diag.Diagnostic {
	return diag.New(diag.Severity(d.Severity), diag.Code(d.Code), d.Range, d.Message)
}

func Write(w io.Writer, c *Capture) error {
	return msgpack.NewEncoder(w).Encode(c)
}

func Read(r io.Reader) (*Capture, error) {
	var c Capture
	if err := msgpack.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	if c.Schema != schemaVersion {
		return nil, fmt.Errorf("%w %d (want %d)", ErrSchema, c.Schema, schemaVersion)
	}
	return &c, nil
}

// Save writes c to path through a temp file and rename.
func Save(path string, c *Capture) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".capture-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = Write(f, c); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

func Load(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	return Read(f)
}
