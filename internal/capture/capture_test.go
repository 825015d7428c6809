package capture

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
	"saxwasm/internal/reader"
	"saxwasm/internal/source"
)

func sample(t *testing.T) *Capture {
	t.Helper()
	c := New("inline", event.SetOf(event.Text, event.OpenTag))
	txt := entity.Text{End: source.Position{Character: 2}, Value: []byte("hi")}
	raw := entity.EncodeText(&txt)
	c.Add(event.Text, raw)
	raw[entity.TextHeaderSize] = 'X'

	tag := entity.Tag{Name: []byte("p"), OpenEnd: source.Position{Character: 3}}
	c.Add(event.OpenTag, entity.EncodeTag(&tag))

	diag.ReportWarning(c, diag.LexUnclosedElement, source.Range{}, "element <p> is not closed").Emit()
	return c
}

func TestCapture_RoundTrip(t *testing.T) {
	c := sample(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "inline", got.Source)
	assert.Equal(t, "text|open_tag", got.Events)
	require.Len(t, got.Frames, 2)

	kind, e, err := got.Decode(0)
	require.NoError(t, err)
	assert.Equal(t, event.Text, kind)
	assert.Equal(t, "hi", e.(*reader.Text).Value())

	kind, e, err = got.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, event.OpenTag, kind)
	assert.Equal(t, "p", e.(*reader.Tag).Name())

	require.Len(t, got.Diagnostics, 1)
	d := got.Diagnostics[0].Diagnostic()
	assert.Equal(t, diag.LexUnclosedElement, d.Code)
	assert.Equal(t, diag.SevWarning, d.Severity)
}

func TestCapture_DecodeErrors(t *testing.T) {
	c := New("x", event.All)
	c.Add(event.Text, []byte{1, 2, 3})
	c.Frames = append(c.Frames, Frame{Kind: 0, Raw: nil})

	_, _, err := c.Decode(0)
	assert.ErrorIs(t, err, reader.ErrMalformed)
	_, _, err = c.Decode(1)
	assert.ErrorIs(t, err, reader.ErrUnknownEvent)
	_, _, err = c.Decode(2)
	assert.Error(t, err)
}

func TestRead_Schema(t *testing.T) {
	c := sample(t)
	c.Schema = 99
	b, err := msgpack.Marshal(c)
	require.NoError(t, err)

	_, err = Read(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrSchema)

	_, err = Read(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.mp")
	require.NoError(t, Save(path, sample(t)))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got.Frames, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.mp"))
	assert.Error(t, err)
}
