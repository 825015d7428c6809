package engine

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saxwasm/internal/arena"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
)

type call struct {
	kind event.Kind
	raw  []byte
}

func newRecording(t *testing.T, opts Options) (*Engine, *[]call) {
	t.Helper()
	var calls []call
	var e *Engine
	e, err := New(func(kind event.Kind, p arena.Ptr) {
		raw, err := e.Memory().View(p)
		require.NoError(t, err)
		calls = append(calls, call{kind: kind, raw: append([]byte(nil), raw...)})
	}, opts)
	require.NoError(t, err)
	return e, &calls
}

func feed(t *testing.T, e *Engine, s string) {
	t.Helper()
	in, err := e.Input(len(s))
	require.NoError(t, err)
	n := copy(in, s)
	require.NoError(t, e.Write(n))
}

func TestNew_RequiresHandler(t *testing.T) {
	_, err := New(nil, Options{})
	require.ErrorIs(t, err, ErrNoHandler)

	_, err = New(func(event.Kind, arena.Ptr) {}, Options{InputSize: -1})
	require.ErrorIs(t, err, ErrInputRange)
}

func TestWrite_FramesAttribute(t *testing.T) {
	e, calls := newRecording(t, Options{Events: event.SetOf(event.Attribute)})
	feed(t, e, `<body class="main"></body>`)
	require.NoError(t, e.End())

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, event.Attribute, c.kind)
	assert.Equal(t, byte(entity.DoubleQuoted), c.raw[entity.AttrTypeOff])

	nameLen := int(binary.LittleEndian.Uint32(c.raw[entity.AttrNameOff-entity.LenSize:]))
	name := c.raw[entity.AttrNameOff : entity.AttrNameOff+nameLen]
	value := c.raw[entity.AttrNameOff+nameLen:]
	assert.Equal(t, "class", string(name[entity.TextHeaderSize:]))
	assert.Equal(t, "main", string(value[entity.TextHeaderSize:]))
}

func TestWrite_OutOfWindow(t *testing.T) {
	e, _ := newRecording(t, Options{InputSize: 16})
	assert.ErrorIs(t, e.Write(17), ErrInputRange)
	assert.ErrorIs(t, e.Write(-1), ErrInputRange)
	_, err := e.Input(-1)
	assert.ErrorIs(t, err, ErrInputRange)
}

func TestCallback_Reentrancy(t *testing.T) {
	var errs []error
	var e *Engine
	e, err := New(func(event.Kind, arena.Ptr) {
		_, ierr := e.Input(1)
		errs = append(errs, e.Write(0), e.End(), ierr)
	}, Options{Events: event.SetOf(event.OpenTag)})
	require.NoError(t, err)

	feed(t, e, "<a>")
	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrReentrant)
	}
	// после возврата из колбэка движок снова принимает вызовы
	require.NoError(t, e.End())
}

func TestSetEvents_InsideCallback(t *testing.T) {
	var kinds []event.Kind
	var e *Engine
	e, err := New(func(k event.Kind, _ arena.Ptr) {
		kinds = append(kinds, k)
		e.SetEvents(event.SetOf(event.CloseTag))
	}, Options{Events: event.SetOf(event.OpenTagStart, event.OpenTag)})
	require.NoError(t, err)

	feed(t, e, "<a><b></b></a>")
	require.NoError(t, e.End())
	assert.Equal(t, []event.Kind{event.OpenTagStart, event.CloseTag, event.CloseTag}, kinds)
}

func TestInput_GrowthAndStats(t *testing.T) {
	e, calls := newRecording(t, Options{InputSize: 8, Events: event.SetOf(event.Text)})
	gen := e.Memory().Gen()
	text := make([]byte, 1000)
	for i := range text {
		text[i] = 'x'
	}
	feed(t, e, string(text))
	assert.NotEqual(t, gen, e.Memory().Gen())
	assert.GreaterOrEqual(t, e.Memory().InputCap(), 1000)

	require.NoError(t, e.End())
	require.Len(t, *calls, 1)
	assert.Len(t, (*calls)[0].raw, entity.TextHeaderSize+1000)

	st := e.Stats()
	assert.Equal(t, Stats{Writes: 1, Bytes: 1000, Events: 1, Documents: 1}, st)
}
