// Package saxwasm is a streaming SAX-style tokenizer for XML, HTML and
// JSX-flavoured markup. Bytes are pushed in arbitrary chunks and structural
// events come back as lazy entity views, or as detached values through the
// pull-style Events iterator.
//
// Malformed input never fails: unmatched close tags become text,
// unterminated constructs are flushed at End, and every recovery is
// reported through Options.OnDiagnostic.
package saxwasm

import (
	"saxwasm/internal/diag"
	"saxwasm/internal/entity"
	"saxwasm/internal/event"
	"saxwasm/internal/reader"
	"saxwasm/internal/source"
)

type (
	Kind = event.Kind
	Set  = event.Set

	Entity    = reader.Entity
	Text      = reader.Text
	Attribute = reader.Attribute
	Tag       = reader.Tag
	ProcInst  = reader.ProcInst

	AttrType   = entity.AttrType
	Position   = source.Position
	Range      = source.Range
	Diagnostic = diag.Diagnostic
)

const (
	KindText                  = event.Text
	KindProcessingInstruction = event.ProcessingInstruction
	KindDeclaration           = event.Declaration
	KindDoctype               = event.Doctype
	KindComment               = event.Comment
	KindOpenTagStart          = event.OpenTagStart
	KindAttribute             = event.Attribute
	KindOpenTag               = event.OpenTag
	KindCloseTag              = event.CloseTag
	KindCdata                 = event.Cdata
)

const (
	DoubleQuoted    = entity.DoubleQuoted
	SingleQuoted    = entity.SingleQuoted
	Unquoted        = entity.Unquoted
	BraceExpression = entity.BraceExpression
)

// AllEvents subscribes to every kind.
const AllEvents = event.All

// NoEvents disables every callback.
const NoEvents = event.None

// SetOf builds a subscription from kinds.
func SetOf(kinds ...Kind) Set { return event.SetOf(kinds...) }

// ParseEvents parses a comma separated list of event names such as
// "open_tag,close_tag,text". "all" selects every kind.
func ParseEvents(names string) (Set, error) { return event.ParseSet(names) }

// Detach returns a copy of e that owns its bytes and stays valid after the
// callback that produced it returned.
func Detach(e Entity) Entity { return reader.Detach(e) }
